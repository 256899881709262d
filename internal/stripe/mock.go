package stripe

import (
	"context"

	"github.com/Veraticus/billfold/internal/model"
)

// MockLister is a mock implementation of InvoiceLister for testing.
type MockLister struct {
	// Functions that can be set by tests to control behavior
	ListInvoicesFn func(ctx context.Context, gte, lte int64) (*model.CategorySet, error)

	// Call tracking
	ListInvoicesCalls []ListInvoicesCall
}

// ListInvoicesCall records the parameters of a ListInvoices call.
type ListInvoicesCall struct {
	Gte int64
	Lte int64
}

// NewMockLister creates a new mock invoice lister.
func NewMockLister() *MockLister {
	return &MockLister{
		ListInvoicesCalls: []ListInvoicesCall{},
	}
}

// ListInvoices implements InvoiceLister.ListInvoices.
func (m *MockLister) ListInvoices(ctx context.Context, gte, lte int64) (*model.CategorySet, error) {
	m.ListInvoicesCalls = append(m.ListInvoicesCalls, ListInvoicesCall{Gte: gte, Lte: lte})

	if m.ListInvoicesFn != nil {
		return m.ListInvoicesFn(ctx, gte, lte)
	}

	// Default behavior: no invoices
	return model.NewCategorySet(), nil
}

// Reset clears all call tracking.
func (m *MockLister) Reset() {
	m.ListInvoicesCalls = []ListInvoicesCall{}
}

// Ensure MockLister implements InvoiceLister interface.
var _ InvoiceLister = (*MockLister)(nil)
