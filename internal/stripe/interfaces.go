package stripe

import (
	"context"

	"github.com/Veraticus/billfold/internal/model"
)

// InvoiceLister defines the contract for listing and partitioning one
// account's invoices. This interface allows for easy mocking in tests
// and swapping billing providers.
type InvoiceLister interface {
	ListInvoices(ctx context.Context, gte, lte int64) (*model.CategorySet, error)
}
