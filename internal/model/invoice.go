// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category partitions an account's invoices by settlement status.
type Category string

const (
	// CategoryPaid holds invoices whose status is "paid" or "open".
	CategoryPaid Category = "Paid"
	// CategoryOther holds invoices with any other status (draft, void, uncollectible, ...).
	CategoryOther Category = "Other"
)

// Categories returns the two categories in processing order.
func Categories() []Category {
	return []Category{CategoryPaid, CategoryOther}
}

// InvoiceLink holds the fields of one invoice we need downstream:
// where its PDF lives and how to name the downloaded file.
type InvoiceLink struct {
	// PDFURL is the remote location of the invoice PDF. May be empty;
	// the fetcher treats an empty URL as a failed download.
	PDFURL string
	// Number is the provider-assigned invoice number, used verbatim as
	// the local file stem.
	Number     string
	AmountPaid decimal.Decimal
	AmountDue  decimal.Decimal
}

// FileName returns the local file name for this invoice's PDF.
func (l InvoiceLink) FileName() string {
	return l.Number + ".pdf"
}

// CategorySet holds one account's invoices partitioned into the two
// categories, each in provider listing order.
type CategorySet struct {
	links map[Category][]InvoiceLink
}

// NewCategorySet creates an empty partition.
func NewCategorySet() *CategorySet {
	return &CategorySet{links: make(map[Category][]InvoiceLink)}
}

// Add routes a link into a category by its invoice status. Statuses
// "paid" and "open" land in CategoryPaid; everything else in CategoryOther.
func (s *CategorySet) Add(status string, link InvoiceLink) {
	cat := CategoryOther
	switch strings.ToLower(status) {
	case "paid", "open":
		cat = CategoryPaid
	}
	s.links[cat] = append(s.links[cat], link)
}

// Links returns the ordered links for a category. The result is never
// nil so callers can range over it directly.
func (s *CategorySet) Links(cat Category) []InvoiceLink {
	if s == nil || s.links[cat] == nil {
		return []InvoiceLink{}
	}
	return s.links[cat]
}

// Total sums AmountPaid plus AmountDue across a category.
func (s *CategorySet) Total(cat Category) decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Links(cat) {
		total = total.Add(l.AmountPaid).Add(l.AmountDue)
	}
	return total
}

// OutputName builds the deterministic name of a consolidated file:
// {ACCOUNT_KEY}-{CategoryName}-{MonthName}-{Year}.pdf
// The name doubles as the object-storage key, so it ends up in the
// public URL. Out-of-range months are not rejected upstream and carry
// Period.MonthName's fallback formatting into the name verbatim.
func OutputName(accountKey string, cat Category, p Period) string {
	return fmt.Sprintf("%s-%s-%s-%d.pdf", strings.ToUpper(accountKey), cat, p.MonthName(), p.Year)
}
