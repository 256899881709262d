// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/billfold/internal/model"
)

// InvoiceLister fetches and partitions one account's invoices for a
// closed Unix-second date range [gte, lte].
type InvoiceLister interface {
	ListInvoices(ctx context.Context, gte, lte int64) (*model.CategorySet, error)
}

// FetchResult is the outcome of one best-effort download. A fetch is
// never a hard failure: it either produced a file at Path, or it was
// dropped after exhausting retries and Reason says why.
type FetchResult struct {
	Path    string
	Reason  error
	Dropped bool
}

// FileFetcher downloads one remote file to a local destination.
type FileFetcher interface {
	Fetch(ctx context.Context, url, dest string) FetchResult
}

// Consolidator produces the per-category output PDFs.
type Consolidator interface {
	// Merge writes every page of every input file, in input order, to out.
	// At least one input is required.
	Merge(inputs []string, out string) error
	// Placeholder writes a single-page notice PDF to out.
	Placeholder(out string) error
}

// Uploader stores one local file as an opaque binary resource and
// returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Mailer sends the two delivery emails through a single transport
// session: attachments to the requester, the URL list to the admin.
type Mailer interface {
	SendReport(requester string, attachments []string, urls []string) error
}

// RetryOptions defines retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
