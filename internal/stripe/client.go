// Package stripe provides a client for listing invoices from the Stripe API.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/Veraticus/billfold/internal/common"
	"github.com/Veraticus/billfold/internal/model"
)

// Stripe's maximum list page size.
const pageSize = 100

// Config holds Stripe API configuration for one account.
type Config struct {
	// AccountKey is the configured name of the account, used for logging only.
	AccountKey string
	// Secret is the account's API secret key.
	Secret string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.AccountKey == "" {
		return fmt.Errorf("%w: stripe account key is required", common.ErrInvalidAccount)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: stripe secret is required", common.ErrInvalidAccount)
	}
	return nil
}

// Client implements the InvoiceLister interface for one Stripe account.
type Client struct {
	api    *client.API
	logger *slog.Logger
}

// NewClient creates a new Stripe client bound to one account's credentials.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	api := &client.API{}
	api.Init(cfg.Secret, nil)

	return &Client{
		api:    api,
		logger: slog.Default().With("component", "stripe", "account", cfg.AccountKey),
	}, nil
}

// ListInvoices pages through the account's invoices created within the
// closed Unix-second range [gte, lte] and partitions them by status.
// Pages are fetched with a fixed size of 100, cursoring on the last
// item's ID until Stripe reports no further pages. Any page error
// aborts the listing; no partial results are returned.
func (c *Client) ListInvoices(ctx context.Context, gte, lte int64) (*model.CategorySet, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if gte > lte {
		return nil, fmt.Errorf("range start must not be after range end")
	}

	c.logger.Info("Listing invoices", "gte", gte, "lte", lte)

	set := model.NewCategorySet()
	total := 0
	cursor := ""

	for {
		params := &stripeapi.InvoiceListParams{
			CreatedRange: &stripeapi.RangeQueryParams{
				GreaterThanOrEqual: gte,
				LesserThanOrEqual:  lte,
			},
		}
		params.Context = ctx
		params.Limit = stripeapi.Int64(pageSize)
		params.Single = true // one page per iteration; we cursor manually
		if cursor != "" {
			params.StartingAfter = stripeapi.String(cursor)
		}

		iter := c.api.Invoices.List(params)

		count := 0
		for iter.Next() {
			inv := iter.Invoice()
			set.Add(string(inv.Status), mapInvoice(inv))
			cursor = inv.ID
			count++
		}
		if err := iter.Err(); err != nil {
			return nil, wrapStripeError(err)
		}
		total += count

		c.logger.Debug("Fetched invoice page", "count", count, "cursor", cursor)

		if !iter.Meta().HasMore {
			break
		}
	}

	c.logger.Info("Listed all invoices",
		"count", total,
		"paid_or_open", len(set.Links(model.CategoryPaid)),
		"other", len(set.Links(model.CategoryOther)))

	return set, nil
}

// mapInvoice converts a Stripe invoice to our internal model. Stripe
// amounts are integer cents.
func mapInvoice(inv *stripeapi.Invoice) model.InvoiceLink {
	return model.InvoiceLink{
		PDFURL:     inv.InvoicePDF,
		Number:     inv.Number,
		AmountPaid: decimal.NewFromInt(inv.AmountPaid).Shift(-2),
		AmountDue:  decimal.NewFromInt(inv.AmountDue).Shift(-2),
	}
}

// wrapStripeError surfaces Stripe's error code when one is present.
// Anything that never reached the API surfaces as a connection failure.
func wrapStripeError(err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripeapi.ErrorCodeRateLimit {
			return fmt.Errorf("%w: %s", common.ErrProviderRateLimit, stripeErr.Msg)
		}
		return fmt.Errorf("stripe API error: %s - %s", stripeErr.Code, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %v", common.ErrProviderConnection, err)
}

// Ensure Client implements InvoiceLister interface.
var _ InvoiceLister = (*Client)(nil)
