package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeapi "github.com/stripe/stripe-go/v78"

	"github.com/Veraticus/billfold/internal/common"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		errMsg  string
		wantErr bool
	}{
		{
			name:   "valid config",
			config: Config{AccountKey: "acme", Secret: "sk_test_123"},
		},
		{
			name:    "missing account key",
			config:  Config{Secret: "sk_test_123"},
			wantErr: true,
			errMsg:  "stripe account key is required",
		},
		{
			name:    "missing secret",
			config:  Config{AccountKey: "acme"},
			wantErr: true,
			errMsg:  "stripe secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidAccount)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWrapStripeError(t *testing.T) {
	tests := []struct {
		err     error
		wantIs  error
		name    string
		wantMsg string
	}{
		{
			name:    "plain error is a connection failure",
			err:     errors.New("dial tcp: connection refused"),
			wantIs:  common.ErrProviderConnection,
			wantMsg: "connection refused",
		},
		{
			name:   "rate limit maps to the rate limit sentinel",
			err:    &stripeapi.Error{Code: stripeapi.ErrorCodeRateLimit, Msg: "too many requests"},
			wantIs: common.ErrProviderRateLimit,
		},
		{
			name:    "other API errors carry the code",
			err:     &stripeapi.Error{Code: stripeapi.ErrorCodeResourceMissing, Msg: "no such invoice"},
			wantMsg: "stripe API error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapStripeError(tt.err)
			require.Error(t, wrapped)
			if tt.wantIs != nil {
				assert.ErrorIs(t, wrapped, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, wrapped.Error(), tt.wantMsg)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{AccountKey: "acme", Secret: "sk_test_123"})
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = NewClient(Config{})
	require.Error(t, err)
}

func TestListInvoices_RejectsBadInput(t *testing.T) {
	client, err := NewClient(Config{AccountKey: "acme", Secret: "sk_test_123"})
	require.NoError(t, err)

	_, err = client.ListInvoices(context.Background(), 200, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range start")
}

func TestMapInvoice(t *testing.T) {
	inv := &stripeapi.Invoice{
		ID:         "in_123",
		Number:     "ACME-0042",
		InvoicePDF: "https://files.example.com/in_123.pdf",
		AmountPaid: 1050,
		AmountDue:  425,
	}

	link := mapInvoice(inv)

	assert.Equal(t, "https://files.example.com/in_123.pdf", link.PDFURL)
	assert.Equal(t, "ACME-0042", link.Number)
	assert.True(t, link.AmountPaid.Equal(decimal.RequireFromString("10.50")))
	assert.True(t, link.AmountDue.Equal(decimal.RequireFromString("4.25")))
}

func TestMapInvoice_EmptyPDFURL(t *testing.T) {
	// An invoice without a PDF still maps; the fetcher handles the
	// empty URL as a failed download later.
	link := mapInvoice(&stripeapi.Invoice{ID: "in_456", Number: "ACME-0043"})

	assert.Empty(t, link.PDFURL)
	assert.Equal(t, "ACME-0043", link.Number)
}
