package repositories

import (
	"context"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuotationReader defines read operations for quotations.
type QuotationReader interface {
	// FindDraftQuotation retrieves the open draft quotation of a party, with items.
	FindDraftQuotation(ctx context.Context, quotationTo domain.PartyType, party string) (*domain.Quotation, error)
}

// QuotationWriter defines write operations for quotations.
type QuotationWriter interface {
	// SaveQuotation persists a new quotation and its items atomically.
	SaveQuotation(ctx context.Context, quotation domain.Quotation) error

	// UpdateQuotation replaces a quotation's header fields and items atomically.
	UpdateQuotation(ctx context.Context, quotation domain.Quotation) error
}

// ItemPriceReader defines read access to price lists.
type ItemPriceReader interface {
	// GetItemPrice retrieves the rate of an item on a price list.
	GetItemPrice(ctx context.Context, priceList string, itemCode string) (decimal.Decimal, error)
}

// CartSettingsReader defines read access to shopping cart configuration.
type CartSettingsReader interface {
	// GetCartSettings retrieves the singleton cart settings record.
	GetCartSettings(ctx context.Context) (*domain.CartSettings, error)
}

// CartRepositoryFacade combines the repositories the cart service works with.
type CartRepositoryFacade interface {
	QuotationReader
	QuotationWriter
	ItemPriceReader
	CartSettingsReader
}
