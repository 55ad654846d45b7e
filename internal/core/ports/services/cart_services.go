package services

import (
	"context"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CartSvcFacade defines the shopping-cart-to-quotation operations. The cart
// is the open draft quotation of the logged-in user's party.
type CartSvcFacade interface {
	// GetQuotation fetches (or lazily creates) the user's cart quotation,
	// creating a lead for users with no customer record.
	GetQuotation(ctx context.Context, userEmail string) (*domain.Quotation, error)

	// SetItemInCart adds, updates, or (qty 0) removes an item and recomputes
	// the quotation totals.
	SetItemInCart(ctx context.Context, userEmail string, itemCode string, qty decimal.Decimal) (*domain.Quotation, error)

	// ApplyTaxes resolves the applicable tax template for the quotation and
	// computes its total taxes and charges.
	ApplyTaxes(ctx context.Context, userEmail string) (*domain.Quotation, error)
}
