package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
	"github.com/finpoint/erp_backend/internal/dto"
	"github.com/finpoint/erp_backend/internal/middleware"
)

var (
	// ErrCartDisabled is returned when the shopping cart is switched off in settings.
	ErrCartDisabled = fmt.Errorf("%w: shopping cart is disabled", apperrors.ErrValidation)

	// ErrNegativeQty is returned for negative cart quantities.
	ErrNegativeQty = fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)

	// ErrNoItemPrice is returned when an item has no rate on the cart price list.
	ErrNoItemPrice = fmt.Errorf("%w: item has no price on the cart price list", apperrors.ErrValidation)
)

// cartService implements the shopping-cart-to-quotation flow. The cart is
// the party's open draft quotation; website users without a customer record
// get a lead created on first touch.
type cartService struct {
	cartRepo     portsrepo.CartRepositoryFacade
	partyRepo    portsrepo.PartyRepositoryFacade
	taxTemplates portsrepo.TaxTemplateReader
	taxRuleSvc   portssvc.TaxResolverSvc
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo portsrepo.CartRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade, taxTemplates portsrepo.TaxTemplateReader, taxRuleSvc portssvc.TaxResolverSvc) portssvc.CartSvcFacade {
	return &cartService{
		cartRepo:     cartRepo,
		partyRepo:    partyRepo,
		taxTemplates: taxTemplates,
		taxRuleSvc:   taxRuleSvc,
	}
}

// Ensure cartService implements the portssvc.CartSvcFacade interface
var _ portssvc.CartSvcFacade = (*cartService)(nil)

// GetQuotation fetches or lazily creates the user's cart quotation.
func (s *cartService) GetQuotation(ctx context.Context, userEmail string) (*domain.Quotation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.cartRepo.GetCartSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart settings: %w", err)
	}
	if !settings.Enabled {
		return nil, ErrCartDisabled
	}

	quotationTo, party, err := s.resolveParty(ctx, userEmail, settings.Company)
	if err != nil {
		return nil, err
	}

	quotation, err := s.cartRepo.FindDraftQuotation(ctx, quotationTo, party)
	if err == nil {
		return quotation, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to fetch draft quotation", slog.String("party", party), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch draft quotation: %w", err)
	}

	now := time.Now().UTC()
	quotation = &domain.Quotation{
		QuotationID:     uuid.NewString(),
		QuotationTo:     quotationTo,
		ContactEmail:    userEmail,
		Company:         settings.Company,
		Currency:        settings.DefaultCurrency,
		PriceList:       settings.DefaultPriceList,
		OrderType:       "Shopping Cart",
		TransactionDate: now,
		Status:          domain.QuotationDraft,
		NetTotal:        decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userEmail,
			LastUpdatedAt: now,
			LastUpdatedBy: userEmail,
		},
	}
	if quotationTo == domain.Customer {
		quotation.Customer = party
	} else {
		quotation.Lead = party
	}

	if err := s.cartRepo.SaveQuotation(ctx, *quotation); err != nil {
		logger.Error("Failed to create cart quotation", slog.String("party", party), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create cart quotation: %w", err)
	}

	logger.Info("Cart quotation created", slog.String("quotation_id", quotation.QuotationID), slog.String("quotation_to", string(quotationTo)))
	return quotation, nil
}

// SetItemInCart adds, updates, or (qty 0) removes an item, recomputing totals.
func (s *cartService) SetItemInCart(ctx context.Context, userEmail string, itemCode string, qty decimal.Decimal) (*domain.Quotation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if qty.IsNegative() {
		return nil, ErrNegativeQty
	}

	quotation, err := s.GetQuotation(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range quotation.Items {
		if quotation.Items[i].ItemCode == itemCode {
			idx = i
			break
		}
	}

	switch {
	case qty.IsZero():
		if idx >= 0 {
			quotation.Items = append(quotation.Items[:idx], quotation.Items[idx+1:]...)
		}
	case idx >= 0:
		quotation.Items[idx].Qty = qty
	default:
		rate, err := s.cartRepo.GetItemPrice(ctx, quotation.PriceList, itemCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s on %s", ErrNoItemPrice, itemCode, quotation.PriceList)
			}
			return nil, fmt.Errorf("failed to fetch price for item %s: %w", itemCode, err)
		}
		quotation.Items = append(quotation.Items, domain.QuotationItem{
			ItemCode: itemCode,
			Qty:      qty,
			Rate:     rate,
		})
	}

	quotation.RecalculateTotals()
	quotation.LastUpdatedAt = time.Now().UTC()
	quotation.LastUpdatedBy = userEmail

	if err := s.cartRepo.UpdateQuotation(ctx, *quotation); err != nil {
		logger.Error("Failed to update cart quotation", slog.String("quotation_id", quotation.QuotationID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update cart quotation: %w", err)
	}

	logger.Debug("Cart item set", slog.String("item_code", itemCode), slog.String("qty", qty.String()), slog.String("net_total", quotation.NetTotal.String()))
	return quotation, nil
}

// ApplyTaxes resolves the quotation's tax template through the tax rule
// resolver and computes total taxes and charges.
func (s *cartService) ApplyTaxes(ctx context.Context, userEmail string) (*domain.Quotation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quotation, err := s.GetQuotation(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	filters, err := s.buildTaxFilters(ctx, quotation)
	if err != nil {
		return nil, err
	}

	template, err := s.taxRuleSvc.ResolveTaxTemplate(ctx, quotation.TransactionDate, filters)
	if err != nil {
		return nil, err
	}

	if template == "" {
		quotation.TaxTemplate = ""
		quotation.TotalTaxesAndCharges = decimal.Zero
	} else {
		tmpl, err := s.taxTemplates.FindTaxTemplate(ctx, template)
		if err != nil {
			logger.Error("Failed to fetch tax template", slog.String("template", template), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch tax template %s: %w", template, err)
		}
		quotation.TaxTemplate = template
		quotation.TotalTaxesAndCharges = tmpl.TotalOn(quotation.NetTotal)
	}

	quotation.LastUpdatedAt = time.Now().UTC()
	quotation.LastUpdatedBy = userEmail

	if err := s.cartRepo.UpdateQuotation(ctx, *quotation); err != nil {
		return nil, fmt.Errorf("failed to update cart quotation: %w", err)
	}

	logger.Info("Cart taxes applied", slog.String("quotation_id", quotation.QuotationID), slog.String("template", template))
	return quotation, nil
}

// resolveParty finds the customer for the user's contact email, falling back
// to the user's lead, creating the lead on first touch.
func (s *cartService) resolveParty(ctx context.Context, userEmail string, company string) (domain.PartyType, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.partyRepo.FindCustomerByContactEmail(ctx, userEmail)
	if err == nil {
		return domain.Customer, customer, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", "", fmt.Errorf("failed to look up customer for %s: %w", userEmail, err)
	}

	lead, err := s.partyRepo.FindLeadByEmail(ctx, userEmail)
	if err == nil {
		return domain.Lead, lead.LeadID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", "", fmt.Errorf("failed to look up lead for %s: %w", userEmail, err)
	}

	now := time.Now().UTC()
	newLead := domain.LeadRecord{
		LeadID:   uuid.NewString(),
		LeadName: leadNameFromEmail(userEmail),
		Email:    userEmail,
		Status:   "Open",
		Company:  company,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userEmail,
			LastUpdatedAt: now,
			LastUpdatedBy: userEmail,
		},
	}
	if err := s.partyRepo.SaveLead(ctx, newLead); err != nil {
		return "", "", fmt.Errorf("failed to create lead for %s: %w", userEmail, err)
	}

	logger.Info("Lead created for cart user", slog.String("lead_id", newLead.LeadID))
	return domain.Lead, newLead.LeadID, nil
}

// buildTaxFilters assembles the tax rule match attributes for a quotation.
func (s *cartService) buildTaxFilters(ctx context.Context, quotation *domain.Quotation) (domain.TaxRuleFilters, error) {
	filters := domain.TaxRuleFilters{
		TaxType:  domain.SalesTax,
		Customer: quotation.Customer,
		Company:  quotation.Company,
	}
	if quotation.Customer != "" {
		group, err := s.partyRepo.GetCustomerGroup(ctx, quotation.Customer)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return filters, fmt.Errorf("failed to fetch customer group: %w", err)
		}
		filters.CustomerGroup = group
	}

	party := quotation.Customer
	partyType := domain.Customer
	if quotation.QuotationTo == domain.Lead {
		party = quotation.Lead
		partyType = domain.Lead
	}

	details, err := s.taxRuleSvc.GetPartyDetails(ctx, dto.PartyDetailsQuery{Party: party, PartyType: string(partyType)})
	if err != nil {
		return filters, err
	}
	filters.BillingCity = details.BillingCity
	filters.BillingState = details.BillingState
	filters.BillingCountry = details.BillingCountry
	filters.ShippingCity = details.ShippingCity
	filters.ShippingState = details.ShippingState
	filters.ShippingCountry = details.ShippingCountry
	return filters, nil
}

func leadNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
