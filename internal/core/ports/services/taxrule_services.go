package services

import (
	"context"
	"time"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/finpoint/erp_backend/internal/dto"
)

// TaxRuleReaderSvc defines read operations for tax rules.
type TaxRuleReaderSvc interface {
	// GetTaxRuleByID retrieves a tax rule.
	GetTaxRuleByID(ctx context.Context, ruleID string) (*domain.TaxRule, error)

	// ListTaxRules retrieves a paginated list of tax rules.
	ListTaxRules(ctx context.Context, params dto.ListTaxRulesParams) (*dto.ListTaxRulesResponse, error)
}

// TaxRuleWriterSvc defines write operations for tax rules. Every write runs
// the full rule validation, including the conflict check.
type TaxRuleWriterSvc interface {
	// CreateTaxRule validates and persists a new tax rule.
	CreateTaxRule(ctx context.Context, req dto.SaveTaxRuleRequest, userID string) (*domain.TaxRule, error)

	// UpdateTaxRule validates and updates an existing tax rule.
	UpdateTaxRule(ctx context.Context, ruleID string, req dto.SaveTaxRuleRequest, userID string) (*domain.TaxRule, error)

	// DeleteTaxRule removes a tax rule.
	DeleteTaxRule(ctx context.Context, ruleID string, userID string) error
}

// TaxResolverSvc defines the transaction-time matching operation.
type TaxResolverSvc interface {
	// ResolveTaxTemplate picks the applicable tax template for the transaction
	// attributes, or returns an empty string when no rule matches.
	ResolveTaxTemplate(ctx context.Context, postingDate time.Time, filters domain.TaxRuleFilters) (string, error)

	// GetPartyDetails bundles the billing and shipping geography of a party.
	GetPartyDetails(ctx context.Context, q dto.PartyDetailsQuery) (*domain.PartyDetails, error)
}

// TaxRuleSvcFacade combines all tax-rule service interfaces.
type TaxRuleSvcFacade interface {
	TaxRuleReaderSvc
	TaxRuleWriterSvc
	TaxResolverSvc
}
