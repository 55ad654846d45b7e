package repositories

import (
	"context"
	"time"

	"github.com/finpoint/erp_backend/internal/core/domain"
)

// TaxRuleReader defines read operations for tax rules.
type TaxRuleReader interface {
	// FindTaxRuleByID retrieves a tax rule by its identifier.
	FindTaxRuleByID(ctx context.Context, ruleID string) (*domain.TaxRule, error)

	// ListTaxRules retrieves a paginated list of tax rules ordered by creation time.
	ListTaxRules(ctx context.Context, limit int, nextToken *string) ([]domain.TaxRule, *string, error)

	// FindMatching retrieves rules whose every attribute is either unset or
	// equal to the queried value, restricted to rules applicable on postingDate.
	FindMatching(ctx context.Context, postingDate time.Time, filters domain.TaxRuleFilters) ([]domain.TaxRule, error)

	// FindConflicting retrieves rules (excluding ruleID) with identical
	// attributes and an overlapping date range.
	FindConflicting(ctx context.Context, rule domain.TaxRule) ([]domain.TaxRule, error)
}

// TaxRuleWriter defines write operations for tax rules.
type TaxRuleWriter interface {
	// SaveTaxRule persists a new tax rule.
	SaveTaxRule(ctx context.Context, rule domain.TaxRule) error

	// UpdateTaxRule updates an existing tax rule.
	UpdateTaxRule(ctx context.Context, rule domain.TaxRule) error

	// DeleteTaxRule removes a tax rule.
	DeleteTaxRule(ctx context.Context, ruleID string) error
}

// TaxTemplateReader defines read access to tax templates and their charges.
type TaxTemplateReader interface {
	// FindTaxTemplate retrieves a tax template with its charge rows.
	FindTaxTemplate(ctx context.Context, name string) (*domain.TaxTemplate, error)
}

// TaxRuleRepositoryFacade combines all tax-rule-related repository interfaces.
type TaxRuleRepositoryFacade interface {
	TaxRuleReader
	TaxRuleWriter
	TaxTemplateReader
}
