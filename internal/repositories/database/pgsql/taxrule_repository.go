package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/finpoint/erp_backend/internal/models"
	"github.com/finpoint/erp_backend/internal/utils/mapping"
	"github.com/finpoint/erp_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taxRuleColumns = `
	rule_id, tax_type, customer, customer_group, supplier, supplier_type,
	billing_city, billing_state, billing_country,
	shipping_city, shipping_state, shipping_country,
	company, from_date, to_date, priority,
	sales_tax_template, purchase_tax_template,
	created_at, created_by, last_updated_at, last_updated_by`

// attributeColumns are the equality/wildcard attributes of a tax rule, in the
// order FindMatching and FindConflicting bind them.
var attributeColumns = []string{
	"customer", "customer_group", "supplier", "supplier_type",
	"billing_city", "billing_state", "billing_country",
	"shipping_city", "shipping_state", "shipping_country",
	"company",
}

type PgxTaxRuleRepository struct {
	BaseRepository
}

// newPgxTaxRuleRepository creates a new repository for tax rules and templates.
func newPgxTaxRuleRepository(pool *pgxpool.Pool) portsrepo.TaxRuleRepositoryFacade {
	return &PgxTaxRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTaxRuleRepository implements portsrepo.TaxRuleRepositoryFacade
var _ portsrepo.TaxRuleRepositoryFacade = (*PgxTaxRuleRepository)(nil)

func scanTaxRule(row pgx.Row) (*models.TaxRule, error) {
	var m models.TaxRule
	err := row.Scan(
		&m.RuleID, &m.TaxType, &m.Customer, &m.CustomerGroup, &m.Supplier, &m.SupplierType,
		&m.BillingCity, &m.BillingState, &m.BillingCountry,
		&m.ShippingCity, &m.ShippingState, &m.ShippingCountry,
		&m.Company, &m.FromDate, &m.ToDate, &m.Priority,
		&m.SalesTaxTemplate, &m.PurchaseTaxTemplate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTaxRuleByID retrieves a single tax rule.
func (r *PgxTaxRuleRepository) FindTaxRuleByID(ctx context.Context, ruleID string) (*domain.TaxRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM tax_rules WHERE rule_id = $1`, taxRuleColumns)

	m, err := scanTaxRule(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tax rule %s: %w", ruleID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query tax rule", err)
	}
	rule := mapping.ToDomainTaxRule(*m)
	return &rule, nil
}

// ListTaxRules retrieves tax rules newest first, keyset-paginated on
// (created_at, rule_id).
func (r *PgxTaxRuleRepository) ListTaxRules(ctx context.Context, limit int, nextToken *string) ([]domain.TaxRule, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{}
	query := fmt.Sprintf(`SELECT %s FROM tax_rules`, taxRuleColumns)
	if nextToken != nil && *nextToken != "" {
		createdAt, ruleID, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (created_at, rule_id) < ($1, $2)`
		args = append(args, createdAt, ruleID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, rule_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list tax rules", err)
	}
	defer rows.Close()

	var ruleModels []models.TaxRule
	for rows.Next() {
		m, err := scanTaxRule(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan tax rule row", err)
		}
		ruleModels = append(ruleModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating tax rule rows", err)
	}

	var token *string
	if len(ruleModels) > limit {
		ruleModels = ruleModels[:limit]
		last := ruleModels[limit-1]
		t := pagination.EncodeTimeIDToken(last.CreatedAt, last.RuleID)
		token = &t
	}
	return mapping.ToDomainTaxRuleSlice(ruleModels), token, nil
}

// FindMatching retrieves the rules whose attributes are all either unset or
// equal to the queried values, restricted to rules in effect on postingDate.
func (r *PgxTaxRuleRepository) FindMatching(ctx context.Context, postingDate time.Time, filters domain.TaxRuleFilters) ([]domain.TaxRule, error) {
	values := filters.Values()

	conditions := []string{"tax_type = $1"}
	args := []interface{}{string(filters.TaxType)}
	for _, col := range attributeColumns {
		args = append(args, values[col])
		conditions = append(conditions, fmt.Sprintf("(%s = '' OR %s = $%d)", col, col, len(args)))
	}
	args = append(args, postingDate)
	conditions = append(conditions, fmt.Sprintf("(from_date IS NULL OR from_date <= $%d)", len(args)))
	conditions = append(conditions, fmt.Sprintf("(to_date IS NULL OR to_date >= $%d)", len(args)))

	query := fmt.Sprintf(`SELECT %s FROM tax_rules WHERE %s`,
		taxRuleColumns, strings.Join(conditions, " AND "))

	return r.queryTaxRules(ctx, query, args)
}

// FindConflicting retrieves rules other than rule itself that carry the exact
// same attribute values. The caller decides which of them collide in time
// via domain.DateRangesConflict.
func (r *PgxTaxRuleRepository) FindConflicting(ctx context.Context, rule domain.TaxRule) ([]domain.TaxRule, error) {
	values := rule.AttributeValues()

	conditions := []string{"rule_id <> $1", "tax_type = $2"}
	args := []interface{}{rule.RuleID, string(rule.TaxType)}
	for _, col := range attributeColumns {
		args = append(args, values[col])
		conditions = append(conditions, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM tax_rules WHERE %s`,
		taxRuleColumns, strings.Join(conditions, " AND "))

	return r.queryTaxRules(ctx, query, args)
}

func (r *PgxTaxRuleRepository) queryTaxRules(ctx context.Context, query string, args []interface{}) ([]domain.TaxRule, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax rules", err)
	}
	defer rows.Close()

	var ruleModels []models.TaxRule
	for rows.Next() {
		m, err := scanTaxRule(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax rule row", err)
		}
		ruleModels = append(ruleModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax rule rows", err)
	}
	return mapping.ToDomainTaxRuleSlice(ruleModels), nil
}

// SaveTaxRule inserts a new tax rule.
func (r *PgxTaxRuleRepository) SaveTaxRule(ctx context.Context, rule domain.TaxRule) error {
	m := mapping.ToModelTaxRule(rule)
	query := fmt.Sprintf(`
		INSERT INTO tax_rules (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		taxRuleColumns)

	_, err := r.Pool.Exec(ctx, query,
		m.RuleID, m.TaxType, m.Customer, m.CustomerGroup, m.Supplier, m.SupplierType,
		m.BillingCity, m.BillingState, m.BillingCountry,
		m.ShippingCity, m.ShippingState, m.ShippingCountry,
		m.Company, m.FromDate, m.ToDate, m.Priority,
		m.SalesTaxTemplate, m.PurchaseTaxTemplate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tax rule %s: %w", rule.RuleID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert tax rule", err)
	}
	return nil
}

// UpdateTaxRule rewrites a tax rule in place.
func (r *PgxTaxRuleRepository) UpdateTaxRule(ctx context.Context, rule domain.TaxRule) error {
	m := mapping.ToModelTaxRule(rule)
	query := `
		UPDATE tax_rules SET
			tax_type = $2, customer = $3, customer_group = $4, supplier = $5, supplier_type = $6,
			billing_city = $7, billing_state = $8, billing_country = $9,
			shipping_city = $10, shipping_state = $11, shipping_country = $12,
			company = $13, from_date = $14, to_date = $15, priority = $16,
			sales_tax_template = $17, purchase_tax_template = $18,
			last_updated_at = $19, last_updated_by = $20
		WHERE rule_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		m.RuleID, m.TaxType, m.Customer, m.CustomerGroup, m.Supplier, m.SupplierType,
		m.BillingCity, m.BillingState, m.BillingCountry,
		m.ShippingCity, m.ShippingState, m.ShippingCountry,
		m.Company, m.FromDate, m.ToDate, m.Priority,
		m.SalesTaxTemplate, m.PurchaseTaxTemplate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tax rule", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tax rule %s: %w", rule.RuleID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteTaxRule removes a tax rule.
func (r *PgxTaxRuleRepository) DeleteTaxRule(ctx context.Context, ruleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tax_rules WHERE rule_id = $1`, ruleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete tax rule", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tax rule %s: %w", ruleID, apperrors.ErrNotFound)
	}
	return nil
}

// FindTaxTemplate retrieves a tax template with its ordered charge rows.
func (r *PgxTaxRuleRepository) FindTaxTemplate(ctx context.Context, name string) (*domain.TaxTemplate, error) {
	var m models.TaxTemplate
	err := r.Pool.QueryRow(ctx,
		`SELECT name, company FROM tax_templates WHERE name = $1`, name,
	).Scan(&m.Name, &m.Company)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tax template %s: %w", name, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query tax template", err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT charge_type, account_head, rate, amount
		FROM tax_template_charges
		WHERE template_name = $1
		ORDER BY idx`, name)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax template charges", err)
	}
	defer rows.Close()

	template := &domain.TaxTemplate{Name: m.Name, Company: m.Company}
	for rows.Next() {
		var c models.TaxTemplateCharge
		if err := rows.Scan(&c.ChargeType, &c.AccountHead, &c.Rate, &c.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax template charge", err)
		}
		template.Charges = append(template.Charges, mapping.ToDomainTaxCharge(c))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax template charges", err)
	}
	return template, nil
}
