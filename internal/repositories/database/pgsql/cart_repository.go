package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/finpoint/erp_backend/internal/models"
	"github.com/finpoint/erp_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const quotationColumns = `
	quotation_id, quotation_to, customer, lead, contact_email, company,
	currency, price_list, order_type, transaction_date, status,
	net_total, tax_template, total_taxes_and_charges,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCartRepository struct {
	BaseRepository
}

// newPgxCartRepository creates a new repository for quotations, item prices
// and cart settings.
func newPgxCartRepository(pool *pgxpool.Pool) portsrepo.CartRepositoryFacade {
	return &PgxCartRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCartRepository implements portsrepo.CartRepositoryFacade
var _ portsrepo.CartRepositoryFacade = (*PgxCartRepository)(nil)

func scanQuotation(row pgx.Row) (*models.Quotation, error) {
	var m models.Quotation
	err := row.Scan(
		&m.QuotationID, &m.QuotationTo, &m.Customer, &m.Lead, &m.ContactEmail, &m.Company,
		&m.Currency, &m.PriceList, &m.OrderType, &m.TransactionDate, &m.Status,
		&m.NetTotal, &m.TaxTemplate, &m.TotalTaxesAndCharges,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCartRepository) loadItems(ctx context.Context, quotationID string) ([]models.QuotationItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT quotation_id, idx, item_code, qty, rate, amount
		FROM quotation_items
		WHERE quotation_id = $1
		ORDER BY idx`, quotationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query quotation items", err)
	}
	defer rows.Close()

	var items []models.QuotationItem
	for rows.Next() {
		var item models.QuotationItem
		if err := rows.Scan(&item.QuotationID, &item.Idx, &item.ItemCode, &item.Qty, &item.Rate, &item.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan quotation item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating quotation items", err)
	}
	return items, nil
}

// FindDraftQuotation retrieves the open shopping cart quotation of a party.
func (r *PgxCartRepository) FindDraftQuotation(ctx context.Context, quotationTo domain.PartyType, party string) (*domain.Quotation, error) {
	partyColumn := "customer"
	if quotationTo == domain.Lead {
		partyColumn = "lead"
	}
	query := fmt.Sprintf(`
		SELECT %s FROM quotations
		WHERE quotation_to = $1 AND %s = $2 AND status = $3 AND order_type = $4
		ORDER BY created_at DESC LIMIT 1`, quotationColumns, partyColumn)

	m, err := scanQuotation(r.Pool.QueryRow(ctx, query,
		string(quotationTo), party, string(domain.QuotationDraft), "Shopping Cart"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("draft quotation for %s %s: %w", quotationTo, party, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query draft quotation", err)
	}

	items, err := r.loadItems(ctx, m.QuotationID)
	if err != nil {
		return nil, err
	}
	quotation := mapping.ToDomainQuotation(*m, items)
	return &quotation, nil
}

// SaveQuotation inserts a quotation header and its items in one transaction.
func (r *PgxCartRepository) SaveQuotation(ctx context.Context, quotation domain.Quotation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelQuotation(quotation)
	query := fmt.Sprintf(`
		INSERT INTO quotations (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		quotationColumns)

	_, err = tx.Exec(ctx, query,
		m.QuotationID, m.QuotationTo, m.Customer, m.Lead, m.ContactEmail, m.Company,
		m.Currency, m.PriceList, m.OrderType, m.TransactionDate, m.Status,
		m.NetTotal, m.TaxTemplate, m.TotalTaxesAndCharges,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quotation %s: %w", quotation.QuotationID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert quotation", err)
	}

	if err := r.insertItems(ctx, tx, quotation); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateQuotation rewrites the header and replaces all item rows atomically.
func (r *PgxCartRepository) UpdateQuotation(ctx context.Context, quotation domain.Quotation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelQuotation(quotation)
	tag, err := tx.Exec(ctx, `
		UPDATE quotations SET
			contact_email = $2, currency = $3, price_list = $4,
			transaction_date = $5, status = $6,
			net_total = $7, tax_template = $8, total_taxes_and_charges = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE quotation_id = $1`,
		m.QuotationID, m.ContactEmail, m.Currency, m.PriceList,
		m.TransactionDate, m.Status,
		m.NetTotal, m.TaxTemplate, m.TotalTaxesAndCharges,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update quotation", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quotation %s: %w", quotation.QuotationID, apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotation.QuotationID); err != nil {
		return apperrors.NewAppError(500, "failed to clear quotation items", err)
	}
	if err := r.insertItems(ctx, tx, quotation); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCartRepository) insertItems(ctx context.Context, tx pgx.Tx, quotation domain.Quotation) error {
	for _, item := range mapping.ToModelQuotationItems(quotation.QuotationID, quotation.Items) {
		_, err := tx.Exec(ctx, `
			INSERT INTO quotation_items (quotation_id, idx, item_code, qty, rate, amount)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.QuotationID, item.Idx, item.ItemCode, item.Qty, item.Rate, item.Amount,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert quotation item", err)
		}
	}
	return nil
}

// GetItemPrice retrieves the rate of an item on a price list.
func (r *PgxCartRepository) GetItemPrice(ctx context.Context, priceList string, itemCode string) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT rate FROM item_prices WHERE price_list = $1 AND item_code = $2`,
		priceList, itemCode,
	).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("price for item %s on %s: %w", itemCode, priceList, apperrors.ErrNotFound)
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to query item price", err)
	}
	return rate, nil
}

// GetCartSettings retrieves the singleton cart settings row.
func (r *PgxCartRepository) GetCartSettings(ctx context.Context) (*domain.CartSettings, error) {
	var s domain.CartSettings
	err := r.Pool.QueryRow(ctx, `
		SELECT enabled, company, default_price_list, default_currency
		FROM cart_settings LIMIT 1`,
	).Scan(&s.Enabled, &s.Company, &s.DefaultPriceList, &s.DefaultCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cart settings: %w", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query cart settings", err)
	}
	return &s, nil
}
