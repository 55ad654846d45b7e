package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// voucherTable describes where a voucher type lives. The table and column
// names come from this fixed map only, never from request input; all values
// are bound as query parameters.
type voucherTable struct {
	table       string
	noColumn    string
	partyColumn string
}

var voucherTables = map[domain.VoucherType]voucherTable{
	domain.SalesOrder:          {table: "sales_orders", noColumn: "order_no", partyColumn: "customer"},
	domain.PurchaseOrder:       {table: "purchase_orders", noColumn: "order_no", partyColumn: "supplier"},
	domain.SalesInvoice:        {table: "sales_invoices", noColumn: "invoice_no", partyColumn: "customer"},
	domain.PurchaseInvoice:     {table: "purchase_invoices", noColumn: "invoice_no", partyColumn: "supplier"},
	domain.JournalEntryVoucher: {table: "journal_entries", noColumn: "entry_no"},
}

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository over voucher documents
// and the general ledger.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryFacade
var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// VoucherExists reports whether a voucher of the given type and number exists.
func (r *PgxVoucherRepository) VoucherExists(ctx context.Context, voucherType domain.VoucherType, voucherNo string) (bool, error) {
	meta, ok := voucherTables[voucherType]
	if !ok {
		return false, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, voucherType)
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, meta.table, meta.noColumn)

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, voucherNo).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check voucher existence", err)
	}
	return exists, nil
}

// FindOutstandingInvoices aggregates GL entries on the party account into
// per-voucher outstanding amounts. The signed-amount expression depends on
// the payment direction: received payments offset debits, paid payments
// offset credits.
func (r *PgxVoucherRepository) FindOutstandingInvoices(ctx context.Context, account string, partyType domain.PartyType, party string, direction domain.PaymentDirection) ([]domain.OutstandingVoucher, error) {
	amountExpr := `COALESCE(debit_in_account_currency, 0) - COALESCE(credit_in_account_currency, 0)`
	invoiceExpr := `COALESCE(debit_in_account_currency, 0)`
	if direction == domain.Paid {
		amountExpr = `COALESCE(credit_in_account_currency, 0) - COALESCE(debit_in_account_currency, 0)`
		invoiceExpr = `COALESCE(credit_in_account_currency, 0)`
	}

	query := fmt.Sprintf(`
		SELECT
			against_voucher_type,
			against_voucher,
			MIN(posting_date) AS posting_date,
			SUM(%s) AS invoice_amount,
			SUM(%s) AS outstanding_amount
		FROM gl_entries
		WHERE account = $1
			AND party_type = $2
			AND party = $3
			AND COALESCE(against_voucher, '') <> ''
			AND against_voucher_type IN ('Sales Invoice', 'Purchase Invoice')
		GROUP BY against_voucher_type, against_voucher
		HAVING SUM(%s) > 0.005
		ORDER BY posting_date`, invoiceExpr, amountExpr, amountExpr)

	rows, err := r.Pool.Query(ctx, query, account, string(partyType), party)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outstanding invoices", err)
	}
	defer rows.Close()

	var vouchers []domain.OutstandingVoucher
	for rows.Next() {
		var v domain.OutstandingVoucher
		var voucherType string
		if err := rows.Scan(&voucherType, &v.VoucherNo, &v.PostingDate, &v.InvoiceAmount, &v.OutstandingAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outstanding invoice row", err)
		}
		v.VoucherType = domain.VoucherType(voucherType)
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outstanding invoice rows", err)
	}
	return vouchers, nil
}

// FindOrdersToBeBilled lists submitted orders of the party that are neither
// stopped nor fully billed (0.01 tolerance on percent billed) nor fully
// advanced.
func (r *PgxVoucherRepository) FindOrdersToBeBilled(ctx context.Context, voucherType domain.VoucherType, partyType domain.PartyType, party string, useCompanyCurrency bool) ([]domain.OutstandingVoucher, error) {
	meta, ok := voucherTables[voucherType]
	if !ok || !voucherType.IsOrder() {
		return nil, fmt.Errorf("%w: %q is not an order voucher type", apperrors.ErrValidation, voucherType)
	}

	refField := "grand_total"
	if useCompanyCurrency {
		refField = "base_grand_total"
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS voucher_no,
			COALESCE(%s, 0) AS invoice_amount,
			COALESCE(%s, 0) - COALESCE(advance_paid, 0) AS outstanding_amount,
			transaction_date AS posting_date
		FROM %s
		WHERE %s = $1
			AND status NOT IN ('Draft', 'Stopped', 'Cancelled')
			AND COALESCE(%s, 0) > COALESCE(advance_paid, 0)
			AND ABS(100 - COALESCE(per_billed, 0)) > 0.01
		ORDER BY transaction_date`,
		meta.noColumn, refField, refField, meta.table, meta.partyColumn, refField)

	rows, err := r.Pool.Query(ctx, query, party)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orders to be billed", err)
	}
	defer rows.Close()

	var vouchers []domain.OutstandingVoucher
	for rows.Next() {
		v := domain.OutstandingVoucher{VoucherType: voucherType}
		if err := rows.Scan(&v.VoucherNo, &v.InvoiceAmount, &v.OutstandingAmount, &v.PostingDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order row", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order rows", err)
	}
	return vouchers, nil
}

// FindVoucherAmount retrieves the total and outstanding amounts of a single
// voucher. Orders report total minus advance paid; invoices carry a stored
// outstanding amount; journal entries report total debit, converted by
// exchange rate when the account is held in a foreign currency.
func (r *PgxVoucherRepository) FindVoucherAmount(ctx context.Context, voucherType domain.VoucherType, voucherNo string, useCompanyCurrency bool) (*domain.VoucherAmount, error) {
	meta, ok := voucherTables[voucherType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, voucherType)
	}

	refField := "grand_total"
	if useCompanyCurrency {
		refField = "base_grand_total"
	}

	amount := &domain.VoucherAmount{}
	var err error
	switch {
	case voucherType.IsOrder():
		query := fmt.Sprintf(`
			SELECT COALESCE(%s, 0), COALESCE(%s, 0) - COALESCE(advance_paid, 0)
			FROM %s WHERE %s = $1`, refField, refField, meta.table, meta.noColumn)
		var outstanding decimal.Decimal
		err = r.Pool.QueryRow(ctx, query, voucherNo).Scan(&amount.TotalAmount, &outstanding)
		amount.OutstandingAmount = &outstanding
	case voucherType.IsInvoice():
		query := fmt.Sprintf(`
			SELECT COALESCE(%s, 0), COALESCE(outstanding_amount, 0)
			FROM %s WHERE %s = $1`, refField, meta.table, meta.noColumn)
		var outstanding decimal.Decimal
		err = r.Pool.QueryRow(ctx, query, voucherNo).Scan(&amount.TotalAmount, &outstanding)
		amount.OutstandingAmount = &outstanding
	default: // Journal Entry
		totalExpr := `COALESCE(total_debit, 0)`
		if !useCompanyCurrency {
			totalExpr = `COALESCE(COALESCE(total_debit, 0) / NULLIF(exchange_rate, 0), 0)`
		}
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, totalExpr, meta.table, meta.noColumn)
		err = r.Pool.QueryRow(ctx, query, voucherNo).Scan(&amount.TotalAmount)
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", voucherType, voucherNo, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query voucher amount", err)
	}
	return amount, nil
}
