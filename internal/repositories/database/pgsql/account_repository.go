package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finpoint/erp_backend/internal/apperrors"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account and company
// master data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// GetAccountCurrency retrieves the currency code of an account.
func (r *PgxAccountRepository) GetAccountCurrency(ctx context.Context, accountName string) (string, error) {
	query := `SELECT account_currency FROM accounts WHERE account_name = $1`

	var currency string
	err := r.Pool.QueryRow(ctx, query, accountName).Scan(&currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("account %s: %w", accountName, apperrors.ErrNotFound)
		}
		return "", apperrors.NewAppError(500, "failed to query account currency", err)
	}
	return currency, nil
}

// GetBalance computes the current GL balance of an account (debit - credit).
// Accounts with no GL entries balance to zero.
func (r *PgxAccountRepository) GetBalance(ctx context.Context, accountName string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit - credit), 0)
		FROM gl_entries
		WHERE account = $1`

	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountName).Scan(&balance)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to query account balance", err)
	}
	return balance, nil
}

// GetDefaultCurrency retrieves the company's default currency code.
func (r *PgxAccountRepository) GetDefaultCurrency(ctx context.Context, company string) (string, error) {
	query := `SELECT default_currency FROM companies WHERE company_name = $1`

	var currency string
	err := r.Pool.QueryRow(ctx, query, company).Scan(&currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("company %s: %w", company, apperrors.ErrNotFound)
		}
		return "", apperrors.NewAppError(500, "failed to query company currency", err)
	}
	return currency, nil
}
