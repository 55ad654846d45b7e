package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for ledger account data.
type AccountReader interface {
	// GetAccountCurrency retrieves the currency code of an account.
	GetAccountCurrency(ctx context.Context, accountName string) (string, error)

	// GetBalance computes the current GL balance of an account (debit - credit).
	GetBalance(ctx context.Context, accountName string) (decimal.Decimal, error)
}

// CompanyReader defines read operations for company master data.
type CompanyReader interface {
	// GetDefaultCurrency retrieves the company's default currency code.
	GetDefaultCurrency(ctx context.Context, company string) (string, error)
}

// AccountRepositoryFacade combines account and company read operations.
type AccountRepositoryFacade interface {
	AccountReader
	CompanyReader
}
