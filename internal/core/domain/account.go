package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a ledger account. Balances are derived from GL entries, not
// stored on the account row.
type Account struct {
	AccountName     string          `json:"accountName"` // Primary key in the chart of accounts
	Company         string          `json:"company"`
	AccountCurrency string          `json:"accountCurrency"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"` // populated on read for display
	AuditFields
}

// Company holds the company master fields the payment tooling needs.
type Company struct {
	CompanyName     string `json:"companyName"`
	DefaultCurrency string `json:"defaultCurrency"`
	AuditFields
}
