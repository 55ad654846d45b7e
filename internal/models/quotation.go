package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation mirrors the quotations table.
type Quotation struct {
	QuotationID          string          `json:"quotationID"`
	QuotationTo          string          `json:"quotationTo"`
	Customer             string          `json:"customer"`
	Lead                 string          `json:"lead"`
	ContactEmail         string          `json:"contactEmail"`
	Company              string          `json:"company"`
	Currency             string          `json:"currency"`
	PriceList            string          `json:"priceList"`
	OrderType            string          `json:"orderType"`
	TransactionDate      time.Time       `json:"transactionDate"`
	Status               string          `json:"status"`
	NetTotal             decimal.Decimal `json:"netTotal"`
	TaxTemplate          string          `json:"taxTemplate"`
	TotalTaxesAndCharges decimal.Decimal `json:"totalTaxesAndCharges"`
	AuditFields
}

// QuotationItem mirrors the quotation_items table.
type QuotationItem struct {
	QuotationID string          `json:"quotationID"`
	Idx         int             `json:"idx"`
	ItemCode    string          `json:"itemCode"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}
