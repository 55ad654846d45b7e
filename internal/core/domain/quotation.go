package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus indicates the state of a quotation.
type QuotationStatus string

const (
	QuotationDraft     QuotationStatus = "DRAFT"
	QuotationSubmitted QuotationStatus = "SUBMITTED"
	QuotationCancelled QuotationStatus = "CANCELLED"
)

// Quotation is a priced offer to a party. The shopping cart is simply the
// open draft quotation of the logged-in user's party.
type Quotation struct {
	QuotationID          string          `json:"quotationID"`
	QuotationTo          PartyType       `json:"quotationTo"` // Customer or Lead
	Customer             string          `json:"customer,omitempty"`
	Lead                 string          `json:"lead,omitempty"`
	ContactEmail         string          `json:"contactEmail"`
	Company              string          `json:"company"`
	Currency             string          `json:"currency"`
	PriceList            string          `json:"priceList"`
	OrderType            string          `json:"orderType"`
	TransactionDate      time.Time       `json:"transactionDate"`
	Status               QuotationStatus `json:"status"`
	Items                []QuotationItem `json:"items"`
	NetTotal             decimal.Decimal `json:"netTotal"`
	TaxTemplate          string          `json:"taxTemplate,omitempty"`
	TotalTaxesAndCharges decimal.Decimal `json:"totalTaxesAndCharges"`
	AuditFields
}

// QuotationItem is a single cart row. Amount is always Rate x Qty.
type QuotationItem struct {
	ItemCode string          `json:"itemCode"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// RecalculateTotals recomputes each item amount and the quotation net total.
func (q *Quotation) RecalculateTotals() {
	total := decimal.Zero
	for i := range q.Items {
		q.Items[i].Amount = q.Items[i].Rate.Mul(q.Items[i].Qty)
		total = total.Add(q.Items[i].Amount)
	}
	q.NetTotal = total
}

// TaxChargeType states how a tax template charge is computed.
type TaxChargeType string

const (
	ChargeActual     TaxChargeType = "Actual"
	ChargeOnNetTotal TaxChargeType = "On Net Total"
)

// TaxCharge is one row of a tax template.
type TaxCharge struct {
	ChargeType  TaxChargeType   `json:"chargeType"`
	AccountHead string          `json:"accountHead"`
	Rate        decimal.Decimal `json:"rate"`   // percent, for On Net Total
	Amount      decimal.Decimal `json:"amount"` // fixed, for Actual
}

// TaxTemplate is a named set of tax charges applied to a transaction.
type TaxTemplate struct {
	Name    string      `json:"name"`
	Company string      `json:"company"`
	Charges []TaxCharge `json:"charges"`
}

// TotalOn computes the template's total charges against a net total.
func (t *TaxTemplate) TotalOn(netTotal decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, c := range t.Charges {
		switch c.ChargeType {
		case ChargeActual:
			total = total.Add(c.Amount)
		case ChargeOnNetTotal:
			total = total.Add(netTotal.Mul(c.Rate).Div(decimal.NewFromInt(100)))
		}
	}
	return total
}

// CartSettings is the single shopping cart configuration record.
type CartSettings struct {
	Enabled          bool   `json:"enabled"`
	Company          string `json:"company"`
	DefaultPriceList string `json:"defaultPriceList"`
	DefaultCurrency  string `json:"defaultCurrency"`
}
