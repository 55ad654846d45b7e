package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRule mirrors the tax_rules table. Empty attribute columns are wildcards.
type TaxRule struct {
	RuleID              string     `json:"ruleID"`
	TaxType             string     `json:"taxType"`
	Customer            string     `json:"customer"`
	CustomerGroup       string     `json:"customerGroup"`
	Supplier            string     `json:"supplier"`
	SupplierType        string     `json:"supplierType"`
	BillingCity         string     `json:"billingCity"`
	BillingState        string     `json:"billingState"`
	BillingCountry      string     `json:"billingCountry"`
	ShippingCity        string     `json:"shippingCity"`
	ShippingState       string     `json:"shippingState"`
	ShippingCountry     string     `json:"shippingCountry"`
	Company             string     `json:"company"`
	FromDate            *time.Time `json:"fromDate"`
	ToDate              *time.Time `json:"toDate"`
	Priority            int        `json:"priority"`
	SalesTaxTemplate    string     `json:"salesTaxTemplate"`
	PurchaseTaxTemplate string     `json:"purchaseTaxTemplate"`
	AuditFields
}

// TaxTemplate mirrors the tax_templates table.
type TaxTemplate struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

// TaxTemplateCharge mirrors the tax_template_charges table.
type TaxTemplateCharge struct {
	TemplateName string          `json:"templateName"`
	Idx          int             `json:"idx"`
	ChargeType   string          `json:"chargeType"`
	AccountHead  string          `json:"accountHead"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
}
