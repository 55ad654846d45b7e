package dto

import (
	"time"

	"github.com/finpoint/erp_backend/internal/core/domain"
)

// SaveTaxRuleRequest carries the editable fields of a tax rule.
type SaveTaxRuleRequest struct {
	TaxType             string     `json:"taxType" binding:"required,oneof=Sales Purchase"`
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
	Priority            int        `json:"priority" binding:"min=1"`
	SalesTaxTemplate    string     `json:"salesTaxTemplate"`
	PurchaseTaxTemplate string     `json:"purchaseTaxTemplate"`
}

// ToDomainTaxRule builds a domain tax rule from the request. RuleID and audit
// fields are filled in by the service.
func (r SaveTaxRuleRequest) ToDomainTaxRule() domain.TaxRule {
	return domain.TaxRule{
		TaxType:             domain.TaxType(r.TaxType),
		Customer:            r.Customer,
		CustomerGroup:       r.CustomerGroup,
		Supplier:            r.Supplier,
		SupplierType:        r.SupplierType,
		BillingCity:         r.BillingCity,
		BillingState:        r.BillingState,
		BillingCountry:      r.BillingCountry,
		ShippingCity:        r.ShippingCity,
		ShippingState:       r.ShippingState,
		ShippingCountry:     r.ShippingCountry,
		Company:             r.Company,
		FromDate:            r.FromDate,
		ToDate:              r.ToDate,
		Priority:            r.Priority,
		SalesTaxTemplate:    r.SalesTaxTemplate,
		PurchaseTaxTemplate: r.PurchaseTaxTemplate,
	}
}

// ListTaxRulesParams holds pagination parameters for listing tax rules.
type ListTaxRulesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TaxRuleResponse is the API representation of a tax rule.
type TaxRuleResponse struct {
	RuleID              string     `json:"ruleID"`
	TaxType             string     `json:"taxType"`
	Customer            string     `json:"customer,omitempty"`
	CustomerGroup       string     `json:"customerGroup,omitempty"`
	Supplier            string     `json:"supplier,omitempty"`
	SupplierType        string     `json:"supplierType,omitempty"`
	BillingCity         string     `json:"billingCity,omitempty"`
	BillingState        string     `json:"billingState,omitempty"`
	BillingCountry      string     `json:"billingCountry,omitempty"`
	ShippingCity        string     `json:"shippingCity,omitempty"`
	ShippingState       string     `json:"shippingState,omitempty"`
	ShippingCountry     string     `json:"shippingCountry,omitempty"`
	Company             string     `json:"company,omitempty"`
	FromDate            *time.Time `json:"fromDate,omitempty"`
	ToDate              *time.Time `json:"toDate,omitempty"`
	Priority            int        `json:"priority"`
	SalesTaxTemplate    string     `json:"salesTaxTemplate,omitempty"`
	PurchaseTaxTemplate string     `json:"purchaseTaxTemplate,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// ToTaxRuleResponse converts a domain.TaxRule to its response DTO.
func ToTaxRuleResponse(r *domain.TaxRule) TaxRuleResponse {
	return TaxRuleResponse{
		RuleID:              r.RuleID,
		TaxType:             string(r.TaxType),
		Customer:            r.Customer,
		CustomerGroup:       r.CustomerGroup,
		Supplier:            r.Supplier,
		SupplierType:        r.SupplierType,
		BillingCity:         r.BillingCity,
		BillingState:        r.BillingState,
		BillingCountry:      r.BillingCountry,
		ShippingCity:        r.ShippingCity,
		ShippingState:       r.ShippingState,
		ShippingCountry:     r.ShippingCountry,
		Company:             r.Company,
		FromDate:            r.FromDate,
		ToDate:              r.ToDate,
		Priority:            r.Priority,
		SalesTaxTemplate:    r.SalesTaxTemplate,
		PurchaseTaxTemplate: r.PurchaseTaxTemplate,
		CreatedAt:           r.CreatedAt,
	}
}

// ListTaxRulesResponse is the paginated tax-rule listing.
type ListTaxRulesResponse struct {
	TaxRules  []TaxRuleResponse `json:"taxRules"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ResolveTaxTemplateRequest carries the transaction attributes to match.
type ResolveTaxTemplateRequest struct {
	PostingDate     time.Time `json:"postingDate" binding:"required"`
	TaxType         string    `json:"taxType" binding:"required,oneof=Sales Purchase"`
	Customer        string    `json:"customer"`
	CustomerGroup   string    `json:"customerGroup"`
	Supplier        string    `json:"supplier"`
	SupplierType    string    `json:"supplierType"`
	BillingCity     string    `json:"billingCity"`
	BillingState    string    `json:"billingState"`
	BillingCountry  string    `json:"billingCountry"`
	ShippingCity    string    `json:"shippingCity"`
	ShippingState   string    `json:"shippingState"`
	ShippingCountry string    `json:"shippingCountry"`
	Company         string    `json:"company"`
}

// ToDomainFilters builds the match attributes from the request.
func (r ResolveTaxTemplateRequest) ToDomainFilters() domain.TaxRuleFilters {
	return domain.TaxRuleFilters{
		TaxType:         domain.TaxType(r.TaxType),
		Customer:        r.Customer,
		CustomerGroup:   r.CustomerGroup,
		Supplier:        r.Supplier,
		SupplierType:    r.SupplierType,
		BillingCity:     r.BillingCity,
		BillingState:    r.BillingState,
		BillingCountry:  r.BillingCountry,
		ShippingCity:    r.ShippingCity,
		ShippingState:   r.ShippingState,
		ShippingCountry: r.ShippingCountry,
		Company:         r.Company,
	}
}

// ResolveTaxTemplateResponse returns the matched template, empty when none.
type ResolveTaxTemplateResponse struct {
	TaxTemplate string `json:"taxTemplate"`
}

// PartyDetailsQuery identifies the party whose geography is requested.
type PartyDetailsQuery struct {
	Party             string `form:"party" binding:"required"`
	PartyType         string `form:"partyType" binding:"required,oneof=Customer Supplier Lead"`
	BillingAddressID  string `form:"billingAddressID"`
	ShippingAddressID string `form:"shippingAddressID"`
}
