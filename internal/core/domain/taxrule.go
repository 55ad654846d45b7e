package domain

import "time"

// TaxType selects which side of the ledger a tax rule applies to.
type TaxType string

const (
	SalesTax    TaxType = "Sales"
	PurchaseTax TaxType = "Purchase"
)

// TaxRule is a filter-plus-template record. An empty attribute is a wildcard
// that matches any transaction value for that attribute.
type TaxRule struct {
	RuleID              string     `json:"ruleID"`
	TaxType             TaxType    `json:"taxType"`
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
	Priority            int        `json:"priority"` // lower value wins ties
	SalesTaxTemplate    string     `json:"salesTaxTemplate,omitempty"`
	PurchaseTaxTemplate string     `json:"purchaseTaxTemplate,omitempty"`
	AuditFields
}

// Template returns whichever tax template the rule carries.
func (r *TaxRule) Template() string {
	if r.SalesTaxTemplate != "" {
		return r.SalesTaxTemplate
	}
	return r.PurchaseTaxTemplate
}

// AttributeValues maps filter attribute names to the rule's stored values.
// The key set matches TaxRuleFilters.Values.
func (r *TaxRule) AttributeValues() map[string]string {
	return map[string]string{
		"tax_type":         string(r.TaxType),
		"customer":         r.Customer,
		"customer_group":   r.CustomerGroup,
		"supplier":         r.Supplier,
		"supplier_type":    r.SupplierType,
		"billing_city":     r.BillingCity,
		"billing_state":    r.BillingState,
		"billing_country":  r.BillingCountry,
		"shipping_city":    r.ShippingCity,
		"shipping_state":   r.ShippingState,
		"shipping_country": r.ShippingCountry,
		"company":          r.Company,
	}
}

// DateRangesConflict reports whether an existing rule's validity range
// (bFrom, bTo) collides with a candidate range (aFrom, aTo). A nil bound is
// open-ended. Overlap is strict on every boundary except the identical-range
// case, so two ranges that only share an endpoint do not conflict while an
// exact duplicate does.
func DateRangesConflict(aFrom, aTo, bFrom, bTo *time.Time) bool {
	switch {
	case aFrom != nil && aTo != nil:
		if bFrom != nil && bFrom.After(*aFrom) && bFrom.Before(*aTo) {
			return true
		}
		if bTo != nil && bTo.After(*aFrom) && bTo.Before(*aTo) {
			return true
		}
		if bFrom != nil && bTo != nil {
			if aFrom.After(*bFrom) && aFrom.Before(*bTo) {
				return true
			}
			if aFrom.Equal(*bFrom) && aTo.Equal(*bTo) {
				return true
			}
		}
		return false
	case aFrom != nil:
		return bTo != nil && bTo.After(*aFrom)
	case aTo != nil:
		return bFrom != nil && bFrom.Before(*aTo)
	default:
		return true
	}
}

// ConflictsWith reports whether other collides with the rule in time. The
// attribute equality that makes two rules comparable is the repository's
// concern; this only answers the date question.
func (r *TaxRule) ConflictsWith(other *TaxRule) bool {
	return DateRangesConflict(r.FromDate, r.ToDate, other.FromDate, other.ToDate)
}

// TaxRuleFilters are the transaction attributes a rule is matched against.
type TaxRuleFilters struct {
	TaxType         TaxType `json:"taxType"`
	Customer        string  `json:"customer,omitempty"`
	CustomerGroup   string  `json:"customerGroup,omitempty"`
	Supplier        string  `json:"supplier,omitempty"`
	SupplierType    string  `json:"supplierType,omitempty"`
	BillingCity     string  `json:"billingCity,omitempty"`
	BillingState    string  `json:"billingState,omitempty"`
	BillingCountry  string  `json:"billingCountry,omitempty"`
	ShippingCity    string  `json:"shippingCity,omitempty"`
	ShippingState   string  `json:"shippingState,omitempty"`
	ShippingCountry string  `json:"shippingCountry,omitempty"`
	Company         string  `json:"company,omitempty"`
}

// Values maps filter attribute names to the queried values.
func (f TaxRuleFilters) Values() map[string]string {
	return map[string]string{
		"tax_type":         string(f.TaxType),
		"customer":         f.Customer,
		"customer_group":   f.CustomerGroup,
		"supplier":         f.Supplier,
		"supplier_type":    f.SupplierType,
		"billing_city":     f.BillingCity,
		"billing_state":    f.BillingState,
		"billing_country":  f.BillingCountry,
		"shipping_city":    f.ShippingCity,
		"shipping_state":   f.ShippingState,
		"shipping_country": f.ShippingCountry,
		"company":          f.Company,
	}
}

// Specificity counts the queried attributes the rule actually constrains.
// A rule that names a customer group as well as a customer is more specific
// than one that names only the customer.
func (r *TaxRule) Specificity(filters TaxRuleFilters) int {
	ruleValues := r.AttributeValues()
	count := 0
	for key := range filters.Values() {
		if ruleValues[key] != "" {
			count++
		}
	}
	return count
}
