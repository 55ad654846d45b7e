package mapping

import (
	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/finpoint/erp_backend/internal/models"
)

// ToModelTaxRule converts a domain TaxRule to a model TaxRule
func ToModelTaxRule(d domain.TaxRule) models.TaxRule {
	return models.TaxRule{
		RuleID:              d.RuleID,
		TaxType:             string(d.TaxType),
		Customer:            d.Customer,
		CustomerGroup:       d.CustomerGroup,
		Supplier:            d.Supplier,
		SupplierType:        d.SupplierType,
		BillingCity:         d.BillingCity,
		BillingState:        d.BillingState,
		BillingCountry:      d.BillingCountry,
		ShippingCity:        d.ShippingCity,
		ShippingState:       d.ShippingState,
		ShippingCountry:     d.ShippingCountry,
		Company:             d.Company,
		FromDate:            d.FromDate,
		ToDate:              d.ToDate,
		Priority:            d.Priority,
		SalesTaxTemplate:    d.SalesTaxTemplate,
		PurchaseTaxTemplate: d.PurchaseTaxTemplate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxRule converts a model TaxRule to a domain TaxRule
func ToDomainTaxRule(m models.TaxRule) domain.TaxRule {
	return domain.TaxRule{
		RuleID:              m.RuleID,
		TaxType:             domain.TaxType(m.TaxType),
		Customer:            m.Customer,
		CustomerGroup:       m.CustomerGroup,
		Supplier:            m.Supplier,
		SupplierType:        m.SupplierType,
		BillingCity:         m.BillingCity,
		BillingState:        m.BillingState,
		BillingCountry:      m.BillingCountry,
		ShippingCity:        m.ShippingCity,
		ShippingState:       m.ShippingState,
		ShippingCountry:     m.ShippingCountry,
		Company:             m.Company,
		FromDate:            m.FromDate,
		ToDate:              m.ToDate,
		Priority:            m.Priority,
		SalesTaxTemplate:    m.SalesTaxTemplate,
		PurchaseTaxTemplate: m.PurchaseTaxTemplate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxRuleSlice converts a slice of model TaxRules to a slice of domain TaxRules
func ToDomainTaxRuleSlice(ms []models.TaxRule) []domain.TaxRule {
	ds := make([]domain.TaxRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxRule(m)
	}
	return ds
}

// ToDomainTaxCharge converts a model TaxTemplateCharge to a domain TaxCharge
func ToDomainTaxCharge(m models.TaxTemplateCharge) domain.TaxCharge {
	return domain.TaxCharge{
		ChargeType:  domain.TaxChargeType(m.ChargeType),
		AccountHead: m.AccountHead,
		Rate:        m.Rate,
		Amount:      m.Amount,
	}
}
