package mapping

import (
	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/finpoint/erp_backend/internal/models"
)

// ToModelQuotation converts a domain Quotation to a model Quotation.
// Items are persisted separately as quotation_items rows.
func ToModelQuotation(d domain.Quotation) models.Quotation {
	return models.Quotation{
		QuotationID:          d.QuotationID,
		QuotationTo:          string(d.QuotationTo),
		Customer:             d.Customer,
		Lead:                 d.Lead,
		ContactEmail:         d.ContactEmail,
		Company:              d.Company,
		Currency:             d.Currency,
		PriceList:            d.PriceList,
		OrderType:            d.OrderType,
		TransactionDate:      d.TransactionDate,
		Status:               string(d.Status),
		NetTotal:             d.NetTotal,
		TaxTemplate:          d.TaxTemplate,
		TotalTaxesAndCharges: d.TotalTaxesAndCharges,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQuotation converts a model Quotation and its item rows to a domain Quotation
func ToDomainQuotation(m models.Quotation, items []models.QuotationItem) domain.Quotation {
	d := domain.Quotation{
		QuotationID:          m.QuotationID,
		QuotationTo:          domain.PartyType(m.QuotationTo),
		Customer:             m.Customer,
		Lead:                 m.Lead,
		ContactEmail:         m.ContactEmail,
		Company:              m.Company,
		Currency:             m.Currency,
		PriceList:            m.PriceList,
		OrderType:            m.OrderType,
		TransactionDate:      m.TransactionDate,
		Status:               domain.QuotationStatus(m.Status),
		NetTotal:             m.NetTotal,
		TaxTemplate:          m.TaxTemplate,
		TotalTaxesAndCharges: m.TotalTaxesAndCharges,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
	d.Items = make([]domain.QuotationItem, len(items))
	for i, item := range items {
		d.Items[i] = domain.QuotationItem{
			ItemCode: item.ItemCode,
			Qty:      item.Qty,
			Rate:     item.Rate,
			Amount:   item.Amount,
		}
	}
	return d
}

// ToModelQuotationItems converts domain quotation items to model rows
func ToModelQuotationItems(quotationID string, items []domain.QuotationItem) []models.QuotationItem {
	ms := make([]models.QuotationItem, len(items))
	for i, item := range items {
		ms[i] = models.QuotationItem{
			QuotationID: quotationID,
			Idx:         i + 1,
			ItemCode:    item.ItemCode,
			Qty:         item.Qty,
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
	}
	return ms
}
