package dto

import (
	"time"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetCartItemRequest adds, updates, or removes (qty 0) a cart item.
type SetCartItemRequest struct {
	ItemCode string          `json:"itemCode" binding:"required"`
	Qty      decimal.Decimal `json:"qty"`
}

// QuotationItemResponse is one cart row.
type QuotationItemResponse struct {
	ItemCode string          `json:"itemCode"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// QuotationResponse is the API representation of the cart quotation.
type QuotationResponse struct {
	QuotationID          string                  `json:"quotationID"`
	QuotationTo          string                  `json:"quotationTo"`
	Customer             string                  `json:"customer,omitempty"`
	Lead                 string                  `json:"lead,omitempty"`
	ContactEmail         string                  `json:"contactEmail"`
	Company              string                  `json:"company"`
	Currency             string                  `json:"currency"`
	PriceList            string                  `json:"priceList"`
	OrderType            string                  `json:"orderType"`
	TransactionDate      time.Time               `json:"transactionDate"`
	Items                []QuotationItemResponse `json:"items"`
	NetTotal             decimal.Decimal         `json:"netTotal"`
	TaxTemplate          string                  `json:"taxTemplate,omitempty"`
	TotalTaxesAndCharges decimal.Decimal         `json:"totalTaxesAndCharges"`
}

// ToQuotationResponse converts a domain.Quotation to its response DTO.
func ToQuotationResponse(q *domain.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, len(q.Items))
	for i, it := range q.Items {
		items[i] = QuotationItemResponse{
			ItemCode: it.ItemCode,
			Qty:      it.Qty,
			Rate:     it.Rate,
			Amount:   it.Amount,
		}
	}
	return QuotationResponse{
		QuotationID:          q.QuotationID,
		QuotationTo:          string(q.QuotationTo),
		Customer:             q.Customer,
		Lead:                 q.Lead,
		ContactEmail:         q.ContactEmail,
		Company:              q.Company,
		Currency:             q.Currency,
		PriceList:            q.PriceList,
		OrderType:            q.OrderType,
		TransactionDate:      q.TransactionDate,
		Items:                items,
		NetTotal:             q.NetTotal,
		TaxTemplate:          q.TaxTemplate,
		TotalTaxesAndCharges: q.TotalTaxesAndCharges,
	}
}
