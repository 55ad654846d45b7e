package dto

import (
	"time"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherRowRequest is one against-voucher row of a payment request.
type VoucherRowRequest struct {
	AgainstVoucherType string          `json:"againstVoucherType" binding:"required,vouchertype"`
	AgainstVoucherNo   string          `json:"againstVoucherNo" binding:"required"`
	PaymentAmount      decimal.Decimal `json:"paymentAmount"`
}

// BuildJournalEntryRequest carries the inputs of the journal-entry builder.
type BuildJournalEntryRequest struct {
	Company        string              `json:"company" binding:"required"`
	ReferenceNo    string              `json:"referenceNo"`
	ReferenceDate  *time.Time          `json:"referenceDate"`
	PartyType      string              `json:"partyType" binding:"required,oneof=Customer Supplier"`
	Party          string              `json:"party" binding:"required"`
	PartyAccount   string              `json:"partyAccount" binding:"required"`
	ReceivedOrPaid string              `json:"receivedOrPaid" binding:"required,oneof=Received Paid"`
	PaymentAccount string              `json:"paymentAccount"`
	Vouchers       []VoucherRowRequest `json:"vouchers" binding:"required,min=1,dive"`
}

// OutstandingVouchersQuery are the parameters of the outstanding-voucher listing.
type OutstandingVouchersQuery struct {
	Company        string `form:"company" binding:"required"`
	Party          string `form:"party" binding:"required"`
	PartyType      string `form:"partyType" binding:"required,oneof=Customer Supplier"`
	PartyAccount   string `form:"partyAccount" binding:"required"`
	ReceivedOrPaid string `form:"receivedOrPaid" binding:"required,oneof=Received Paid"`
}

// AgainstVoucherAmountQuery identifies a single voucher to price.
type AgainstVoucherAmountQuery struct {
	AgainstVoucherType string `form:"againstVoucherType" binding:"required,vouchertype"`
	AgainstVoucherNo   string `form:"againstVoucherNo" binding:"required"`
	PartyAccount       string `form:"partyAccount" binding:"required"`
	Company            string `form:"company" binding:"required"`
}

// JournalEntryLineResponse is one accounting row of a built journal entry.
type JournalEntryLineResponse struct {
	Account       string          `json:"account"`
	PartyType     string          `json:"partyType,omitempty"`
	Party         string          `json:"party,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
	ReferenceType string          `json:"referenceType,omitempty"`
	ReferenceName string          `json:"referenceName,omitempty"`
	IsAdvance     bool            `json:"isAdvance"`
}

// JournalEntryResponse is the built, unsaved journal entry returned to the caller.
type JournalEntryResponse struct {
	Company     string                     `json:"company"`
	VoucherType string                     `json:"voucherType"`
	ChequeNo    string                     `json:"chequeNo,omitempty"`
	ChequeDate  *time.Time                 `json:"chequeDate,omitempty"`
	Lines       []JournalEntryLineResponse `json:"lines"`
	TotalDebit  decimal.Decimal            `json:"totalDebit"`
	TotalCredit decimal.Decimal            `json:"totalCredit"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(j *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalEntryLineResponse{
			Account:       l.Account,
			PartyType:     string(l.PartyType),
			Party:         l.Party,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Balance:       l.Balance,
			ReferenceType: string(l.ReferenceType),
			ReferenceName: l.ReferenceName,
			IsAdvance:     l.IsAdvance,
		}
	}
	return JournalEntryResponse{
		Company:     j.Company,
		VoucherType: j.VoucherType,
		ChequeNo:    j.ChequeNo,
		ChequeDate:  j.ChequeDate,
		Lines:       lines,
		TotalDebit:  j.TotalDebit(),
		TotalCredit: j.TotalCredit(),
	}
}

// OutstandingVoucherResponse is one outstanding invoice or order.
type OutstandingVoucherResponse struct {
	VoucherType       string          `json:"voucherType"`
	VoucherNo         string          `json:"voucherNo"`
	PostingDate       time.Time       `json:"postingDate"`
	InvoiceAmount     decimal.Decimal `json:"invoiceAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

// ToOutstandingVoucherResponses converts domain outstanding vouchers to DTOs.
func ToOutstandingVoucherResponses(vouchers []domain.OutstandingVoucher) []OutstandingVoucherResponse {
	responses := make([]OutstandingVoucherResponse, len(vouchers))
	for i, v := range vouchers {
		responses[i] = OutstandingVoucherResponse{
			VoucherType:       string(v.VoucherType),
			VoucherNo:         v.VoucherNo,
			PostingDate:       v.PostingDate,
			InvoiceAmount:     v.InvoiceAmount,
			OutstandingAmount: v.OutstandingAmount,
		}
	}
	return responses
}
