package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType identifies the kind of transactional document a payment can be
// applied against.
type VoucherType string

const (
	SalesOrder          VoucherType = "Sales Order"
	PurchaseOrder       VoucherType = "Purchase Order"
	SalesInvoice        VoucherType = "Sales Invoice"
	PurchaseInvoice     VoucherType = "Purchase Invoice"
	JournalEntryVoucher VoucherType = "Journal Entry"
)

// Valid reports whether v is one of the supported voucher types.
func (v VoucherType) Valid() bool {
	switch v {
	case SalesOrder, PurchaseOrder, SalesInvoice, PurchaseInvoice, JournalEntryVoucher:
		return true
	}
	return false
}

// IsOrder reports whether the voucher is a sales or purchase order. Payments
// against orders are advances.
func (v VoucherType) IsOrder() bool {
	return v == SalesOrder || v == PurchaseOrder
}

// IsInvoice reports whether the voucher is a sales or purchase invoice.
func (v VoucherType) IsInvoice() bool {
	return v == SalesInvoice || v == PurchaseInvoice
}

// PaymentDirection states whether money is received from or paid to the party.
type PaymentDirection string

const (
	Received PaymentDirection = "Received"
	Paid     PaymentDirection = "Paid"
)

// VoucherRef is a single row of a payment request: a voucher to apply a
// payment amount against.
type VoucherRef struct {
	AgainstVoucherType VoucherType     `json:"againstVoucherType"`
	AgainstVoucherNo   string          `json:"againstVoucherNo"`
	PaymentAmount      decimal.Decimal `json:"paymentAmount"`
}

// OutstandingVoucher is an invoice or order with an open balance against the
// party, as returned by the outstanding-voucher listing.
type OutstandingVoucher struct {
	VoucherType       VoucherType     `json:"voucherType"`
	VoucherNo         string          `json:"voucherNo"`
	PostingDate       time.Time       `json:"postingDate"`
	InvoiceAmount     decimal.Decimal `json:"invoiceAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

// VoucherAmount holds the total and outstanding amounts of a single voucher.
// OutstandingAmount is nil for journal entries, which have no outstanding
// concept of their own.
type VoucherAmount struct {
	TotalAmount       decimal.Decimal  `json:"totalAmount"`
	OutstandingAmount *decimal.Decimal `json:"outstandingAmount,omitempty"`
}
