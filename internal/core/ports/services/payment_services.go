package services

import (
	"context"

	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/finpoint/erp_backend/internal/dto"
)

// PaymentMatcherSvc defines the journal-entry construction operation of the
// payment tool.
type PaymentMatcherSvc interface {
	// BuildJournalEntry constructs a balanced, unsaved journal entry applying
	// the requested payment amounts against their vouchers.
	BuildJournalEntry(ctx context.Context, req dto.BuildJournalEntryRequest, userID string) (*domain.JournalEntry, error)
}

// PaymentReaderSvc defines the read operations exposed by the payment tool.
type PaymentReaderSvc interface {
	// ListOutstandingVouchers returns the party's outstanding invoices and
	// not-fully-billed orders.
	ListOutstandingVouchers(ctx context.Context, q dto.OutstandingVouchersQuery, userID string) ([]domain.OutstandingVoucher, error)

	// GetAgainstVoucherAmount returns the total and outstanding amounts of a
	// single referenced voucher.
	GetAgainstVoucherAmount(ctx context.Context, q dto.AgainstVoucherAmountQuery) (*domain.VoucherAmount, error)
}

// PaymentSvcFacade combines all payment tool service interfaces.
type PaymentSvcFacade interface {
	PaymentMatcherSvc
	PaymentReaderSvc
}
