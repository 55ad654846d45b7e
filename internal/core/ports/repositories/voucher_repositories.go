package repositories

import (
	"context"

	"github.com/finpoint/erp_backend/internal/core/domain"
)

// VoucherReader defines read operations over transactional voucher documents
// (orders, invoices, journal entries).
type VoucherReader interface {
	// VoucherExists reports whether a voucher of the given type and number exists.
	VoucherExists(ctx context.Context, voucherType domain.VoucherType, voucherNo string) (bool, error)

	// FindVoucherAmount retrieves the total and outstanding amounts of a single
	// voucher. useCompanyCurrency selects base-currency fields when the party
	// account currency equals the company default currency.
	FindVoucherAmount(ctx context.Context, voucherType domain.VoucherType, voucherNo string, useCompanyCurrency bool) (*domain.VoucherAmount, error)
}

// OutstandingReader defines the balance-aggregation queries behind the
// outstanding-voucher listing.
type OutstandingReader interface {
	// FindOutstandingInvoices aggregates GL entries on the party account into
	// per-voucher outstanding amounts, signed for the payment direction.
	FindOutstandingInvoices(ctx context.Context, account string, partyType domain.PartyType, party string, direction domain.PaymentDirection) ([]domain.OutstandingVoucher, error)

	// FindOrdersToBeBilled lists submitted orders of the party that are neither
	// stopped nor fully billed nor fully advanced.
	FindOrdersToBeBilled(ctx context.Context, voucherType domain.VoucherType, partyType domain.PartyType, party string, useCompanyCurrency bool) ([]domain.OutstandingVoucher, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	OutstandingReader
}
