package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
	"github.com/finpoint/erp_backend/internal/dto"
	"github.com/finpoint/erp_backend/internal/middleware"
)

var (
	// ErrNoPaymentAmount is returned when no voucher row carries a payment amount.
	ErrNoPaymentAmount = fmt.Errorf("%w: please enter a payment amount in at least one row", apperrors.ErrValidation)

	// ErrManualVouchers is returned for unsupported party-type/direction combinations.
	ErrManualVouchers = fmt.Errorf("%w: please enter the against vouchers manually", apperrors.ErrValidation)
)

// paymentService builds journal entries against outstanding vouchers.
type paymentService struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	authorizer  portssvc.AuthorizerSvc
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(voucherRepo portsrepo.VoucherRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.PaymentSvcFacade {
	return &paymentService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		authorizer:  authorizer,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// BuildJournalEntry constructs a balanced, unsaved journal entry from the
// payment request. For each voucher row with a nonzero amount a line is
// appended to the party account; a single balancing line on the payment
// account closes the entry, so total debit always equals total credit.
func (s *paymentService) BuildJournalEntry(ctx context.Context, req dto.BuildJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	direction := domain.PaymentDirection(req.ReceivedOrPaid)

	hasAmount := false
	for _, v := range req.Vouchers {
		if !v.PaymentAmount.IsZero() {
			hasAmount = true
			break
		}
	}
	if !hasAmount {
		return nil, ErrNoPaymentAmount
	}

	// Party account balance is attached to each line for display only.
	partyBalance, err := s.accountRepo.GetBalance(ctx, req.PartyAccount)
	if err != nil {
		logger.Error("Failed to fetch party account balance", slog.String("account", req.PartyAccount), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch balance for account %s: %w", req.PartyAccount, err)
	}

	entry := &domain.JournalEntry{
		Company:     req.Company,
		VoucherType: "Journal Entry",
		ChequeNo:    req.ReferenceNo,
		ChequeDate:  req.ReferenceDate,
	}

	totalPaymentAmount := decimal.Zero
	for i, v := range req.Vouchers {
		voucherType := domain.VoucherType(v.AgainstVoucherType)
		if !voucherType.Valid() {
			return nil, fmt.Errorf("%w: row %d: unknown voucher type %q", apperrors.ErrValidation, i+1, v.AgainstVoucherType)
		}

		exists, err := s.voucherRepo.VoucherExists(ctx, voucherType, v.AgainstVoucherNo)
		if err != nil {
			logger.Error("Failed to check voucher existence", slog.String("voucher_no", v.AgainstVoucherNo), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to verify voucher %s: %w", v.AgainstVoucherNo, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: row %d: %s is not a valid %s", apperrors.ErrValidation, i+1, v.AgainstVoucherNo, voucherType)
		}

		if v.PaymentAmount.IsZero() {
			continue
		}

		line := domain.JournalEntryLine{
			Account:       req.PartyAccount,
			PartyType:     domain.PartyType(req.PartyType),
			Party:         req.Party,
			Balance:       partyBalance,
			ReferenceType: voucherType,
			ReferenceName: v.AgainstVoucherNo,
			IsAdvance:     voucherType.IsOrder(),
		}
		if direction == domain.Paid {
			line.Debit = v.PaymentAmount
		} else {
			line.Credit = v.PaymentAmount
		}
		totalPaymentAmount = totalPaymentAmount.Add(line.Debit).Sub(line.Credit)
		entry.Lines = append(entry.Lines, line)
	}

	// One balancing line on the payment account guarantees the double-entry
	// invariant.
	balancing := domain.JournalEntryLine{Account: req.PaymentAccount}
	if totalPaymentAmount.IsNegative() {
		balancing.Debit = totalPaymentAmount.Abs()
	} else {
		balancing.Credit = totalPaymentAmount
	}
	if req.PaymentAccount != "" {
		balance, err := s.accountRepo.GetBalance(ctx, req.PaymentAccount)
		if err != nil {
			logger.Error("Failed to fetch payment account balance", slog.String("account", req.PaymentAccount), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch balance for account %s: %w", req.PaymentAccount, err)
		}
		balancing.Balance = balance
	}
	entry.Lines = append(entry.Lines, balancing)

	logger.Info("Journal entry built",
		slog.String("party", req.Party),
		slog.Int("lines", len(entry.Lines)),
		slog.String("total", totalPaymentAmount.Abs().String()),
	)
	return entry, nil
}

// ListOutstandingVouchers returns the party's outstanding invoices plus
// orders not yet fully billed or advanced.
func (s *paymentService) ListOutstandingVouchers(ctx context.Context, q dto.OutstandingVouchersQuery, userID string) ([]domain.OutstandingVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeCapability(ctx, userID, portssvc.CapabilityPaymentTool); err != nil {
			logger.Warn("Authorization failed for ListOutstandingVouchers", slog.String("user_id", userID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	partyType := domain.PartyType(q.PartyType)
	direction := domain.PaymentDirection(q.ReceivedOrPaid)

	// Only money received from customers and paid to suppliers can be
	// matched automatically.
	validDirection := (partyType == domain.Customer && direction == domain.Received) ||
		(partyType == domain.Supplier && direction == domain.Paid)
	if !validDirection {
		return nil, ErrManualVouchers
	}

	useCompanyCurrency, err := s.useCompanyCurrency(ctx, q.PartyAccount, q.Company)
	if err != nil {
		return nil, err
	}

	invoices, err := s.voucherRepo.FindOutstandingInvoices(ctx, q.PartyAccount, partyType, q.Party, direction)
	if err != nil {
		logger.Error("Failed to fetch outstanding invoices", slog.String("party", q.Party), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch outstanding invoices: %w", err)
	}

	orderType := domain.SalesOrder
	if partyType == domain.Supplier {
		orderType = domain.PurchaseOrder
	}
	orders, err := s.voucherRepo.FindOrdersToBeBilled(ctx, orderType, partyType, q.Party, useCompanyCurrency)
	if err != nil {
		logger.Error("Failed to fetch orders to be billed", slog.String("party", q.Party), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch orders to be billed: %w", err)
	}

	logger.Debug("Outstanding vouchers listed", slog.Int("invoices", len(invoices)), slog.Int("orders", len(orders)))
	return append(invoices, orders...), nil
}

// GetAgainstVoucherAmount returns the total and outstanding amounts of a
// single referenced voucher.
func (s *paymentService) GetAgainstVoucherAmount(ctx context.Context, q dto.AgainstVoucherAmountQuery) (*domain.VoucherAmount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucherType := domain.VoucherType(q.AgainstVoucherType)
	if !voucherType.Valid() {
		return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, q.AgainstVoucherType)
	}

	useCompanyCurrency, err := s.useCompanyCurrency(ctx, q.PartyAccount, q.Company)
	if err != nil {
		return nil, err
	}

	amount, err := s.voucherRepo.FindVoucherAmount(ctx, voucherType, q.AgainstVoucherNo, useCompanyCurrency)
	if err != nil {
		logger.Warn("Failed to fetch voucher amount", slog.String("voucher_no", q.AgainstVoucherNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch amount for %s %s: %w", voucherType, q.AgainstVoucherNo, err)
	}
	return amount, nil
}

// useCompanyCurrency reports whether the party account is held in the
// company's default currency, which selects base-currency voucher fields.
func (s *paymentService) useCompanyCurrency(ctx context.Context, partyAccount, company string) (bool, error) {
	accountCurrency, err := s.accountRepo.GetAccountCurrency(ctx, partyAccount)
	if err != nil {
		return false, fmt.Errorf("failed to fetch currency for account %s: %w", partyAccount, err)
	}
	companyCurrency, err := s.accountRepo.GetDefaultCurrency(ctx, company)
	if err != nil {
		return false, fmt.Errorf("failed to fetch default currency for company %s: %w", company, err)
	}
	return accountCurrency == companyCurrency, nil
}
