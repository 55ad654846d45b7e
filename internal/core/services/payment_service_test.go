package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
	"github.com/finpoint/erp_backend/internal/core/services"
	"github.com/finpoint/erp_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

// Ensure MockVoucherRepository implements portsrepo.VoucherRepositoryFacade
var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) VoucherExists(ctx context.Context, voucherType domain.VoucherType, voucherNo string) (bool, error) {
	args := m.Called(ctx, voucherType, voucherNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherAmount(ctx context.Context, voucherType domain.VoucherType, voucherNo string, useCompanyCurrency bool) (*domain.VoucherAmount, error) {
	args := m.Called(ctx, voucherType, voucherNo, useCompanyCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherAmount), args.Error(1)
}

func (m *MockVoucherRepository) FindOutstandingInvoices(ctx context.Context, account string, partyType domain.PartyType, party string, direction domain.PaymentDirection) ([]domain.OutstandingVoucher, error) {
	args := m.Called(ctx, account, partyType, party, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingVoucher), args.Error(1)
}

func (m *MockVoucherRepository) FindOrdersToBeBilled(ctx context.Context, voucherType domain.VoucherType, partyType domain.PartyType, party string, useCompanyCurrency bool) ([]domain.OutstandingVoucher, error) {
	args := m.Called(ctx, voucherType, partyType, party, useCompanyCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingVoucher), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) GetAccountCurrency(ctx context.Context, accountName string) (string, error) {
	args := m.Called(ctx, accountName)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) GetBalance(ctx context.Context, accountName string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountName)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) GetDefaultCurrency(ctx context.Context, company string) (string, error) {
	args := m.Called(ctx, company)
	return args.String(0), args.Error(1)
}

// --- Mock Authorizer ---
type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.AuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeCapability(ctx context.Context, userID string, capability string) error {
	args := m.Called(ctx, userID, capability)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.PaymentSvcFacade
	userID          string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewPaymentService(suite.mockVoucherRepo, suite.mockAccountRepo, suite.mockAuthorizer)
	suite.userID = uuid.NewString()
}

func (suite *PaymentServiceTestSuite) buildRequest(direction string, vouchers ...dto.VoucherRowRequest) dto.BuildJournalEntryRequest {
	return dto.BuildJournalEntryRequest{
		Company:        "Acme Ltd",
		PartyType:      "Supplier",
		Party:          "Globex",
		PartyAccount:   "Creditors - A",
		ReceivedOrPaid: direction,
		PaymentAccount: "Bank - A",
		Vouchers:       vouchers,
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestBuildJournalEntry_SupplierPaidAgainstOrder() {
	ctx := context.Background()
	req := suite.buildRequest("Paid", dto.VoucherRowRequest{
		AgainstVoucherType: "Purchase Order",
		AgainstVoucherNo:   "PO-001",
		PaymentAmount:      decimal.NewFromInt(100),
	})

	suite.mockAccountRepo.On("GetBalance", ctx, "Creditors - A").Return(decimal.NewFromInt(-100), nil).Once()
	suite.mockVoucherRepo.On("VoucherExists", ctx, domain.PurchaseOrder, "PO-001").Return(true, nil).Once()
	suite.mockAccountRepo.On("GetBalance", ctx, "Bank - A").Return(decimal.NewFromInt(5000), nil).Once()

	entry, err := suite.service.BuildJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 2)

	partyLine := entry.Lines[0]
	suite.Equal("Creditors - A", partyLine.Account)
	suite.Equal(domain.Supplier, partyLine.PartyType)
	suite.True(partyLine.Debit.Equal(decimal.NewFromInt(100)))
	suite.True(partyLine.Credit.IsZero())
	suite.Equal(domain.PurchaseOrder, partyLine.ReferenceType)
	suite.Equal("PO-001", partyLine.ReferenceName)
	suite.True(partyLine.IsAdvance, "order references are advances")

	balancing := entry.Lines[1]
	suite.Equal("Bank - A", balancing.Account)
	suite.True(balancing.Credit.Equal(decimal.NewFromInt(100)))
	suite.True(balancing.Debit.IsZero())
	suite.True(balancing.Balance.Equal(decimal.NewFromInt(5000)))

	suite.True(entry.Balanced())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestBuildJournalEntry_ReceivedCreditsParty() {
	ctx := context.Background()
	req := suite.buildRequest("Received", dto.VoucherRowRequest{
		AgainstVoucherType: "Sales Invoice",
		AgainstVoucherNo:   "SINV-007",
		PaymentAmount:      decimal.NewFromInt(250),
	})
	req.PartyType = "Customer"
	req.Party = "Initech"
	req.PartyAccount = "Debtors - A"

	suite.mockAccountRepo.On("GetBalance", ctx, "Debtors - A").Return(decimal.NewFromInt(250), nil).Once()
	suite.mockVoucherRepo.On("VoucherExists", ctx, domain.SalesInvoice, "SINV-007").Return(true, nil).Once()
	suite.mockAccountRepo.On("GetBalance", ctx, "Bank - A").Return(decimal.Zero, nil).Once()

	entry, err := suite.service.BuildJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 2)

	partyLine := entry.Lines[0]
	suite.True(partyLine.Credit.Equal(decimal.NewFromInt(250)))
	suite.True(partyLine.Debit.IsZero())
	suite.False(partyLine.IsAdvance, "invoice references are not advances")

	// Received money lands as a debit on the payment account.
	balancing := entry.Lines[1]
	suite.True(balancing.Debit.Equal(decimal.NewFromInt(250)))
	suite.True(balancing.Credit.IsZero())

	suite.True(entry.Balanced())
}

func (suite *PaymentServiceTestSuite) TestBuildJournalEntry_ZeroRowsSkippedButValidated() {
	ctx := context.Background()
	req := suite.buildRequest("Paid",
		dto.VoucherRowRequest{AgainstVoucherType: "Purchase Order", AgainstVoucherNo: "PO-001", PaymentAmount: decimal.NewFromInt(40)},
		dto.VoucherRowRequest{AgainstVoucherType: "Purchase Invoice", AgainstVoucherNo: "PINV-002"},
	)

	suite.mockAccountRepo.On("GetBalance", ctx, "Creditors - A").Return(decimal.Zero, nil).Once()
	suite.mockVoucherRepo.On("VoucherExists", ctx, domain.PurchaseOrder, "PO-001").Return(true, nil).Once()
	// The zero row still gets its existence check.
	suite.mockVoucherRepo.On("VoucherExists", ctx, domain.PurchaseInvoice, "PINV-002").Return(true, nil).Once()
	suite.mockAccountRepo.On("GetBalance", ctx, "Bank - A").Return(decimal.Zero, nil).Once()

	entry, err := suite.service.BuildJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2, "zero rows do not produce lines")
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestBuildJournalEntry_NoAmountFails() {
	ctx := context.Background()
	req := suite.buildRequest("Paid", dto.VoucherRowRequest{
		AgainstVoucherType: "Purchase Order",
		AgainstVoucherNo:   "PO-001",
	})

	entry, err := suite.service.BuildJournalEntry(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrNoPaymentAmount)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "VoucherExists")
}

func (suite *PaymentServiceTestSuite) TestBuildJournalEntry_UnknownVoucherFails() {
	ctx := context.Background()
	req := suite.buildRequest("Paid", dto.VoucherRowRequest{
		AgainstVoucherType: "Purchase Order",
		AgainstVoucherNo:   "PO-404",
		PaymentAmount:      decimal.NewFromInt(10),
	})

	suite.mockAccountRepo.On("GetBalance", ctx, "Creditors - A").Return(decimal.Zero, nil).Once()
	suite.mockVoucherRepo.On("VoucherExists", ctx, domain.PurchaseOrder, "PO-404").Return(false, nil).Once()

	entry, err := suite.service.BuildJournalEntry(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "PO-404")
	suite.Nil(entry)
}

func (suite *PaymentServiceTestSuite) TestListOutstandingVouchers_Success() {
	ctx := context.Background()
	q := dto.OutstandingVouchersQuery{
		Company:        "Acme Ltd",
		Party:          "Globex",
		PartyType:      "Supplier",
		PartyAccount:   "Creditors - A",
		ReceivedOrPaid: "Paid",
	}

	invoices := []domain.OutstandingVoucher{
		{VoucherType: domain.PurchaseInvoice, VoucherNo: "PINV-001", PostingDate: time.Now(), InvoiceAmount: decimal.NewFromInt(100), OutstandingAmount: decimal.NewFromInt(60)},
	}
	orders := []domain.OutstandingVoucher{
		{VoucherType: domain.PurchaseOrder, VoucherNo: "PO-002", PostingDate: time.Now(), InvoiceAmount: decimal.NewFromInt(200), OutstandingAmount: decimal.NewFromInt(200)},
	}

	suite.mockAuthorizer.On("AuthorizeCapability", ctx, suite.userID, portssvc.CapabilityPaymentTool).Return(nil).Once()
	suite.mockAccountRepo.On("GetAccountCurrency", ctx, "Creditors - A").Return("USD", nil).Once()
	suite.mockAccountRepo.On("GetDefaultCurrency", ctx, "Acme Ltd").Return("USD", nil).Once()
	suite.mockVoucherRepo.On("FindOutstandingInvoices", ctx, "Creditors - A", domain.Supplier, "Globex", domain.Paid).Return(invoices, nil).Once()
	suite.mockVoucherRepo.On("FindOrdersToBeBilled", ctx, domain.PurchaseOrder, domain.Supplier, "Globex", true).Return(orders, nil).Once()

	result, err := suite.service.ListOutstandingVouchers(ctx, q, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("PINV-001", result[0].VoucherNo)
	suite.Equal("PO-002", result[1].VoucherNo)
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestListOutstandingVouchers_ForeignCurrencyAccount() {
	ctx := context.Background()
	q := dto.OutstandingVouchersQuery{
		Company:        "Acme Ltd",
		Party:          "Initech",
		PartyType:      "Customer",
		PartyAccount:   "Debtors EUR - A",
		ReceivedOrPaid: "Received",
	}

	suite.mockAuthorizer.On("AuthorizeCapability", ctx, suite.userID, portssvc.CapabilityPaymentTool).Return(nil).Once()
	suite.mockAccountRepo.On("GetAccountCurrency", ctx, "Debtors EUR - A").Return("EUR", nil).Once()
	suite.mockAccountRepo.On("GetDefaultCurrency", ctx, "Acme Ltd").Return("USD", nil).Once()
	suite.mockVoucherRepo.On("FindOutstandingInvoices", ctx, "Debtors EUR - A", domain.Customer, "Initech", domain.Received).Return([]domain.OutstandingVoucher{}, nil).Once()
	// Transaction-currency totals are used when the account currency differs.
	suite.mockVoucherRepo.On("FindOrdersToBeBilled", ctx, domain.SalesOrder, domain.Customer, "Initech", false).Return([]domain.OutstandingVoucher{}, nil).Once()

	_, err := suite.service.ListOutstandingVouchers(ctx, q, suite.userID)

	suite.Require().NoError(err)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestListOutstandingVouchers_WrongDirection() {
	ctx := context.Background()
	q := dto.OutstandingVouchersQuery{
		Company:        "Acme Ltd",
		Party:          "Globex",
		PartyType:      "Supplier",
		PartyAccount:   "Creditors - A",
		ReceivedOrPaid: "Received",
	}

	suite.mockAuthorizer.On("AuthorizeCapability", ctx, suite.userID, portssvc.CapabilityPaymentTool).Return(nil).Once()

	result, err := suite.service.ListOutstandingVouchers(ctx, q, suite.userID)

	suite.Require().ErrorIs(err, services.ErrManualVouchers)
	suite.Nil(result)
}

func (suite *PaymentServiceTestSuite) TestListOutstandingVouchers_Forbidden() {
	ctx := context.Background()
	q := dto.OutstandingVouchersQuery{
		Company:        "Acme Ltd",
		Party:          "Globex",
		PartyType:      "Supplier",
		PartyAccount:   "Creditors - A",
		ReceivedOrPaid: "Paid",
	}

	suite.mockAuthorizer.On("AuthorizeCapability", ctx, suite.userID, portssvc.CapabilityPaymentTool).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.ListOutstandingVouchers(ctx, q, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "FindOutstandingInvoices")
}

func (suite *PaymentServiceTestSuite) TestGetAgainstVoucherAmount_JournalEntry() {
	ctx := context.Background()
	q := dto.AgainstVoucherAmountQuery{
		AgainstVoucherType: "Journal Entry",
		AgainstVoucherNo:   "JE-100",
		PartyAccount:       "Creditors - A",
		Company:            "Acme Ltd",
	}

	amount := &domain.VoucherAmount{TotalAmount: decimal.NewFromInt(300)}
	suite.mockAccountRepo.On("GetAccountCurrency", ctx, "Creditors - A").Return("USD", nil).Once()
	suite.mockAccountRepo.On("GetDefaultCurrency", ctx, "Acme Ltd").Return("USD", nil).Once()
	suite.mockVoucherRepo.On("FindVoucherAmount", ctx, domain.JournalEntryVoucher, "JE-100", true).Return(amount, nil).Once()

	result, err := suite.service.GetAgainstVoucherAmount(ctx, q)

	suite.Require().NoError(err)
	suite.True(result.TotalAmount.Equal(decimal.NewFromInt(300)))
	suite.Nil(result.OutstandingAmount, "journal entries carry no outstanding amount")
}

// --- Run Test Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
