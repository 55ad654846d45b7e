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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CartRepository ---
type MockCartRepository struct {
	mock.Mock
}

// Ensure MockCartRepository implements portsrepo.CartRepositoryFacade
var _ portsrepo.CartRepositoryFacade = (*MockCartRepository)(nil)

func (m *MockCartRepository) FindDraftQuotation(ctx context.Context, quotationTo domain.PartyType, party string) (*domain.Quotation, error) {
	args := m.Called(ctx, quotationTo, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockCartRepository) SaveQuotation(ctx context.Context, quotation domain.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuotation(ctx context.Context, quotation domain.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockCartRepository) GetItemPrice(ctx context.Context, priceList string, itemCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, priceList, itemCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCartRepository) GetCartSettings(ctx context.Context) (*domain.CartSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartSettings), args.Error(1)
}

// --- Mock TaxResolver ---
type MockTaxResolver struct {
	mock.Mock
}

var _ portssvc.TaxResolverSvc = (*MockTaxResolver)(nil)

func (m *MockTaxResolver) ResolveTaxTemplate(ctx context.Context, postingDate time.Time, filters domain.TaxRuleFilters) (string, error) {
	args := m.Called(ctx, postingDate, filters)
	return args.String(0), args.Error(1)
}

func (m *MockTaxResolver) GetPartyDetails(ctx context.Context, q dto.PartyDetailsQuery) (*domain.PartyDetails, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartyDetails), args.Error(1)
}

// --- Test Suite Setup ---
type CartServiceTestSuite struct {
	suite.Suite
	mockCartRepo    *MockCartRepository
	mockPartyRepo   *MockPartyRepository
	mockTaxRuleRepo *MockTaxRuleRepository
	mockResolver    *MockTaxResolver
	service         portssvc.CartSvcFacade
	userEmail       string
	settings        *domain.CartSettings
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.mockCartRepo = new(MockCartRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockTaxRuleRepo = new(MockTaxRuleRepository)
	suite.mockResolver = new(MockTaxResolver)
	suite.service = services.NewCartService(suite.mockCartRepo, suite.mockPartyRepo, suite.mockTaxRuleRepo, suite.mockResolver)
	suite.userEmail = "buyer@example.com"
	suite.settings = &domain.CartSettings{
		Enabled:          true,
		Company:          "Acme Ltd",
		DefaultPriceList: "Standard Selling",
		DefaultCurrency:  "USD",
	}
}

func (suite *CartServiceTestSuite) draftQuotation(items ...domain.QuotationItem) *domain.Quotation {
	q := &domain.Quotation{
		QuotationID:     "QTN-001",
		QuotationTo:     domain.Customer,
		Customer:        "Initech",
		ContactEmail:    suite.userEmail,
		Company:         "Acme Ltd",
		Currency:        "USD",
		PriceList:       "Standard Selling",
		OrderType:       "Shopping Cart",
		TransactionDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.QuotationDraft,
		Items:           items,
	}
	q.RecalculateTotals()
	return q
}

// expectCustomerCart wires the settings and party lookups for an existing
// customer with an open draft.
func (suite *CartServiceTestSuite) expectCustomerCart(q *domain.Quotation) {
	suite.mockCartRepo.On("GetCartSettings", mock.Anything).Return(suite.settings, nil).Once()
	suite.mockPartyRepo.On("FindCustomerByContactEmail", mock.Anything, suite.userEmail).Return("Initech", nil).Once()
	suite.mockCartRepo.On("FindDraftQuotation", mock.Anything, domain.Customer, "Initech").Return(q, nil).Once()
}

// --- Test Cases ---

func (suite *CartServiceTestSuite) TestGetQuotation_CartDisabled() {
	ctx := context.Background()
	suite.mockCartRepo.On("GetCartSettings", ctx).Return(&domain.CartSettings{Enabled: false}, nil).Once()

	quotation, err := suite.service.GetQuotation(ctx, suite.userEmail)

	suite.Require().ErrorIs(err, services.ErrCartDisabled)
	suite.Nil(quotation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindCustomerByContactEmail")
}

func (suite *CartServiceTestSuite) TestGetQuotation_ExistingDraft() {
	ctx := context.Background()
	existing := suite.draftQuotation()
	suite.expectCustomerCart(existing)

	quotation, err := suite.service.GetQuotation(ctx, suite.userEmail)

	suite.Require().NoError(err)
	suite.Equal("QTN-001", quotation.QuotationID)
	suite.mockCartRepo.AssertNotCalled(suite.T(), "SaveQuotation")
}

func (suite *CartServiceTestSuite) TestGetQuotation_CreatesLeadAndQuotation() {
	ctx := context.Background()
	suite.mockCartRepo.On("GetCartSettings", ctx).Return(suite.settings, nil).Once()
	suite.mockPartyRepo.On("FindCustomerByContactEmail", ctx, suite.userEmail).Return("", apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("FindLeadByEmail", ctx, suite.userEmail).Return(nil, apperrors.ErrNotFound).Once()

	var savedLead domain.LeadRecord
	suite.mockPartyRepo.On("SaveLead", ctx, mock.AnythingOfType("domain.LeadRecord")).Run(func(args mock.Arguments) {
		savedLead = args.Get(1).(domain.LeadRecord)
	}).Return(nil).Once()

	suite.mockCartRepo.On("FindDraftQuotation", ctx, domain.Lead, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()

	var savedQuotation domain.Quotation
	suite.mockCartRepo.On("SaveQuotation", ctx, mock.AnythingOfType("domain.Quotation")).Run(func(args mock.Arguments) {
		savedQuotation = args.Get(1).(domain.Quotation)
	}).Return(nil).Once()

	quotation, err := suite.service.GetQuotation(ctx, suite.userEmail)

	suite.Require().NoError(err)
	suite.Equal("buyer", savedLead.LeadName)
	suite.Equal(suite.userEmail, savedLead.Email)
	suite.Equal("Open", savedLead.Status)
	suite.Equal(domain.Lead, savedQuotation.QuotationTo)
	suite.Equal(savedLead.LeadID, savedQuotation.Lead)
	suite.Equal("Shopping Cart", savedQuotation.OrderType)
	suite.Equal(domain.QuotationDraft, savedQuotation.Status)
	suite.Equal("Standard Selling", quotation.PriceList)
	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockCartRepo.AssertExpectations(suite.T())
}

func (suite *CartServiceTestSuite) TestSetItemInCart_AddsItem() {
	ctx := context.Background()
	suite.expectCustomerCart(suite.draftQuotation())
	suite.mockCartRepo.On("GetItemPrice", ctx, "Standard Selling", "WIDGET").Return(decimal.NewFromInt(10), nil).Once()
	suite.mockCartRepo.On("UpdateQuotation", ctx, mock.AnythingOfType("domain.Quotation")).Return(nil).Once()

	quotation, err := suite.service.SetItemInCart(ctx, suite.userEmail, "WIDGET", decimal.NewFromInt(2))

	suite.Require().NoError(err)
	suite.Require().Len(quotation.Items, 1)
	suite.True(quotation.Items[0].Amount.Equal(decimal.NewFromInt(20)))
	suite.True(quotation.NetTotal.Equal(decimal.NewFromInt(20)))
}

func (suite *CartServiceTestSuite) TestSetItemInCart_UpdatesQtyWithoutRepricing() {
	ctx := context.Background()
	existing := suite.draftQuotation(domain.QuotationItem{ItemCode: "WIDGET", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(10)})
	suite.expectCustomerCart(existing)
	suite.mockCartRepo.On("UpdateQuotation", ctx, mock.AnythingOfType("domain.Quotation")).Return(nil).Once()

	quotation, err := suite.service.SetItemInCart(ctx, suite.userEmail, "WIDGET", decimal.NewFromInt(5))

	suite.Require().NoError(err)
	suite.True(quotation.NetTotal.Equal(decimal.NewFromInt(50)))
	suite.mockCartRepo.AssertNotCalled(suite.T(), "GetItemPrice")
}

func (suite *CartServiceTestSuite) TestSetItemInCart_ZeroQtyRemoves() {
	ctx := context.Background()
	existing := suite.draftQuotation(
		domain.QuotationItem{ItemCode: "WIDGET", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(10)},
		domain.QuotationItem{ItemCode: "GADGET", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50)},
	)
	suite.expectCustomerCart(existing)
	suite.mockCartRepo.On("UpdateQuotation", ctx, mock.AnythingOfType("domain.Quotation")).Return(nil).Once()

	quotation, err := suite.service.SetItemInCart(ctx, suite.userEmail, "WIDGET", decimal.Zero)

	suite.Require().NoError(err)
	suite.Require().Len(quotation.Items, 1)
	suite.Equal("GADGET", quotation.Items[0].ItemCode)
	suite.True(quotation.NetTotal.Equal(decimal.NewFromInt(50)))
}

func (suite *CartServiceTestSuite) TestSetItemInCart_NegativeQty() {
	ctx := context.Background()

	quotation, err := suite.service.SetItemInCart(ctx, suite.userEmail, "WIDGET", decimal.NewFromInt(-1))

	suite.Require().ErrorIs(err, services.ErrNegativeQty)
	suite.Nil(quotation)
	suite.mockCartRepo.AssertNotCalled(suite.T(), "GetCartSettings")
}

func (suite *CartServiceTestSuite) TestSetItemInCart_NoPrice() {
	ctx := context.Background()
	suite.expectCustomerCart(suite.draftQuotation())
	suite.mockCartRepo.On("GetItemPrice", ctx, "Standard Selling", "UNPRICED").Return(decimal.Zero, apperrors.ErrNotFound).Once()

	quotation, err := suite.service.SetItemInCart(ctx, suite.userEmail, "UNPRICED", decimal.NewFromInt(1))

	suite.Require().ErrorIs(err, services.ErrNoItemPrice)
	suite.ErrorContains(err, "UNPRICED")
	suite.Nil(quotation)
	suite.mockCartRepo.AssertNotCalled(suite.T(), "UpdateQuotation")
}

func (suite *CartServiceTestSuite) TestApplyTaxes_ComputesCharges() {
	ctx := context.Background()
	existing := suite.draftQuotation(domain.QuotationItem{ItemCode: "WIDGET", Qty: decimal.NewFromInt(10), Rate: decimal.NewFromInt(10)})
	suite.expectCustomerCart(existing)

	suite.mockPartyRepo.On("GetCustomerGroup", ctx, "Initech").Return("Retail", nil).Once()
	details := &domain.PartyDetails{BillingCity: "Pune", BillingCountry: "India"}
	suite.mockResolver.On("GetPartyDetails", ctx, dto.PartyDetailsQuery{Party: "Initech", PartyType: "Customer"}).Return(details, nil).Once()

	expectedFilters := domain.TaxRuleFilters{
		TaxType:        domain.SalesTax,
		Customer:       "Initech",
		CustomerGroup:  "Retail",
		Company:        "Acme Ltd",
		BillingCity:    "Pune",
		BillingCountry: "India",
	}
	suite.mockResolver.On("ResolveTaxTemplate", ctx, existing.TransactionDate, expectedFilters).Return("Standard VAT", nil).Once()

	template := &domain.TaxTemplate{
		Name: "Standard VAT",
		Charges: []domain.TaxCharge{
			{ChargeType: domain.ChargeOnNetTotal, Rate: decimal.NewFromInt(18)},
			{ChargeType: domain.ChargeActual, Amount: decimal.NewFromInt(5)},
		},
	}
	suite.mockTaxRuleRepo.On("FindTaxTemplate", ctx, "Standard VAT").Return(template, nil).Once()
	suite.mockCartRepo.On("UpdateQuotation", ctx, mock.AnythingOfType("domain.Quotation")).Return(nil).Once()

	quotation, err := suite.service.ApplyTaxes(ctx, suite.userEmail)

	suite.Require().NoError(err)
	suite.Equal("Standard VAT", quotation.TaxTemplate)
	suite.True(quotation.TotalTaxesAndCharges.Equal(decimal.NewFromInt(23)), "18 percent of 100 plus a flat 5")
	suite.mockResolver.AssertExpectations(suite.T())
}

func (suite *CartServiceTestSuite) TestApplyTaxes_NoMatchClearsTemplate() {
	ctx := context.Background()
	existing := suite.draftQuotation(domain.QuotationItem{ItemCode: "WIDGET", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)})
	existing.TaxTemplate = "Old VAT"
	existing.TotalTaxesAndCharges = decimal.NewFromInt(2)
	suite.expectCustomerCart(existing)

	suite.mockPartyRepo.On("GetCustomerGroup", ctx, "Initech").Return("Retail", nil).Once()
	suite.mockResolver.On("GetPartyDetails", ctx, mock.AnythingOfType("dto.PartyDetailsQuery")).Return(&domain.PartyDetails{}, nil).Once()
	suite.mockResolver.On("ResolveTaxTemplate", ctx, existing.TransactionDate, mock.AnythingOfType("domain.TaxRuleFilters")).Return("", nil).Once()
	suite.mockCartRepo.On("UpdateQuotation", ctx, mock.AnythingOfType("domain.Quotation")).Return(nil).Once()

	quotation, err := suite.service.ApplyTaxes(ctx, suite.userEmail)

	suite.Require().NoError(err)
	suite.Empty(quotation.TaxTemplate)
	suite.True(quotation.TotalTaxesAndCharges.IsZero())
	suite.mockTaxRuleRepo.AssertNotCalled(suite.T(), "FindTaxTemplate")
}

// --- Run Test Suite ---
func TestCartService(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
