package services

import (
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Authorizer first since the other services depend on it
	container.Authorizer = NewAuthorizerService(repos.CapabilityRepo)

	container.Payment = NewPaymentService(repos.VoucherRepo, repos.AccountRepo, container.Authorizer)
	container.TaxRule = NewTaxRuleService(repos.TaxRuleRepo, repos.PartyRepo, container.Authorizer)

	// The cart resolves templates through the tax rule service
	container.Cart = NewCartService(repos.CartRepo, repos.PartyRepo, repos.TaxRuleRepo, container.TaxRule)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PaymentSvcFacade = (*paymentService)(nil)
	_ portssvc.TaxRuleSvcFacade = (*taxRuleService)(nil)
	_ portssvc.CartSvcFacade    = (*cartService)(nil)
)
