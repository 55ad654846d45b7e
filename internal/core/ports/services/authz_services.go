package services

import "context"

// Capability names used by the application.
const (
	CapabilityPaymentTool  = "payment-tool"
	CapabilityTaxRuleAdmin = "tax-rule-admin"
)

// AuthorizerSvc checks whether the current actor may perform an operation.
type AuthorizerSvc interface {
	// AuthorizeCapability returns apperrors.ErrForbidden when the user does
	// not hold the capability.
	AuthorizeCapability(ctx context.Context, userID string, capability string) error
}
