package services

import (
	"context"
	"fmt"

	"github.com/finpoint/erp_backend/internal/apperrors"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
)

// authorizerService checks capability grants for the current actor.
type authorizerService struct {
	capabilityRepo portsrepo.CapabilityReader
}

// NewAuthorizerService creates a new AuthorizerService.
func NewAuthorizerService(capabilityRepo portsrepo.CapabilityReader) portssvc.AuthorizerSvc {
	return &authorizerService{capabilityRepo: capabilityRepo}
}

var _ portssvc.AuthorizerSvc = (*authorizerService)(nil)

// AuthorizeCapability returns apperrors.ErrForbidden when the user does not
// hold the capability.
func (s *authorizerService) AuthorizeCapability(ctx context.Context, userID string, capability string) error {
	ok, err := s.capabilityRepo.HasCapability(ctx, userID, capability)
	if err != nil {
		return fmt.Errorf("failed to check capability %s for user %s: %w", capability, userID, err)
	}
	if !ok {
		return fmt.Errorf("%w: user %s lacks capability %s", apperrors.ErrForbidden, userID, capability)
	}
	return nil
}
