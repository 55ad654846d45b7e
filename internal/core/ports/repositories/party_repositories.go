package repositories

import (
	"context"

	"github.com/finpoint/erp_backend/internal/core/domain"
)

// PartyReader defines read operations for party master data.
type PartyReader interface {
	// GetCustomerGroup retrieves the customer group a customer belongs to.
	GetCustomerGroup(ctx context.Context, customer string) (string, error)

	// GetSupplierType retrieves the supplier type a supplier belongs to.
	GetSupplierType(ctx context.Context, supplier string) (string, error)

	// FindCustomerByContactEmail retrieves the customer name linked to a
	// contact email, if any.
	FindCustomerByContactEmail(ctx context.Context, email string) (string, error)

	// FindLeadByEmail retrieves the lead record for an email address.
	FindLeadByEmail(ctx context.Context, email string) (*domain.LeadRecord, error)
}

// PartyWriter defines write operations for party master data.
type PartyWriter interface {
	// SaveLead persists a new lead.
	SaveLead(ctx context.Context, lead domain.LeadRecord) error
}

// AddressReader defines read operations for party addresses.
type AddressReader interface {
	// FindAddressByID retrieves an address by its identifier.
	FindAddressByID(ctx context.Context, addressID string) (*domain.Address, error)

	// FindPrimaryAddress retrieves the primary address of a party, if any.
	FindPrimaryAddress(ctx context.Context, partyType domain.PartyType, party string) (*domain.Address, error)

	// FindShippingAddress retrieves the shipping address of a party, if any.
	FindShippingAddress(ctx context.Context, partyType domain.PartyType, party string) (*domain.Address, error)
}

// PartyRepositoryFacade combines all party-related repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
	AddressReader
}
