package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customers, suppliers,
// leads and addresses.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// GetCustomerGroup retrieves the group a customer belongs to.
func (r *PgxPartyRepository) GetCustomerGroup(ctx context.Context, customer string) (string, error) {
	var group string
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(customer_group, '') FROM customers WHERE customer_name = $1`, customer,
	).Scan(&group)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("customer %s: %w", customer, apperrors.ErrNotFound)
		}
		return "", apperrors.NewAppError(500, "failed to query customer group", err)
	}
	return group, nil
}

// GetSupplierType retrieves the type a supplier belongs to.
func (r *PgxPartyRepository) GetSupplierType(ctx context.Context, supplier string) (string, error) {
	var supplierType string
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(supplier_type, '') FROM suppliers WHERE supplier_name = $1`, supplier,
	).Scan(&supplierType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("supplier %s: %w", supplier, apperrors.ErrNotFound)
		}
		return "", apperrors.NewAppError(500, "failed to query supplier type", err)
	}
	return supplierType, nil
}

// FindCustomerByContactEmail retrieves the customer whose contact email
// matches, or ErrNotFound when no customer is linked to that email.
func (r *PgxPartyRepository) FindCustomerByContactEmail(ctx context.Context, email string) (string, error) {
	var customer string
	err := r.Pool.QueryRow(ctx,
		`SELECT customer_name FROM customers WHERE contact_email = $1`, email,
	).Scan(&customer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("customer with email %s: %w", email, apperrors.ErrNotFound)
		}
		return "", apperrors.NewAppError(500, "failed to query customer by email", err)
	}
	return customer, nil
}

// FindLeadByEmail retrieves the lead record for an email address.
func (r *PgxPartyRepository) FindLeadByEmail(ctx context.Context, email string) (*domain.LeadRecord, error) {
	var lead domain.LeadRecord
	err := r.Pool.QueryRow(ctx, `
		SELECT lead_id, lead_name, email, status, company,
			created_at, created_by, last_updated_at, last_updated_by
		FROM leads WHERE email = $1`, email,
	).Scan(
		&lead.LeadID, &lead.LeadName, &lead.Email, &lead.Status, &lead.Company,
		&lead.CreatedAt, &lead.CreatedBy, &lead.LastUpdatedAt, &lead.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lead with email %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query lead", err)
	}
	return &lead, nil
}

// SaveLead persists a new lead.
func (r *PgxPartyRepository) SaveLead(ctx context.Context, lead domain.LeadRecord) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO leads (lead_id, lead_name, email, status, company,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lead.LeadID, lead.LeadName, lead.Email, lead.Status, lead.Company,
		lead.CreatedAt, lead.CreatedBy, lead.LastUpdatedAt, lead.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lead with email %s: %w", lead.Email, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert lead", err)
	}
	return nil
}

const addressColumns = `address_id, COALESCE(city, ''), COALESCE(state, ''), COALESCE(country, ''), is_primary_address, is_shipping_address`

func (r *PgxPartyRepository) scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.AddressID, &a.City, &a.State, &a.Country, &a.IsPrimaryAddress, &a.IsShippingAddress)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAddressByID retrieves a single address.
func (r *PgxPartyRepository) FindAddressByID(ctx context.Context, addressID string) (*domain.Address, error) {
	query := fmt.Sprintf(`SELECT %s FROM addresses WHERE address_id = $1`, addressColumns)
	a, err := r.scanAddress(r.Pool.QueryRow(ctx, query, addressID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("address %s: %w", addressID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query address", err)
	}
	return a, nil
}

// FindPrimaryAddress retrieves the primary (billing) address of a party.
func (r *PgxPartyRepository) FindPrimaryAddress(ctx context.Context, partyType domain.PartyType, party string) (*domain.Address, error) {
	return r.findPartyAddress(ctx, partyType, party, "is_primary_address")
}

// FindShippingAddress retrieves the shipping address of a party.
func (r *PgxPartyRepository) FindShippingAddress(ctx context.Context, partyType domain.PartyType, party string) (*domain.Address, error) {
	return r.findPartyAddress(ctx, partyType, party, "is_shipping_address")
}

func (r *PgxPartyRepository) findPartyAddress(ctx context.Context, partyType domain.PartyType, party string, flagColumn string) (*domain.Address, error) {
	// flagColumn is one of two fixed column names chosen above.
	query := fmt.Sprintf(`
		SELECT %s FROM addresses
		WHERE party_type = $1 AND party = $2 AND %s
		ORDER BY address_id LIMIT 1`, addressColumns, flagColumn)

	a, err := r.scanAddress(r.Pool.QueryRow(ctx, query, string(partyType), party))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s address for %s %s: %w", flagColumn, partyType, party, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query party address", err)
	}
	return a, nil
}
