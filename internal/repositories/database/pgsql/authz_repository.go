package pgsql

import (
	"context"

	"github.com/finpoint/erp_backend/internal/apperrors"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCapabilityRepository struct {
	BaseRepository
}

// newPgxCapabilityRepository creates a new repository over capability grants.
func newPgxCapabilityRepository(pool *pgxpool.Pool) portsrepo.CapabilityReader {
	return &PgxCapabilityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCapabilityRepository implements portsrepo.CapabilityReader
var _ portsrepo.CapabilityReader = (*PgxCapabilityRepository)(nil)

// HasCapability reports whether the user holds the named capability.
func (r *PgxCapabilityRepository) HasCapability(ctx context.Context, userID string, capability string) (bool, error) {
	var held bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_capabilities WHERE user_id = $1 AND capability = $2)`,
		userID, capability,
	).Scan(&held)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to query user capability", err)
	}
	return held, nil
}
