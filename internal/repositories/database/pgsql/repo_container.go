package pgsql

import (
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		VoucherRepo:    newPgxVoucherRepository(dbPool),
		TaxRuleRepo:    newPgxTaxRuleRepository(dbPool),
		PartyRepo:      newPgxPartyRepository(dbPool),
		CartRepo:       newPgxCartRepository(dbPool),
		CapabilityRepo: newPgxCapabilityRepository(dbPool),
	}
}
