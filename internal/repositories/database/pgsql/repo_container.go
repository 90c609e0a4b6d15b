package pgsql

import (
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		PartyRepo:       newPgxPartyRepository(dbPool),
		PurchaseRepo:    newPgxPurchaseRepository(dbPool),
		SalesRepo:       newPgxSalesRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
		ApplicationRepo: newPgxApplicationRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
