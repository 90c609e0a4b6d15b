package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	JournalRepo     JournalRepositoryWithTx
	PartyRepo       PartyRepositoryFacade
	PurchaseRepo    PurchaseRepository
	SalesRepo       SalesRepository
	ReportingRepo   ReportingRepository
	ApplicationRepo DistributorApplicationRepositoryFacade
	UserRepo        UserRepositoryFacade
}
