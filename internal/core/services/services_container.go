package services

import (
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// reportCache may be nil, in which case reports are always computed.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, reportCache portssvc.ReportCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The user service is the role authorizer every other service checks against.
	userSvc := NewUserService(repos.UserRepo)
	container.User = userSvc

	common := []Option{WithAuthorizer(userSvc)}
	if reportCache != nil {
		common = append(common, WithReportCache(reportCache))
	}

	container.Account = NewAccountService(repos.AccountRepo, common...)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.PartyRepo, common...)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.PartyRepo, repos.JournalRepo, common...)
	container.Party = NewPartyService(repos.PartyRepo, common...)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, repos.PartyRepo, WithTradeOptions(common...))
	container.Sales = NewSalesService(repos.SalesRepo, repos.PartyRepo, WithTradeOptions(common...))
	container.Overdue = NewOverdueScanner(container.Purchase, container.Sales, common...)
	container.Reporting = NewReportingService(repos.ReportingRepo, common...)
	container.Distributor = NewDistributorService(repos.ApplicationRepo, common...)
	container.Token = NewTokenService(cfg)

	return container
}
