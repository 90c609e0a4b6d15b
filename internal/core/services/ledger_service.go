package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// ledgerService aggregates posted movements into account and party balances.
// Reads are last-committed; they do not take locks.
type ledgerService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	partyRepo    portsrepo.PartyReader
	movementRepo portsrepo.MovementReader
}

// NewLedgerService creates the balance aggregator.
func NewLedgerService(accountRepo portsrepo.AccountReader, partyRepo portsrepo.PartyReader, movementRepo portsrepo.MovementReader, options ...Option) portssvc.LedgerSvc {
	svc := &ledgerService{
		accountRepo:  accountRepo,
		partyRepo:    partyRepo,
		movementRepo: movementRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) GetAccountBalance(ctx context.Context, code string, asOf *time.Time, userID string) (*domain.LedgerBalance, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	debit, credit, err := s.movementRepo.SumAccountMovements(ctx, code, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account movements", slog.String("code", code))
		return nil, fmt.Errorf("failed to compute balance for account %s: %w", code, err)
	}

	balance := newLedgerBalance(account.OpeningBalance, debit, credit, account.NormalBalance, asOf)
	balance.Code = account.Code
	balance.Name = account.Name
	return &balance, nil
}

func (s *ledgerService) GetPartyBalance(ctx context.Context, partyID string, asOf *time.Time, userID string) (*domain.LedgerBalance, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	debit, credit, err := s.movementRepo.SumPartyMovements(ctx, partyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum party movements", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to compute balance for party %s: %w", partyID, err)
	}

	balance := newLedgerBalance(party.OpeningBalance, debit, credit, party.PartyType.NormalBalance(), asOf)
	balance.Code = party.PartyID
	balance.Name = party.PartyName
	return &balance, nil
}

func newLedgerBalance(opening, debit, credit decimal.Decimal, normal domain.NormalBalance, asOf *time.Time) domain.LedgerBalance {
	balance, side := accounting.NetBalance(opening, debit, credit, normal)
	return domain.LedgerBalance{
		NormalBalance:  normal,
		OpeningBalance: opening,
		TotalDebit:     debit,
		TotalCredit:    credit,
		Balance:        balance,
		BalanceType:    side,
		AsOf:           asOf,
	}
}

func (s *ledgerService) ListAccountStatement(ctx context.Context, code string, params dto.ListStatementParams, userID string) (*dto.AccountStatementResponse, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err != nil {
		return nil, err
	}
	lines, nextToken, err := s.movementRepo.ListPostedLinesByAccount(ctx, code, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account statement", slog.String("code", code))
		return nil, err
	}
	return &dto.AccountStatementResponse{
		AccountCode: code,
		Lines:       dto.ToStatementLines(lines),
		NextToken:   nextToken,
	}, nil
}
