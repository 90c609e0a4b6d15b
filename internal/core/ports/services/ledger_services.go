package services

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
)

// LedgerSvc aggregates posted movements into balances.
type LedgerSvc interface {
	// GetAccountBalance returns the account balance including movements dated on or before asOf.
	// A nil asOf includes every posted movement.
	GetAccountBalance(ctx context.Context, code string, asOf *time.Time, userID string) (*domain.LedgerBalance, error)

	// GetPartyBalance returns the party balance including movements dated on or before asOf.
	GetPartyBalance(ctx context.Context, partyID string, asOf *time.Time, userID string) (*domain.LedgerBalance, error)

	// ListAccountStatement returns posted lines against an account in date order.
	ListAccountStatement(ctx context.Context, code string, params dto.ListStatementParams, userID string) (*dto.AccountStatementResponse, error)
}
