package services

import (
	"context"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
)

// PartyReaderSvc defines read operations for party ledgers
type PartyReaderSvc interface {
	GetPartyByID(ctx context.Context, partyID string, userID string) (*domain.PartyLedger, error)
	ListParties(ctx context.Context, params dto.ListPartiesParams, userID string) ([]domain.PartyLedger, error)
}

// PartyWriterSvc defines write operations for party ledgers
type PartyWriterSvc interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.PartyLedger, error)
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.PartyLedger, error)
	DeactivateParty(ctx context.Context, partyID string, userID string) error
}

// PartySvcFacade combines party read and write operations.
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
