package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/pagination"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/google/uuid"
)

type partyService struct {
	BaseService
	partyRepo portsrepo.PartyRepositoryFacade
	now       func() time.Time
}

// NewPartyService creates the party ledger service.
func NewPartyService(repo portsrepo.PartyRepositoryFacade, options ...Option) portssvc.PartySvcFacade {
	svc := &partyService{partyRepo: repo, now: time.Now}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.PartyLedger, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	party := req.ToDomain()
	if err := validation.Party(party); err != nil {
		return nil, err
	}

	party.PartyID = uuid.NewString()
	party.CurrentBalance = party.OpeningBalance
	party.IsActive = true
	party.AuditFields = auditFields(userID, s.now())

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("party_name", party.PartyName))
		return nil, err
	}
	s.LogInfo(ctx, "Party created", slog.String("party_id", party.PartyID), slog.String("party_type", string(party.PartyType)))
	return &party, nil
}

func (s *partyService) GetPartyByID(ctx context.Context, partyID string, userID string) (*domain.PartyLedger, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

func (s *partyService) ListParties(ctx context.Context, params dto.ListPartiesParams, userID string) ([]domain.PartyLedger, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	filter := portsrepo.PartyFilter{IsActive: params.Active, Search: strings.TrimSpace(params.Search)}
	if t := strings.ToUpper(strings.TrimSpace(params.Type)); t != "" {
		partyType := domain.PartyType(t)
		switch partyType {
		case domain.PartyCustomer, domain.PartySupplier, domain.PartyBank, domain.PartyCash, domain.PartyOther:
			filter.PartyType = &partyType
		default:
			return nil, validation.Errors{"type": {"must be one of CUSTOMER, SUPPLIER, BANK, CASH, OTHER"}}
		}
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	parties, err := s.partyRepo.ListParties(ctx, filter, pagination.NormalizeLimit(params.Limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties")
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	if parties == nil {
		return []domain.PartyLedger{}, nil
	}
	return parties, nil
}

func (s *partyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.PartyLedger, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&party.PartyName, req.PartyName)
	set(&party.TaxID, req.TaxID)
	set(&party.Phone, req.Phone)
	set(&party.Email, req.Email)
	set(&party.Address, req.Address)
	if err := validation.Party(*party); err != nil {
		return nil, err
	}

	party.LastUpdatedAt = s.now()
	party.LastUpdatedBy = userID
	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		return nil, err
	}
	return party, nil
}

func (s *partyService) DeactivateParty(ctx context.Context, partyID string, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return err
	}
	if _, err := s.partyRepo.FindPartyByID(ctx, partyID); err != nil {
		return err
	}
	if err := s.partyRepo.DeactivateParty(ctx, partyID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate party", slog.String("party_id", partyID))
		return err
	}
	s.LogInfo(ctx, "Party deactivated", slog.String("party_id", partyID))
	return nil
}
