package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/pagination"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// ErrApplicationLocked is returned when the applicant edits an application that is under review or decided.
var ErrApplicationLocked = fmt.Errorf("%w: application can only be edited while PENDING or REQUIRES_CHANGES", apperrors.ErrConflict)

type distributorService struct {
	BaseService
	applicationRepo portsrepo.DistributorApplicationRepositoryFacade
	now             func() time.Time
}

// NewDistributorService creates the onboarding service.
func NewDistributorService(repo portsrepo.DistributorApplicationRepositoryFacade, options ...Option) portssvc.DistributorSvcFacade {
	svc := &distributorService{applicationRepo: repo, now: time.Now}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.DistributorSvcFacade = (*distributorService)(nil)

// applicationForm is the client-editable part of an application.
type applicationForm struct {
	Business      domain.BusinessInfo     `json:"business"`
	Contact       domain.ContactInfo      `json:"contact"`
	Distribution  domain.DistributionInfo `json:"distribution"`
	Documents     []string                `json:"documents"`
	TermsAccepted bool                    `json:"termsAccepted"`
}

// parseApplication runs the JSON Schema check on the raw body, decodes it and applies the typed rules.
func parseApplication(raw []byte) (domain.DistributorApplication, error) {
	if err := validation.ApplicationDocument(raw); err != nil {
		return domain.DistributorApplication{}, err
	}
	var form applicationForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return domain.DistributorApplication{}, validation.Errors{"body": {"must be a valid JSON object"}}
	}
	app := domain.DistributorApplication{
		Business:      form.Business,
		Contact:       form.Contact,
		Distribution:  form.Distribution,
		Documents:     form.Documents,
		TermsAccepted: form.TermsAccepted,
	}
	app.Business.BusinessType = strings.ToUpper(strings.TrimSpace(app.Business.BusinessType))
	if err := validation.DistributorApplication(app); err != nil {
		return domain.DistributorApplication{}, err
	}
	return app, nil
}

func (s *distributorService) SubmitApplication(ctx context.Context, raw []byte, userID string) (*domain.DistributorApplication, error) {
	if _, err := s.AuthorizeUser(ctx, userID, distributor...); err != nil {
		return nil, err
	}
	app, err := parseApplication(raw)
	if err != nil {
		return nil, err
	}

	app.ApplicationID = uuid.NewString()
	app.ApplicantUserID = userID
	app.Status = domain.ApplicationPending
	app.AuditFields = auditFields(userID, s.now())
	if err := s.applicationRepo.SaveApplication(ctx, app); err != nil {
		s.LogError(ctx, err, "Failed to save distributor application", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Distributor application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.String("business_name", app.Business.BusinessName))
	return &app, nil
}

func (s *distributorService) UpdateApplication(ctx context.Context, applicationID string, raw []byte, userID string) (*domain.DistributorApplication, error) {
	if _, err := s.AuthorizeUser(ctx, userID, distributor...); err != nil {
		return nil, err
	}
	current, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if current.ApplicantUserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if !current.Status.IsEditableByApplicant() {
		return nil, ErrApplicationLocked
	}

	content, err := parseApplication(raw)
	if err != nil {
		return nil, err
	}
	current.Business = content.Business
	current.Contact = content.Contact
	current.Distribution = content.Distribution
	current.Documents = content.Documents
	current.TermsAccepted = content.TermsAccepted
	current.LastUpdatedAt = s.now()
	current.LastUpdatedBy = userID

	if err := s.applicationRepo.UpdateApplicationContent(ctx, *current); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrApplicationLocked
		}
		s.LogError(ctx, err, "Failed to update distributor application", slog.String("application_id", applicationID))
		return nil, err
	}
	s.LogInfo(ctx, "Distributor application updated", slog.String("application_id", applicationID))
	return current, nil
}

func (s *distributorService) ListMyApplications(ctx context.Context, userID string) ([]domain.DistributorApplication, error) {
	if _, err := s.AuthorizeUser(ctx, userID, distributor...); err != nil {
		return nil, err
	}
	apps, err := s.applicationRepo.ListApplicationsByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		return []domain.DistributorApplication{}, nil
	}
	return apps, nil
}

// GetApplication returns the application to administrators and to its applicant.
// Other callers get ErrNotFound so they cannot probe for IDs.
func (s *distributorService) GetApplication(ctx context.Context, applicationID string, userID string) (*domain.DistributorApplication, error) {
	user, err := s.AuthorizeUser(ctx, userID, anyRole...)
	if err != nil {
		return nil, err
	}
	app, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if user != nil && !user.HasRole(domain.RoleAdmin) && app.ApplicantUserID != userID {
		s.LogDebug(ctx, "Application requested by a non-owner", slog.String("application_id", applicationID))
		return nil, apperrors.ErrNotFound
	}
	return app, nil
}

func (s *distributorService) ListApplications(ctx context.Context, params dto.ListApplicationsParams, userID string) ([]domain.DistributorApplication, error) {
	if _, err := s.AuthorizeUser(ctx, userID, adminOnly...); err != nil {
		return nil, err
	}
	var status *domain.ApplicationStatus
	if raw := strings.ToUpper(strings.TrimSpace(params.Status)); raw != "" {
		st := domain.ApplicationStatus(raw)
		if !st.IsValid() {
			return nil, validation.Errors{"status": {"is not a valid application status"}}
		}
		status = &st
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	apps, err := s.applicationRepo.ListApplications(ctx, status, pagination.NormalizeLimit(params.Limit), offset)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		return []domain.DistributorApplication{}, nil
	}
	return apps, nil
}

// TransitionStatus applies an administrator decision following the allowed transition table.
func (s *distributorService) TransitionStatus(ctx context.Context, applicationID string, req dto.ApplicationStatusRequest, userID string) (*domain.DistributorApplication, error) {
	if _, err := s.AuthorizeUser(ctx, userID, adminOnly...); err != nil {
		return nil, err
	}
	app, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	to := domain.ApplicationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	notes := strings.TrimSpace(req.ReviewNotes)
	if err := validation.StatusTransition(app.Status, to, notes); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.applicationRepo.UpdateApplicationStatus(ctx, applicationID, app.Status, to, notes, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: application status changed concurrently", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to update application status", slog.String("application_id", applicationID))
		return nil, err
	}

	from := app.Status
	app.Status = to
	app.ReviewNotes = notes
	app.ReviewedBy = &userID
	app.ReviewedAt = &now
	app.LastUpdatedAt = now
	app.LastUpdatedBy = userID

	s.LogInfo(ctx, "Distributor application status changed",
		slog.String("application_id", applicationID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return app, nil
}
