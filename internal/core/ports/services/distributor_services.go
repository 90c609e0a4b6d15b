package services

import (
	"context"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
)

// DistributorApplicantSvc covers what a distributor does with their own applications.
type DistributorApplicantSvc interface {
	// SubmitApplication validates the raw form and stores it as PENDING.
	SubmitApplication(ctx context.Context, raw []byte, userID string) (*domain.DistributorApplication, error)

	// UpdateApplication replaces the form content while the application is still editable.
	UpdateApplication(ctx context.Context, applicationID string, raw []byte, userID string) (*domain.DistributorApplication, error)

	// ListMyApplications lists the caller's applications.
	ListMyApplications(ctx context.Context, userID string) ([]domain.DistributorApplication, error)
}

// DistributorReviewSvc covers administrator review.
type DistributorReviewSvc interface {
	// GetApplication is allowed for administrators and the applicant.
	GetApplication(ctx context.Context, applicationID string, userID string) (*domain.DistributorApplication, error)
	ListApplications(ctx context.Context, params dto.ListApplicationsParams, userID string) ([]domain.DistributorApplication, error)
	TransitionStatus(ctx context.Context, applicationID string, req dto.ApplicationStatusRequest, userID string) (*domain.DistributorApplication, error)
}

// DistributorSvcFacade combines applicant and reviewer operations.
type DistributorSvcFacade interface {
	DistributorApplicantSvc
	DistributorReviewSvc
}
