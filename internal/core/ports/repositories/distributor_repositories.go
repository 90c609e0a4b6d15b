package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
)

// DistributorApplicationReader defines read operations for onboarding applications
type DistributorApplicationReader interface {
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.DistributorApplication, error)
	ListApplicationsByApplicant(ctx context.Context, userID string) ([]domain.DistributorApplication, error)
	ListApplications(ctx context.Context, status *domain.ApplicationStatus, limit int, offset int) ([]domain.DistributorApplication, error)
}

// DistributorApplicationWriter defines write operations for onboarding applications
type DistributorApplicationWriter interface {
	SaveApplication(ctx context.Context, application domain.DistributorApplication) error

	// UpdateApplicationContent replaces the form sections while the status is still applicant-editable.
	// Any other status yields ErrConflict.
	UpdateApplicationContent(ctx context.Context, application domain.DistributorApplication) error

	// UpdateApplicationStatus moves an application from `from` to `to`; a concurrent change yields ErrConflict.
	UpdateApplicationStatus(ctx context.Context, applicationID string, from, to domain.ApplicationStatus, notes string, reviewerID string, now time.Time) error
}

// DistributorApplicationRepositoryFacade combines the application interfaces
type DistributorApplicationRepositoryFacade interface {
	DistributorApplicationReader
	DistributorApplicationWriter
}
