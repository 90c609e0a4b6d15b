package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `application_id, applicant_user_id, business, contact, distribution, documents, terms_accepted,
	status, review_notes, reviewed_by, reviewed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxApplicationRepository struct {
	BaseRepository
}

func newPgxApplicationRepository(pool *pgxpool.Pool) *PgxApplicationRepository {
	return &PgxApplicationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DistributorApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

func collectApplications(rows pgx.Rows) ([]domain.DistributorApplication, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DistributorApplication])
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return mapping.ToDomainApplicationSlice(ms), nil
}

func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, application domain.DistributorApplication) error {
	m := mapping.ToModelApplication(application)
	query := `
		INSERT INTO distributor_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ApplicationID, m.ApplicantUserID, m.Business, m.Contact, m.Distribution, m.Documents, m.TermsAccepted,
		m.Status, m.ReviewNotes, m.ReviewedBy, m.ReviewedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "application "+m.ApplicationID)
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.DistributorApplication, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+applicationColumns+` FROM distributor_applications WHERE application_id = $1;`, applicationID)
	if err != nil {
		return nil, translateError(err, "application "+applicationID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.DistributorApplication])
	if err != nil {
		return nil, translateError(err, "application "+applicationID)
	}
	app := mapping.ToDomainApplication(m)
	return &app, nil
}

func (r *PgxApplicationRepository) ListApplicationsByApplicant(ctx context.Context, userID string) ([]domain.DistributorApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM distributor_applications WHERE applicant_user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for %s: %w", userID, err)
	}
	return collectApplications(rows)
}

// ListApplications returns applications oldest first so the review queue is worked in order.
func (r *PgxApplicationRepository) ListApplications(ctx context.Context, status *domain.ApplicationStatus, limit int, offset int) ([]domain.DistributorApplication, error) {
	var where whereBuilder
	if status != nil {
		where.add("status = ?", string(*status))
	}
	query := `SELECT ` + applicationColumns + ` FROM distributor_applications` + where.clause() +
		` ORDER BY created_at, application_id LIMIT ` + where.next(limit) + ` OFFSET ` + where.next(offset) + `;`
	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return collectApplications(rows)
}

// UpdateApplicationContent replaces the form sections while the applicant may still edit them.
func (r *PgxApplicationRepository) UpdateApplicationContent(ctx context.Context, application domain.DistributorApplication) error {
	m := mapping.ToModelApplication(application)
	query := `
		UPDATE distributor_applications
		SET business = $1, contact = $2, distribution = $3, documents = $4, terms_accepted = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE application_id = $8 AND status IN ('PENDING', 'REQUIRES_CHANGES');
	`
	tag, err := r.Pool.Exec(ctx, query, m.Business, m.Contact, m.Distribution, m.Documents, m.TermsAccepted,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ApplicationID)
	if err != nil {
		return translateError(err, "application "+m.ApplicationID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: application %s can no longer be edited", apperrors.ErrConflict, m.ApplicationID))
}

// UpdateApplicationStatus moves an application from `from` to `to` as a compare-and-set.
func (r *PgxApplicationRepository) UpdateApplicationStatus(ctx context.Context, applicationID string, from, to domain.ApplicationStatus, notes string, reviewerID string, now time.Time) error {
	query := `
		UPDATE distributor_applications
		SET status = $1, review_notes = $2, reviewed_by = $3, reviewed_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE application_id = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, string(to), notes, reviewerID, now, applicationID, string(from))
	if err != nil {
		return translateError(err, "application "+applicationID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: application %s is no longer %s", apperrors.ErrConflict, applicationID, from))
}
