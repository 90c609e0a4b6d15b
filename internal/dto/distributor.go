package dto

import (
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
)

// ApplicationStatusRequest moves an application through review.
type ApplicationStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	ReviewNotes string `json:"reviewNotes" binding:"max=1000"`
}

// ListApplicationsParams defines query parameters for the admin listing.
type ListApplicationsParams struct {
	Status string `form:"status"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ApplicationResponse defines the application data returned by the API.
type ApplicationResponse struct {
	ApplicationID   string                  `json:"applicationID"`
	ApplicantUserID string                  `json:"applicantUserID"`
	Business        domain.BusinessInfo     `json:"business"`
	Contact         domain.ContactInfo      `json:"contact"`
	Distribution    domain.DistributionInfo `json:"distribution"`
	Documents       []string                `json:"documents"`
	TermsAccepted   bool                    `json:"termsAccepted"`
	Status          string                  `json:"status"`
	ReviewNotes     string                  `json:"reviewNotes,omitempty"`
	ReviewedBy      *string                 `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time              `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
}

// ToApplicationResponse converts a domain.DistributorApplication.
func ToApplicationResponse(a *domain.DistributorApplication) ApplicationResponse {
	docs := a.Documents
	if docs == nil {
		docs = []string{}
	}
	return ApplicationResponse{
		ApplicationID:   a.ApplicationID,
		ApplicantUserID: a.ApplicantUserID,
		Business:        a.Business,
		Contact:         a.Contact,
		Distribution:    a.Distribution,
		Documents:       docs,
		TermsAccepted:   a.TermsAccepted,
		Status:          string(a.Status),
		ReviewNotes:     a.ReviewNotes,
		ReviewedBy:      a.ReviewedBy,
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
		LastUpdatedAt:   a.LastUpdatedAt,
	}
}

// ListApplicationsResponse wraps a page of applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// ToListApplicationsResponse converts a slice of applications.
func ToListApplicationsResponse(apps []domain.DistributorApplication) ListApplicationsResponse {
	out := make([]ApplicationResponse, len(apps))
	for i := range apps {
		out[i] = ToApplicationResponse(&apps[i])
	}
	return ListApplicationsResponse{Applications: out}
}
