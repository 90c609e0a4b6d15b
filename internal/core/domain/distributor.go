package domain

import "time"

// ApplicationStatus is the review state of a distributor application.
type ApplicationStatus string

const (
	ApplicationPending         ApplicationStatus = "PENDING"
	ApplicationUnderReview     ApplicationStatus = "UNDER_REVIEW"
	ApplicationApproved        ApplicationStatus = "APPROVED"
	ApplicationRejected        ApplicationStatus = "REJECTED"
	ApplicationRequiresChanges ApplicationStatus = "REQUIRES_CHANGES"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:         {ApplicationUnderReview, ApplicationApproved, ApplicationRejected, ApplicationRequiresChanges},
	ApplicationUnderReview:     {ApplicationApproved, ApplicationRejected, ApplicationRequiresChanges},
	ApplicationRequiresChanges: {ApplicationUnderReview, ApplicationApproved, ApplicationRejected},
}

// IsValid reports whether s is a known status.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationUnderReview, ApplicationApproved, ApplicationRejected, ApplicationRequiresChanges:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// CanTransitionTo reports whether an administrator may move an application from s to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RequiresNotes reports whether moving into s needs review notes for the applicant.
func (s ApplicationStatus) RequiresNotes() bool {
	return s == ApplicationRejected || s == ApplicationRequiresChanges
}

// IsEditableByApplicant reports whether the applicant may still change the form content.
func (s ApplicationStatus) IsEditableByApplicant() bool {
	return s == ApplicationPending || s == ApplicationRequiresChanges
}

// BusinessInfo is the business section of a distributor application.
type BusinessInfo struct {
	BusinessName    string `json:"businessName"`
	PANNumber       string `json:"panNumber"`
	BusinessType    string `json:"businessType"`
	YearsInBusiness int    `json:"yearsInBusiness"`
}

// ContactInfo is the contact section of a distributor application.
type ContactInfo struct {
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	District      string `json:"district"`
	Province      int    `json:"province"`
}

// DistributionInfo is the distribution-capacity section of a distributor application.
type DistributionInfo struct {
	CoverageAreas         []string `json:"coverageAreas"`
	ExpectedMonthlyVolume float64  `json:"expectedMonthlyVolume"`
	WarehouseAreaSqFt     float64  `json:"warehouseAreaSqFt"`
	VehicleCount          int      `json:"vehicleCount"`
}

// DistributorApplication is a multi-section onboarding form submitted by a prospective distributor.
type DistributorApplication struct {
	ApplicationID   string            `json:"applicationID"`
	ApplicantUserID string            `json:"applicantUserID"`
	Business        BusinessInfo      `json:"business"`
	Contact         ContactInfo       `json:"contact"`
	Distribution    DistributionInfo  `json:"distribution"`
	Documents       []string          `json:"documents,omitempty"`
	TermsAccepted   bool              `json:"termsAccepted"`
	Status          ApplicationStatus `json:"status"`
	ReviewNotes     string            `json:"reviewNotes,omitempty"`
	ReviewedBy      *string           `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty"`
	AuditFields
}
