package models

import "time"

// BusinessInfo is stored as JSONB in distributor_applications.business.
type BusinessInfo struct {
	BusinessName    string `json:"businessName"`
	PANNumber       string `json:"panNumber"`
	BusinessType    string `json:"businessType"`
	YearsInBusiness int    `json:"yearsInBusiness"`
}

// ContactInfo is stored as JSONB in distributor_applications.contact.
type ContactInfo struct {
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	District      string `json:"district"`
	Province      int    `json:"province"`
}

// DistributionInfo is stored as JSONB in distributor_applications.distribution.
type DistributionInfo struct {
	CoverageAreas         []string `json:"coverageAreas"`
	ExpectedMonthlyVolume float64  `json:"expectedMonthlyVolume"`
	WarehouseAreaSqFt     float64  `json:"warehouseAreaSqFt"`
	VehicleCount          int      `json:"vehicleCount"`
}

// DistributorApplication is a row of the distributor_applications table.
type DistributorApplication struct {
	ApplicationID   string           `db:"application_id"`
	ApplicantUserID string           `db:"applicant_user_id"`
	Business        BusinessInfo     `db:"business"`
	Contact         ContactInfo      `db:"contact"`
	Distribution    DistributionInfo `db:"distribution"`
	Documents       []string         `db:"documents"`
	TermsAccepted   bool             `db:"terms_accepted"`
	Status          string           `db:"status"`
	ReviewNotes     string           `db:"review_notes"`
	ReviewedBy      *string          `db:"reviewed_by"`
	ReviewedAt      *time.Time       `db:"reviewed_at"`
	AuditFields
}
