package mapping

import (
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
)

// ToModelApplication converts a domain DistributorApplication to its model
func ToModelApplication(d domain.DistributorApplication) models.DistributorApplication {
	documents := d.Documents
	if documents == nil {
		documents = []string{}
	}
	return models.DistributorApplication{
		ApplicationID:   d.ApplicationID,
		ApplicantUserID: d.ApplicantUserID,
		Business:        models.BusinessInfo(d.Business),
		Contact:         models.ContactInfo(d.Contact),
		Distribution:    models.DistributionInfo(d.Distribution),
		Documents:       documents,
		TermsAccepted:   d.TermsAccepted,
		Status:          string(d.Status),
		ReviewNotes:     d.ReviewNotes,
		ReviewedBy:      d.ReviewedBy,
		ReviewedAt:      d.ReviewedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApplication converts a model DistributorApplication to its domain form
func ToDomainApplication(m models.DistributorApplication) domain.DistributorApplication {
	return domain.DistributorApplication{
		ApplicationID:   m.ApplicationID,
		ApplicantUserID: m.ApplicantUserID,
		Business:        domain.BusinessInfo(m.Business),
		Contact:         domain.ContactInfo(m.Contact),
		Distribution:    domain.DistributionInfo(m.Distribution),
		Documents:       m.Documents,
		TermsAccepted:   m.TermsAccepted,
		Status:          domain.ApplicationStatus(m.Status),
		ReviewNotes:     m.ReviewNotes,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApplicationSlice converts model applications to domain applications
func ToDomainApplicationSlice(ms []models.DistributorApplication) []domain.DistributorApplication {
	return toDomainSlice(ms, ToDomainApplication)
}
