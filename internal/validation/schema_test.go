package validation_test

import (
	"testing"

	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/stretchr/testify/assert"
)

const validApplication = `{
  "business": {"businessName": "Koshi Distributors", "panNumber": "601234567", "businessType": "PRIVATE_LIMITED", "yearsInBusiness": 4},
  "contact": {"contactPerson": "Sita Rai", "email": "sita@example.com", "phone": "9812345678", "address": "Main Road", "district": "Morang", "province": 1},
  "distribution": {"coverageAreas": ["Biratnagar", "Itahari"], "expectedMonthlyVolume": 250000, "warehouseAreaSqFt": 1200, "vehicleCount": 2},
  "documents": ["pan-certificate.pdf"],
  "termsAccepted": true
}`

func TestApplicationDocument(t *testing.T) {
	assert.NoError(t, validation.ApplicationDocument([]byte(validApplication)))

	errs := fieldErrors(t, validation.ApplicationDocument([]byte(`{
  "business": {"businessName": "K", "panNumber": "12", "businessType": "PRIVATE_LIMITED", "yearsInBusiness": 4},
  "contact": {"contactPerson": "Sita Rai", "email": "sita@example.com", "phone": "9812345678", "address": "Main Road", "district": "Morang", "province": 9},
  "distribution": {"coverageAreas": [], "expectedMonthlyVolume": 10},
  "termsAccepted": false
}`)))
	assert.Contains(t, errs, "business.businessName")
	assert.Contains(t, errs, "business.panNumber")
	assert.Contains(t, errs, "contact.province")
	assert.Contains(t, errs, "distribution.coverageAreas")
	assert.Contains(t, errs, "termsAccepted")
}

func TestApplicationDocument_MissingSections(t *testing.T) {
	errs := fieldErrors(t, validation.ApplicationDocument([]byte(`{"termsAccepted": true}`)))
	assert.Contains(t, errs, "business")
	assert.Contains(t, errs, "contact")
	assert.Contains(t, errs, "distribution")
}

func TestApplicationDocument_NotJSON(t *testing.T) {
	errs := fieldErrors(t, validation.ApplicationDocument([]byte(`{not json`)))
	assert.Contains(t, errs, "body")
}
