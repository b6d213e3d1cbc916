// Package directory serves the patient and provider lookups of a session
package directory

import (
	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/format"
)

// NewPatientRow resolves the values the patient table shows
func NewPatientRow(p dto.Patient) dto.PatientRow {
	name := p.FullName()
	if name == "" {
		name = format.NotAvailable
	}
	dob := format.ToMMDDYYYY(p.DOB)
	if dob == "" {
		dob = format.NotAvailable
	}
	return dto.PatientRow{
		Patient:    p,
		FullName:   name,
		DOBDisplay: dob,
		PhoneDisp:  format.Phone(p.Phone),
		EmailDisp:  format.Email(p.Email),
	}
}

// NewProviderRow resolves the values the provider table shows
func NewProviderRow(p dto.Provider) dto.ProviderRow {
	return dto.ProviderRow{
		Provider:  p,
		PhoneDisp: format.Phone(p.Phone),
		EmailDisp: format.Email(p.Email),
	}
}
