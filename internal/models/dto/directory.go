package dto

import "strings"

// Patient is a patient record from the directory
type Patient struct {
	ID        FlexString  `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	DOB       interface{} `json:"dob,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Email     string      `json:"email,omitempty"`
}

// Key identifies the patient within a feed
func (p Patient) Key() string {
	return string(p.ID)
}

// FullName joins first and last name
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Provider is a care provider from the directory
type Provider struct {
	ID        FlexString `json:"id"`
	Name      string     `json:"name"`
	Specialty string     `json:"specialty,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
}

// Key identifies the provider within a feed
func (p Provider) Key() string {
	return string(p.ID)
}

// SearchScope holds the free-text query sent upstream for directory feeds
type SearchScope struct {
	Query string `json:"q,omitempty"`
}

// PatientRow is a patient with display fields resolved
type PatientRow struct {
	Patient
	FullName   string `json:"full_name"`
	DOBDisplay string `json:"dob_display"`
	PhoneDisp  string `json:"phone_display"`
	EmailDisp  string `json:"email_display"`
}

// ProviderRow is a provider with display fields resolved
type ProviderRow struct {
	Provider
	PhoneDisp string `json:"phone_display"`
	EmailDisp string `json:"email_display"`
}

// DirectoryView lists the accumulated directory rows
type DirectoryView[T any] struct {
	Rows    []T    `json:"rows"`
	Query   string `json:"q"`
	HasMore bool   `json:"has_more"`
	Loading bool   `json:"loading"`
}

// FeedStatus reports the outcome of a next-page pull
type FeedStatus struct {
	Added   int    `json:"added"`
	Total   int    `json:"total"`
	HasMore bool   `json:"has_more"`
	Skipped string `json:"skipped,omitempty"`
}
