package dto

import "strings"

// Ticket workflow statuses
const (
	StatusNew        = "New"
	StatusEmergency  = "Emergency"
	StatusInProgress = "In Progress"
	StatusPending    = "Pending"
	StatusDone       = "Done"
	StatusDuplicated = "Duplicated"

	// StatusTotal selects every status
	StatusTotal = "Total"
)

// KnownStatuses lists the statuses counted individually, in badge order
var KnownStatuses = []string{
	StatusNew,
	StatusEmergency,
	StatusInProgress,
	StatusPending,
	StatusDone,
	StatusDuplicated,
}

// Ticket is a support request raised by the call center
type Ticket struct {
	ID                 FlexString       `json:"id"`
	Status             string           `json:"status"`
	CreationDate       interface{}      `json:"creation_date,omitempty"`
	AgentAssigned      *string          `json:"agent_assigned"`
	CallerID           FlexString       `json:"caller_id"`
	CallerName         string           `json:"caller_name,omitempty"`
	AssignedDepartment string           `json:"assigned_department"`
	Reason             string           `json:"reason,omitempty"`
	PatientName        string           `json:"patient_name,omitempty"`
	PatientSnapshot    *PatientSnapshot `json:"patient_snapshot,omitempty"`
}

// PatientSnapshot is the denormalized copy of the linked patient kept on a ticket
type PatientSnapshot struct {
	PatientID FlexString  `json:"patient_id,omitempty"`
	FullName  string      `json:"full_name,omitempty"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	DOB       interface{} `json:"dob,omitempty"`
}

// Key identifies the ticket within a feed
func (t Ticket) Key() string {
	return string(t.ID)
}

// DisplayName resolves the name shown for a ticket from, in order: the
// snapshot full name, the snapshot first and last name, the flat patient
// name and the caller name.
func (t Ticket) DisplayName() string {
	candidates := []string{t.PatientName, t.CallerName}
	if s := t.PatientSnapshot; s != nil {
		joined := strings.TrimSpace(s.FirstName + " " + s.LastName)
		candidates = append([]string{s.FullName, joined}, candidates...)
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return "Unknown"
}

// Criteria narrows the accumulated tickets shown in the table. Empty slices
// and a nil Date place no constraint; an empty Status means StatusTotal.
type Criteria struct {
	Status      string   `json:"status"`
	Agents      []string `json:"agents,omitempty"`
	Callers     []string `json:"callers,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Departments []string `json:"departments,omitempty"`
}

// TicketScope holds the parameters sent upstream when fetching ticket pages.
// Changing either field discards the accumulated tickets.
type TicketScope struct {
	Status string `json:"status,omitempty"`
	Date   string `json:"date,omitempty"`
}

// StatusCounts maps each known status, plus StatusTotal, to a ticket count
type StatusCounts map[string]int

// TicketRow is a ticket with its display fields resolved
type TicketRow struct {
	Ticket
	CreatedDisplay string `json:"created_display"`
	CallerPhone    string `json:"caller_phone"`
	DisplayName    string `json:"display_name"`
}

// TicketView is the table-ready result of the selection pipeline
type TicketView struct {
	Rows       []TicketRow  `json:"rows"`
	Counts     StatusCounts `json:"counts"`
	Filtered   int          `json:"filtered"`
	Pagination Pagination   `json:"pagination"`
	HasMore    bool         `json:"has_more"`
	Loading    bool         `json:"loading"`
}
