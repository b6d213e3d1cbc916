package dto

// SessionCreated is returned when a dashboard session starts
type SessionCreated struct {
	SessionID string     `json:"session_id" example:"6f1c2a3e-8a4b-4c1d-9e2f-0a1b2c3d4e5f"`
	Tickets   FeedStatus `json:"tickets"`
	Patients  FeedStatus `json:"patients"`
	Providers FeedStatus `json:"providers"`
}
