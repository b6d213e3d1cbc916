package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_Unmarshal(t *testing.T) {
	var rec struct {
		ID       FlexString `json:"id"`
		CallerID FlexString `json:"caller_id"`
		Other    FlexString `json:"other"`
		Missing  FlexString `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"id": 42, "caller_id": "3051234567", "other": {"x": 1}, "missing": null}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, FlexString("42"), rec.ID)
	assert.Equal(t, "3051234567", rec.CallerID.String())
	assert.Equal(t, FlexString(""), rec.Other)
	assert.Equal(t, FlexString(""), rec.Missing)
}

func TestFlexString_CanonicalNumbers(t *testing.T) {
	tests := []struct {
		raw  string
		want FlexString
	}{
		{`42`, "42"},
		{`42.0`, "42"},
		{`4.2e1`, "42"},
		{`-7.00`, "-7"},
		{`3051234567`, "3051234567"},
		{`42.5`, "42.5"},
		{`12345678901234567890`, "12345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicket_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		want   string
	}{
		{
			name: "snapshot full name wins",
			ticket: Ticket{
				PatientName:     "Flat Name",
				PatientSnapshot: &PatientSnapshot{FullName: "Ana Souza", FirstName: "Ana"},
			},
			want: "Ana Souza",
		},
		{
			name:   "snapshot parts",
			ticket: Ticket{PatientSnapshot: &PatientSnapshot{FirstName: "Ana", LastName: "Souza"}},
			want:   "Ana Souza",
		},
		{
			name:   "flat patient name",
			ticket: Ticket{PatientName: " Bob Lee ", CallerName: "Caller"},
			want:   "Bob Lee",
		},
		{
			name:   "caller fallback",
			ticket: Ticket{PatientSnapshot: &PatientSnapshot{}, CallerName: "Carol"},
			want:   "Carol",
		},
		{
			name: "unknown",
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.DisplayName())
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(2, 10, 25)
	assert.False(t, p.HasNext)

	p = NewPagination(0, 0, 25)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasPrev)
}
