package tickets

import (
	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/format"
)

// BuildView runs the selection pipeline and resolves the display fields of
// the visible rows
func BuildView(rows []dto.Ticket, c dto.Criteria, direction string, page, rowsPerPage int) dto.TicketView {
	sel := Select(rows, c, direction, page, rowsPerPage)

	out := make([]dto.TicketRow, 0, len(sel.Rows))
	for _, t := range sel.Rows {
		out = append(out, NewRow(t))
	}

	return dto.TicketView{
		Rows:       out,
		Counts:     sel.Counts,
		Filtered:   sel.Filtered,
		Pagination: dto.NewPagination(page, rowsPerPage, sel.Filtered),
	}
}

// NewRow resolves the values the table shows for t
func NewRow(t dto.Ticket) dto.TicketRow {
	phone := t.CallerID.String()
	if t.PatientSnapshot != nil && t.PatientSnapshot.Phone != "" {
		phone = t.PatientSnapshot.Phone
	}
	return dto.TicketRow{
		Ticket:         t,
		CreatedDisplay: format.ToMMDDYYYY(t.CreationDate),
		CallerPhone:    format.Phone(phone),
		DisplayName:    t.DisplayName(),
	}
}
