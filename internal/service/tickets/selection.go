package tickets

import (
	"math"
	"slices"

	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/format"
)

// SortAscending orders oldest first; any other direction orders newest first.
const SortAscending = "asc"

// undated is the sort key for tickets whose creation date cannot be parsed.
// It places them before every real instant.
const undated = math.MinInt64

// FilterTickets keeps the rows matching every constraint in c, preserving
// their order. The date criterion scopes the upstream fetch and is not
// re-applied to accumulated rows.
func FilterTickets(rows []dto.Ticket, c dto.Criteria) []dto.Ticket {
	agents := toSet(c.Agents)
	callers := toSet(c.Callers)
	departments := toSet(c.Departments)
	anyStatus := c.Status == "" || c.Status == dto.StatusTotal

	out := make([]dto.Ticket, 0, len(rows))
	for _, row := range rows {
		if !anyStatus && row.Status != c.Status {
			continue
		}
		if agents != nil && (row.AgentAssigned == nil || !agents.has(*row.AgentAssigned)) {
			continue
		}
		if callers != nil && !callers.has(row.CallerID.String()) {
			continue
		}
		if departments != nil && !departments.has(row.AssignedDepartment) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// SortByCreatedAt returns a stably sorted copy of rows ordered by creation
// date in the given direction.
func SortByCreatedAt(rows []dto.Ticket, direction string) []dto.Ticket {
	type keyed struct {
		at  int64
		row dto.Ticket
	}

	ks := make([]keyed, len(rows))
	for i, row := range rows {
		at, ok := format.UnixMilli(row.CreationDate)
		if !ok {
			at = undated
		}
		ks[i] = keyed{at: at, row: row}
	}

	asc := direction == SortAscending
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.at == b.at:
			return 0
		case (a.at < b.at) == asc:
			return -1
		default:
			return 1
		}
	})

	out := make([]dto.Ticket, len(ks))
	for i, k := range ks {
		out[i] = k.row
	}
	return out
}

// Paginate returns the zero-based page of rows. Pages past the end, negative
// pages and non-positive page sizes yield an empty slice.
func Paginate[T any](rows []T, page, rowsPerPage int) []T {
	if page < 0 || rowsPerPage <= 0 {
		return []T{}
	}
	start := page * rowsPerPage
	if start/rowsPerPage != page || start >= len(rows) {
		return []T{}
	}
	end := min(start+rowsPerPage, len(rows))
	return rows[start:end:end]
}

// CountByStatus tallies rows per known status. Total counts every row,
// including those whose status is not known.
func CountByStatus(rows []dto.Ticket) dto.StatusCounts {
	counts := make(dto.StatusCounts, len(dto.KnownStatuses)+1)
	for _, s := range dto.KnownStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		if _, known := counts[row.Status]; known {
			counts[row.Status]++
		}
	}
	counts[dto.StatusTotal] = len(rows)
	return counts
}

// Selection is the derived state of the ticket table
type Selection struct {
	Rows     []dto.Ticket
	Counts   dto.StatusCounts
	Filtered int
}

// Select derives the visible page and the status badge counts from the
// accumulated rows. Visible rows honour every criterion; counts ignore the
// status criterion so each badge stays stable across status tabs.
func Select(rows []dto.Ticket, c dto.Criteria, direction string, page, rowsPerPage int) Selection {
	scoped := FilterTickets(rows, c)

	unscoped := c
	unscoped.Status = dto.StatusTotal

	return Selection{
		Rows:     Paginate(SortByCreatedAt(scoped, direction), page, rowsPerPage),
		Counts:   CountByStatus(FilterTickets(rows, unscoped)),
		Filtered: len(scoped),
	}
}

type stringSet map[string]struct{}

// toSet returns nil for an empty list, meaning "no constraint"
func toSet(values []string) stringSet {
	if len(values) == 0 {
		return nil
	}
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}
