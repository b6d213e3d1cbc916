package tickets

import (
	"fmt"
	"testing"

	"calldeskrest/internal/models/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func ticketIDs(rows []dto.Ticket) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key())
	}
	return out
}

func sampleTickets() []dto.Ticket {
	return []dto.Ticket{
		{ID: "1", Status: dto.StatusNew, CreationDate: "2024-01-02", AgentAssigned: ptr("ana"), CallerID: "3051234567", AssignedDepartment: "Billing"},
		{ID: "2", Status: dto.StatusDone, CreationDate: "2024-01-01", AgentAssigned: ptr("bob"), CallerID: "7865550000", AssignedDepartment: "Clinical"},
		{ID: "3", Status: dto.StatusEmergency, CreationDate: "2024-01-03T08:00:00Z", AgentAssigned: nil, CallerID: "42", AssignedDepartment: "Clinical"},
		{ID: "4", Status: dto.StatusInProgress, CreationDate: float64(1704355200), AgentAssigned: ptr("ana"), CallerID: "3051234567", AssignedDepartment: "Billing"},
		{ID: "5", Status: "Escalated", CreationDate: "not a date", AgentAssigned: ptr("carl"), CallerID: "42", AssignedDepartment: "Pharmacy"},
		{ID: "6", Status: dto.StatusNew, CreationDate: nil, AgentAssigned: ptr("bob"), CallerID: "", AssignedDepartment: ""},
	}
}

func TestFilterTickets(t *testing.T) {
	rows := sampleTickets()

	tests := []struct {
		name     string
		criteria dto.Criteria
		want     []string
	}{
		{"total passes everything", dto.Criteria{Status: dto.StatusTotal}, []string{"1", "2", "3", "4", "5", "6"}},
		{"empty status means total", dto.Criteria{}, []string{"1", "2", "3", "4", "5", "6"}},
		{"exact status", dto.Criteria{Status: dto.StatusNew}, []string{"1", "6"}},
		{"status is case sensitive", dto.Criteria{Status: "new"}, []string{}},
		{"agents", dto.Criteria{Status: dto.StatusTotal, Agents: []string{"ana", "carl"}}, []string{"1", "4", "5"}},
		{"callers", dto.Criteria{Callers: []string{"42"}}, []string{"3", "5"}},
		{"departments", dto.Criteria{Departments: []string{"Clinical"}}, []string{"2", "3"}},
		{"combined", dto.Criteria{Status: dto.StatusNew, Agents: []string{"ana"}, Departments: []string{"Billing"}}, []string{"1"}},
		{"date is not applied to accumulated rows", dto.Criteria{Date: ptr("1999-12-31")}, []string{"1", "2", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ticketIDs(FilterTickets(rows, tt.criteria)))
		})
	}
}

func TestFilterTickets_TotalIsSupersetOfAnyStatus(t *testing.T) {
	rows := sampleTickets()
	base := dto.Criteria{Agents: []string{"ana", "bob"}}

	total := base
	total.Status = dto.StatusTotal
	all := len(FilterTickets(rows, total))

	statuses := append([]string{"Escalated", "unknown"}, dto.KnownStatuses...)
	for _, s := range statuses {
		scoped := base
		scoped.Status = s
		assert.GreaterOrEqual(t, all, len(FilterTickets(rows, scoped)), s)
	}
}

func TestSortByCreatedAt(t *testing.T) {
	rows := []dto.Ticket{
		{ID: "1", CreationDate: "2024-01-02"},
		{ID: "2", CreationDate: "2024-01-01"},
		{ID: "3", CreationDate: "2024-01-03T08:00:00Z"},
	}

	assert.Equal(t, []string{"2", "1", "3"}, ticketIDs(SortByCreatedAt(rows, "asc")))
	assert.Equal(t, []string{"3", "1", "2"}, ticketIDs(SortByCreatedAt(rows, "desc")))
	assert.Equal(t, []string{"3", "1", "2"}, ticketIDs(SortByCreatedAt(rows, "")))

	// input untouched
	assert.Equal(t, []string{"1", "2", "3"}, ticketIDs(rows))
}

func TestSortByCreatedAt_ReversalForDistinctTimestamps(t *testing.T) {
	rows := sampleTickets()[:4]

	asc := ticketIDs(SortByCreatedAt(rows, "asc"))
	desc := ticketIDs(SortByCreatedAt(rows, "desc"))

	reversed := make([]string, len(desc))
	for i, id := range desc {
		reversed[len(desc)-1-i] = id
	}
	assert.Equal(t, asc, reversed)
}

func TestSortByCreatedAt_StableAndUndatedOldest(t *testing.T) {
	rows := []dto.Ticket{
		{ID: "a", CreationDate: "garbage"},
		{ID: "b", CreationDate: "2024-05-01"},
		{ID: "c", CreationDate: "2024-05-01"},
		{ID: "d", CreationDate: nil},
		{ID: "e", CreationDate: "2024-04-30"},
	}

	assert.Equal(t, []string{"a", "d", "e", "b", "c"}, ticketIDs(SortByCreatedAt(rows, "asc")))
	assert.Equal(t, []string{"b", "c", "e", "a", "d"}, ticketIDs(SortByCreatedAt(rows, "desc")))
}

func TestPaginate(t *testing.T) {
	rows := []int{0, 1, 2, 3, 4, 5, 6}

	assert.Equal(t, []int{0, 1, 2}, Paginate(rows, 0, 3))
	assert.Equal(t, []int{6}, Paginate(rows, 2, 3))
	assert.Empty(t, Paginate(rows, 3, 3))
	assert.Empty(t, Paginate(rows, -1, 3))
	assert.Empty(t, Paginate(rows, 0, 0))
	assert.Empty(t, Paginate([]int{}, 0, 10))
}

func TestPaginate_ConcatenationReconstructs(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7, 10} {
		t.Run(fmt.Sprintf("per page %d", n), func(t *testing.T) {
			rows := []int{10, 11, 12, 13, 14, 15, 16}
			pages := (len(rows) + n - 1) / n

			var joined []int
			for p := 0; p < pages; p++ {
				page := Paginate(rows, p, n)
				if p < pages-1 {
					assert.Len(t, page, n)
				}
				joined = append(joined, page...)
			}
			assert.Equal(t, rows, joined)
			assert.Empty(t, Paginate(rows, pages, n))
		})
	}
}

func TestPaginate_AppendDoesNotClobberSource(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	page := Paginate(rows, 0, 2)
	_ = append(page, 99)
	assert.Equal(t, []int{1, 2, 3, 4}, rows)
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(sampleTickets())

	assert.Equal(t, dto.StatusCounts{
		dto.StatusNew:        2,
		dto.StatusEmergency:  1,
		dto.StatusInProgress: 1,
		dto.StatusPending:    0,
		dto.StatusDone:       1,
		dto.StatusDuplicated: 0,
		dto.StatusTotal:      6,
	}, counts)

	known := 0
	for _, s := range dto.KnownStatuses {
		known += counts[s]
	}
	unknown := 1 // "Escalated"
	assert.Equal(t, counts[dto.StatusTotal], known+unknown)
}

func TestCountByStatus_TotalStatusValueIsNotABucket(t *testing.T) {
	counts := CountByStatus([]dto.Ticket{{ID: "1", Status: dto.StatusTotal}})
	assert.Equal(t, 1, counts[dto.StatusTotal])
	assert.Len(t, counts, 7)
}

func TestSelection_ReferenceExample(t *testing.T) {
	rows := []dto.Ticket{
		{ID: "1", Status: dto.StatusNew, CreationDate: "2024-01-02"},
		{ID: "2", Status: dto.StatusDone, CreationDate: "2024-01-01"},
	}

	assert.Equal(t, []string{"1"}, ticketIDs(FilterTickets(rows, dto.Criteria{Status: dto.StatusNew})))
	assert.Equal(t, []string{"2", "1"}, ticketIDs(SortByCreatedAt(rows, "asc")))
	assert.Equal(t, dto.StatusCounts{
		dto.StatusNew: 1, dto.StatusEmergency: 0, dto.StatusInProgress: 0,
		dto.StatusPending: 0, dto.StatusDone: 1, dto.StatusDuplicated: 0,
		dto.StatusTotal: 2,
	}, CountByStatus(rows))
}

func TestSelect_CountsIgnoreStatusTab(t *testing.T) {
	rows := sampleTickets()

	sel := Select(rows, dto.Criteria{Status: dto.StatusNew, Departments: []string{"Billing", ""}}, "asc", 0, 10)

	// ticket 6 has no creation date, so it sorts as the oldest
	assert.Equal(t, []string{"6", "1"}, ticketIDs(sel.Rows))
	assert.Equal(t, 2, sel.Filtered)
	require.NotNil(t, sel.Counts)
	assert.Equal(t, 3, sel.Counts[dto.StatusTotal])
	assert.Equal(t, 1, sel.Counts[dto.StatusInProgress])
	assert.Equal(t, 2, sel.Counts[dto.StatusNew])
}

func TestSelect_PagesSortedRows(t *testing.T) {
	rows := sampleTickets()

	sel := Select(rows, dto.Criteria{}, "desc", 1, 2)

	// desc order: 4 (2024-01-04), 3, 1, 2, then undated 5 and 6
	assert.Equal(t, []string{"1", "2"}, ticketIDs(sel.Rows))
	assert.Equal(t, 6, sel.Filtered)
}
