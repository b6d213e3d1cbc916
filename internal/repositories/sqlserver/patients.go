package sqlserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
	"calldeskrest/internal/models/entities"
)

// Patients returns a keyset-paginated patient source for scope.Query
func (s *Internal) Patients(scope dto.SearchScope) feed.Source[dto.Patient] {
	return feed.SourceFunc[dto.Patient](func(ctx context.Context, cursor *string) (feed.Page[dto.Patient], error) {
		return s.SearchPatientsPage(ctx, scope.Query, cursor)
	})
}

// SearchPatientsPage returns the patients after cursor, ordered by key.
// The cursor is the last PatientKey of the previous page.
func (s *Internal) SearchPatientsPage(ctx context.Context, query string, cursor *string) (feed.Page[dto.Patient], error) {
	after, err := decodeKey(cursor)
	if err != nil {
		return feed.Page[dto.Patient]{}, err
	}

	q := s.db.WithContext(ctx).
		Model(&entities.Patient{}).
		Where("PatientKey > ?", after)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + escapeLike(query) + "%"
		q = q.Where("(FirstName LIKE ? OR LastName LIKE ? OR Phone LIKE ? OR Email LIKE ?)", like, like, like, like)
	}

	var rows []entities.Patient
	err = q.Order("PatientKey ASC").
		Limit(s.pageSize + 1).
		Find(&rows).Error
	if err != nil {
		return feed.Page[dto.Patient]{}, fmt.Errorf("failed to search patients: %w", err)
	}

	return patientPage(rows, s.pageSize), nil
}

// patientPage keeps at most size rows and issues a cursor when more were found
func patientPage(rows []entities.Patient, size int) feed.Page[dto.Patient] {
	more := len(rows) > size
	if more {
		rows = rows[:size]
	}

	items := make([]dto.Patient, 0, len(rows))
	for _, row := range rows {
		items = append(items, toPatient(row))
	}

	page := feed.Page[dto.Patient]{Items: items}
	if more && len(rows) > 0 {
		token := strconv.FormatInt(rows[len(rows)-1].PatientKey, 10)
		page.ContinuationToken = &token
	}
	return page
}

func toPatient(row entities.Patient) dto.Patient {
	id := row.PatientId
	if id == "" {
		id = strconv.FormatInt(row.PatientKey, 10)
	}
	p := dto.Patient{
		ID:        dto.FlexString(id),
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}
	if row.BirthDate != nil {
		p.DOB = row.BirthDate.Format("2006-01-02")
	}
	if row.Phone != nil {
		p.Phone = *row.Phone
	}
	if row.Email != nil {
		p.Email = *row.Email
	}
	return p
}

func decodeKey(cursor *string) (int64, error) {
	if cursor == nil || *cursor == "" {
		return 0, nil
	}
	key, err := strconv.ParseInt(*cursor, 10, 64)
	if err != nil || key < 0 {
		return 0, fmt.Errorf("malformed patient cursor %q", *cursor)
	}
	return key, nil
}

// escapeLike neutralizes the LIKE wildcards understood by SQL Server
func escapeLike(s string) string {
	r := strings.NewReplacer("[", "[[]", "%", "[%]", "_", "[_]")
	return r.Replace(s)
}
