package elsearch

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/format"
)

// buildScopeQuery narrows the index to one status and one creation day,
// newest first. size+1 hits are requested so the caller can tell whether
// another page exists.
func (es *Client) buildScopeQuery(scope dto.TicketScope, after []interface{}, size int) map[string]interface{} {
	query := map[string]interface{}{
		"size":             size + 1,
		"track_total_hits": false,
		"sort": []map[string]interface{}{
			{
				"creation_date": map[string]interface{}{
					"order":         "desc",
					"unmapped_type": "date",
				},
			},
			{
				"id": map[string]string{
					"order": "asc",
				},
			},
		},
	}

	filters := scopeFilters(scope)
	if len(filters) == 0 {
		query["query"] = map[string]interface{}{"match_all": map[string]interface{}{}}
	} else {
		query["query"] = map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filters,
			},
		}
	}

	if len(after) > 0 {
		query["search_after"] = after
	}
	return query
}

func scopeFilters(scope dto.TicketScope) []map[string]interface{} {
	var filters []map[string]interface{}

	if scope.Status != "" && scope.Status != dto.StatusTotal {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"status": scope.Status,
			},
		})
	}

	if day, _, ok := format.ParseDate(scope.Date); ok && scope.Date != "" {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{
				"creation_date": map[string]interface{}{
					"gte": start.Format(time.RFC3339),
					"lt":  start.AddDate(0, 0, 1).Format(time.RFC3339),
				},
			},
		})
	}

	return filters
}

// encodeCursor packs the sort values of the last hit into an opaque token
func encodeCursor(sort []interface{}) (*string, error) {
	raw, err := json.Marshal(sort)
	if err != nil {
		return nil, fmt.Errorf("encoding cursor: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	return &token, nil
}

func decodeCursor(cursor *string) ([]interface{}, error) {
	if cursor == nil || *cursor == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(*cursor)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}

	var after []interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&after); err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	return after, nil
}
