package utils

import (
	"strings"

	"calldeskrest/internal/models/dto"
)

// StatusAliases maps the lower-cased spellings accepted in query strings to
// canonical ticket statuses
var StatusAliases = map[string]string{
	"new":         dto.StatusNew,
	"emergency":   dto.StatusEmergency,
	"in progress": dto.StatusInProgress,
	"in_progress": dto.StatusInProgress,
	"in-progress": dto.StatusInProgress,
	"inprogress":  dto.StatusInProgress,
	"pending":     dto.StatusPending,
	"done":        dto.StatusDone,
	"duplicated":  dto.StatusDuplicated,
	"total":       dto.StatusTotal,
	"all":         dto.StatusTotal,
}

// CanonicalStatus resolves a status alias. Unknown values are returned
// trimmed but otherwise untouched, so they still match exactly.
func CanonicalStatus(s string) string {
	s = strings.TrimSpace(s)
	if v, ok := StatusAliases[strings.ToLower(s)]; ok {
		return v
	}
	return s
}

// SplitList flattens repeated and comma-separated query values, dropping blanks
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
