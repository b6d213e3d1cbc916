package feed

import (
	"context"
	"strconv"
)

// Page is one batch of records returned by a Source. A nil
// ContinuationToken marks the end of the stream.
type Page[T any] struct {
	Items             []T     `json:"items"`
	ContinuationToken *string `json:"continuationToken"`
}

// Source fetches the page that starts at cursor. A nil cursor requests the
// first page.
type Source[T any] interface {
	FetchPage(ctx context.Context, cursor *string) (Page[T], error)
}

// SourceFunc adapts a function to Source
type SourceFunc[T any] func(ctx context.Context, cursor *string) (Page[T], error)

// FetchPage calls f
func (f SourceFunc[T]) FetchPage(ctx context.Context, cursor *string) (Page[T], error) {
	return f(ctx, cursor)
}

// PageBySize builds a page for sources that have no cursor of their own. A
// full page is taken as a sign that more may follow, so the token becomes
// the next page number; a short page ends the stream.
func PageBySize[T any](items []T, size, nextPage int) Page[T] {
	p := Page[T]{Items: items}
	if size > 0 && len(items) == size {
		token := strconv.Itoa(nextPage)
		p.ContinuationToken = &token
	}
	return p
}

// PageNumber decodes a cursor produced by PageBySize. A nil or malformed
// cursor means the first page.
func PageNumber(cursor *string, first int) int {
	if cursor == nil {
		return first
	}
	n, err := strconv.Atoi(*cursor)
	if err != nil || n < first {
		return first
	}
	return n
}
