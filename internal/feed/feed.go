// Package feed accumulates records from a cursor-paginated source into an
// ordered, key-deduplicated collection.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"calldeskrest/pkg/logger"

	"golang.org/x/sync/semaphore"
)

var (
	// ErrInFlight is returned by Next while another fetch is running
	ErrInFlight = errors.New("feed: fetch already in flight")
	// ErrExhausted is returned by Next once the source reported its last page
	ErrExhausted = errors.New("feed: no more pages")
)

// Keyed records carry a stable identity used for deduplication
type Keyed interface {
	Key() string
}

// Feed is safe for concurrent use. Only one fetch runs at a time; Next calls
// made meanwhile return ErrInFlight without touching any state.
type Feed[T Keyed] struct {
	name     string
	log      logger.Logger
	inflight *semaphore.Weighted

	mu         sync.RWMutex
	source     Source[T]
	items      []T
	cursor     *string
	fetched    bool
	hasMore    bool
	loading    bool
	generation uint64
}

// New returns an empty feed over source. name only labels log entries.
func New[T Keyed](name string, source Source[T], log logger.Logger) *Feed[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Feed[T]{
		name:     name,
		log:      log,
		inflight: semaphore.NewWeighted(1),
		source:   source,
		hasMore:  true,
	}
}

// Next fetches the page after the current cursor and merges it. It returns
// how many new records were appended.
func (f *Feed[T]) Next(ctx context.Context) (int, error) {
	if !f.inflight.TryAcquire(1) {
		return 0, ErrInFlight
	}
	defer f.inflight.Release(1)

	f.mu.Lock()
	if f.fetched && f.cursor == nil {
		f.mu.Unlock()
		return 0, ErrExhausted
	}
	source := f.source
	cursor := f.cursor
	generation := f.generation
	f.loading = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	page, err := source.FetchPage(ctx, cursor)
	if err != nil {
		f.log.Error("Failed to fetch page", err, map[string]interface{}{
			"feed":   f.name,
			"cursor": deref(cursor),
		})
		return 0, fmt.Errorf("fetching %s page: %w", f.name, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.generation != generation {
		f.log.Debug("Discarding page fetched before reset", map[string]interface{}{"feed": f.name})
		return 0, nil
	}

	added := f.merge(page.Items)
	f.cursor = page.ContinuationToken
	f.fetched = true
	f.hasMore = page.ContinuationToken != nil

	f.log.Debug("Feed advanced", map[string]interface{}{
		"feed":     f.name,
		"added":    added,
		"total":    len(f.items),
		"has_more": f.hasMore,
	})

	return added, nil
}

// merge appends the items whose key is not yet held. Callers hold f.mu.
func (f *Feed[T]) merge(items []T) int {
	seen := make(map[string]struct{}, len(f.items)+len(items))
	for _, it := range f.items {
		seen[it.Key()] = struct{}{}
	}

	added := 0
	for _, it := range items {
		k := it.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		f.items = append(f.items, it)
		added++
	}
	return added
}

// Reset drops the accumulated records and cursor. A fetch running while
// Reset is called completes but its page is discarded; Loading stays true
// until it returns, matching the in-flight guard.
func (f *Feed[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// Retarget resets the feed and replaces its source
func (f *Feed[T]) Retarget(source Source[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	f.source = source
}

func (f *Feed[T]) reset() {
	f.generation++
	f.items = nil
	f.cursor = nil
	f.fetched = false
	f.hasMore = true
}

// Items returns a copy of the accumulated records in arrival order
func (f *Feed[T]) Items() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of accumulated records
func (f *Feed[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// HasMore reports whether another page may exist
func (f *Feed[T]) HasMore() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hasMore
}

// Loading reports whether a fetch holds the in-flight guard
func (f *Feed[T]) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Cursor returns the continuation token of the last merged page
func (f *Feed[T]) Cursor() *string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.cursor == nil {
		return nil
	}
	c := *f.cursor
	return &c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
