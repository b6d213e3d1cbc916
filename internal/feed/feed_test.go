package feed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string
	Name string
}

func (r record) Key() string { return r.ID }

func token(s string) *string { return &s }

// scripted replays pages in order and records the cursors it was asked for
type scripted struct {
	mu      sync.Mutex
	pages   []Page[record]
	errs    []error
	cursors []*string
}

func (s *scripted) FetchPage(_ context.Context, cursor *string) (Page[record], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := len(s.cursors)
	s.cursors = append(s.cursors, cursor)
	if i < len(s.errs) && s.errs[i] != nil {
		return Page[record]{}, s.errs[i]
	}
	return s.pages[i], nil
}

func ids(items []record) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFeed_MergesPagesInArrivalOrder(t *testing.T) {
	src := &scripted{pages: []Page[record]{
		{Items: []record{{ID: "1"}, {ID: "2"}}, ContinuationToken: token("c1")},
		{Items: []record{{ID: "2"}, {ID: "3"}, {ID: "3"}}, ContinuationToken: nil},
	}}
	f := New[record]("tickets", src, nil)

	added, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.True(t, f.HasMore())
	assert.Equal(t, "c1", *f.Cursor())

	added, err = f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"1", "2", "3"}, ids(f.Items()))
	assert.False(t, f.HasMore())
	assert.Nil(t, f.Cursor())

	require.Len(t, src.cursors, 2)
	assert.Nil(t, src.cursors[0])
	assert.Equal(t, "c1", *src.cursors[1])
}

func TestFeed_RepeatedPageIsIdempotent(t *testing.T) {
	page := Page[record]{Items: []record{{ID: "a"}, {ID: "b"}}, ContinuationToken: token("same")}
	src := &scripted{pages: []Page[record]{page, page, page}}
	f := New[record]("patients", src, nil)

	for i := 0; i < 3; i++ {
		_, err := f.Next(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "b"}, ids(f.Items()))
}

func TestFeed_EmptyPageStillAdvancesCursor(t *testing.T) {
	src := &scripted{pages: []Page[record]{
		{Items: nil, ContinuationToken: token("sparse")},
		{Items: []record{{ID: "x"}}, ContinuationToken: nil},
	}}
	f := New[record]("tickets", src, nil)

	added, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, "sparse", *f.Cursor())
	assert.True(t, f.HasMore())

	_, err = f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sparse", *src.cursors[1])
}

func TestFeed_ExhaustedIsNoOp(t *testing.T) {
	src := &scripted{pages: []Page[record]{{Items: []record{{ID: "1"}}}}}
	f := New[record]("providers", src, nil)

	_, err := f.Next(context.Background())
	require.NoError(t, err)

	_, err = f.Next(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, src.cursors, 1)
	assert.False(t, f.Loading())
	assert.Equal(t, 1, f.Len())
}

func TestFeed_FailureLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("upstream unavailable")
	src := &scripted{
		pages: []Page[record]{
			{Items: []record{{ID: "1"}}, ContinuationToken: token("c1")},
			{},
			{Items: []record{{ID: "2"}}},
		},
		errs: []error{nil, boom, nil},
	}
	f := New[record]("tickets", src, nil)

	_, err := f.Next(context.Background())
	require.NoError(t, err)

	_, err = f.Next(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"1"}, ids(f.Items()))
	assert.Equal(t, "c1", *f.Cursor())
	assert.False(t, f.Loading())
	assert.True(t, f.HasMore())

	// the failed cursor is retried
	_, err = f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c1", *src.cursors[2])
	assert.Equal(t, []string{"1", "2"}, ids(f.Items()))
}

// blocking holds FetchPage until release is closed
type blocking struct {
	started chan struct{}
	release chan struct{}
	page    Page[record]
}

func (b *blocking) FetchPage(ctx context.Context, _ *string) (Page[record], error) {
	close(b.started)
	<-b.release
	return b.page, nil
}

func TestFeed_InFlightGuard(t *testing.T) {
	src := &blocking{
		started: make(chan struct{}),
		release: make(chan struct{}),
		page:    Page[record]{Items: []record{{ID: "1"}}, ContinuationToken: token("next")},
	}
	f := New[record]("tickets", src, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.Next(context.Background())
		done <- err
	}()

	<-src.started
	assert.True(t, f.Loading())

	_, err := f.Next(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)
	assert.True(t, f.Loading())

	close(src.release)
	require.NoError(t, <-done)
	assert.False(t, f.Loading())
	assert.Equal(t, 1, f.Len())
}

func TestFeed_ResetDiscardsPageInFlight(t *testing.T) {
	src := &blocking{
		started: make(chan struct{}),
		release: make(chan struct{}),
		page:    Page[record]{Items: []record{{ID: "stale"}}, ContinuationToken: nil},
	}
	f := New[record]("tickets", src, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.Next(context.Background())
		done <- err
	}()

	<-src.started
	f.Reset()
	assert.True(t, f.Loading(), "old fetch still holds the guard")
	_, err := f.Next(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)

	close(src.release)
	require.NoError(t, <-done)

	assert.Zero(t, f.Len())
	assert.True(t, f.HasMore())
	assert.Nil(t, f.Cursor())
	assert.False(t, f.Loading())
}

func TestFeed_RetargetStartsOver(t *testing.T) {
	first := &scripted{pages: []Page[record]{{Items: []record{{ID: "old"}}}}}
	second := &scripted{pages: []Page[record]{{Items: []record{{ID: "new"}}}}}
	f := New[record]("tickets", first, nil)

	_, err := f.Next(context.Background())
	require.NoError(t, err)

	f.Retarget(second)
	assert.Zero(t, f.Len())

	_, err = f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(f.Items()))
	assert.Nil(t, second.cursors[0])
}

func TestFeed_SourceFunc(t *testing.T) {
	f := New[record]("providers", SourceFunc[record](func(ctx context.Context, cursor *string) (Page[record], error) {
		return PageBySize([]record{{ID: "p1"}, {ID: "p2"}}, 2, PageNumber(cursor, 1)+1), nil
	}), nil)

	_, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", *f.Cursor())
}

func TestPageBySize(t *testing.T) {
	full := PageBySize([]int{1, 2, 3}, 3, 4)
	require.NotNil(t, full.ContinuationToken)
	assert.Equal(t, "4", *full.ContinuationToken)

	short := PageBySize([]int{1}, 3, 4)
	assert.Nil(t, short.ContinuationToken)

	assert.Equal(t, 1, PageNumber(nil, 1))
	assert.Equal(t, 5, PageNumber(token("5"), 1))
	assert.Equal(t, 1, PageNumber(token("x"), 1))
	assert.Equal(t, 1, PageNumber(token("-3"), 1))
}
