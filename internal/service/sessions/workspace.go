package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/logger"
)

// Workspace holds the feeds of one session together with the scope each
// feed was loaded for
type Workspace struct {
	ID      string
	Created time.Time

	Tickets   *feed.Feed[dto.Ticket]
	Patients  *feed.Feed[dto.Patient]
	Providers *feed.Feed[dto.Provider]

	sources Sources

	mu            sync.Mutex
	ticketScope   dto.TicketScope
	patientScope  dto.SearchScope
	providerScope dto.SearchScope
	lastUsed      time.Time
}

func newWorkspace(id string, sources Sources, log logger.Logger, now time.Time) *Workspace {
	return &Workspace{
		ID:        id,
		Created:   now,
		Tickets:   feed.New("tickets", sources.Tickets(dto.TicketScope{}), log),
		Patients:  feed.New("patients", sources.Patients(dto.SearchScope{}), log),
		Providers: feed.New("providers", sources.Providers(dto.SearchScope{}), log),
		sources:   sources,
		lastUsed:  now,
	}
}

// TicketsNext pulls the next ticket page for scope. A scope different from
// the one loaded so far starts the feed over.
func (w *Workspace) TicketsNext(ctx context.Context, scope dto.TicketScope) (int, error) {
	w.mu.Lock()
	if scope != w.ticketScope {
		w.ticketScope = scope
		w.Tickets.Retarget(w.sources.Tickets(scope))
	}
	w.mu.Unlock()
	return w.Tickets.Next(ctx)
}

// PatientsNext pulls the next patient page for query
func (w *Workspace) PatientsNext(ctx context.Context, query string) (int, error) {
	scope := dto.SearchScope{Query: query}
	w.mu.Lock()
	if scope != w.patientScope {
		w.patientScope = scope
		w.Patients.Retarget(w.sources.Patients(scope))
	}
	w.mu.Unlock()
	return w.Patients.Next(ctx)
}

// ProvidersNext pulls the next provider page for query
func (w *Workspace) ProvidersNext(ctx context.Context, query string) (int, error) {
	scope := dto.SearchScope{Query: query}
	w.mu.Lock()
	if scope != w.providerScope {
		w.providerScope = scope
		w.Providers.Retarget(w.sources.Providers(scope))
	}
	w.mu.Unlock()
	return w.Providers.Next(ctx)
}

// TicketScope is the scope the ticket feed currently holds
func (w *Workspace) TicketScope() dto.TicketScope {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ticketScope
}

// PatientQuery is the query the patient feed currently holds
func (w *Workspace) PatientQuery() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.patientScope.Query
}

// ProviderQuery is the query the provider feed currently holds
func (w *Workspace) ProviderQuery() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.providerScope.Query
}

// LastUsed is when the workspace was last looked up
func (w *Workspace) LastUsed() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastUsed = now
	w.mu.Unlock()
}

// Status folds the result of a Next call into a FeedStatus. In-flight and
// exhausted no-ops are reported as skipped; any other error is returned.
func Status[T feed.Keyed](f *feed.Feed[T], added int, err error) (dto.FeedStatus, error) {
	st := dto.FeedStatus{
		Added:   added,
		Total:   f.Len(),
		HasMore: f.HasMore(),
	}
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, feed.ErrInFlight):
		st.Skipped = "in_flight"
		return st, nil
	case errors.Is(err, feed.ErrExhausted):
		st.Skipped = "exhausted"
		return st, nil
	default:
		return st, err
	}
}
