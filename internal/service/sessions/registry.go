// Package sessions keeps one workspace of accumulated feeds per dashboard
// session.
package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"calldeskrest/internal/feed"
	"calldeskrest/internal/models/dto"
	"calldeskrest/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned for unknown or disposed session ids
var ErrNotFound = errors.New("session not found")

// Sources builds the page source of each entity for a given scope
type Sources struct {
	Tickets   func(dto.TicketScope) feed.Source[dto.Ticket]
	Patients  func(dto.SearchScope) feed.Source[dto.Patient]
	Providers func(dto.SearchScope) feed.Source[dto.Provider]
}

// Registry owns the live workspaces
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	sources    Sources
	log        logger.Logger
	now        func() time.Time
}

// NewRegistry returns an empty registry
func NewRegistry(sources Sources, log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		sources:    sources,
		log:        log,
		now:        time.Now,
	}
}

// Create registers a new workspace and loads the first page of each feed
// in parallel. Warm-up failures are logged; the workspace is returned anyway
// and the failed feed can be retried with its Next call.
func (r *Registry) Create(ctx context.Context) *Workspace {
	ws := newWorkspace(uuid.NewString(), r.sources, r.log, r.now())

	r.mu.Lock()
	r.workspaces[ws.ID] = ws
	r.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		_, err := ws.Tickets.Next(ctx)
		return err
	})
	g.Go(func() error {
		_, err := ws.Patients.Next(ctx)
		return err
	})
	g.Go(func() error {
		_, err := ws.Providers.Next(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		r.log.Warn("Session warm-up incomplete", map[string]interface{}{
			"session_id": ws.ID,
			"error":      err.Error(),
		})
	}

	r.log.Info("Session created", map[string]interface{}{"session_id": ws.ID})
	return ws
}

// Get returns the workspace and marks it as used
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	ws, ok := r.workspaces[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	ws.touch(r.now())
	return ws, nil
}

// Dispose drops the workspace and everything it accumulated
func (r *Registry) Dispose(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workspaces[id]; !ok {
		return ErrNotFound
	}
	delete(r.workspaces, id)
	return nil
}

// Sweep disposes workspaces idle for longer than maxIdle and reports how
// many were removed
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ws := range r.workspaces {
		if ws.LastUsed().Before(cutoff) {
			delete(r.workspaces, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info("Idle sessions swept", map[string]interface{}{
			"removed":   removed,
			"remaining": len(r.workspaces),
		})
	}
	return removed
}

// Len reports the number of live workspaces
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}
