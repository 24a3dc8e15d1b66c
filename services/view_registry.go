package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrViewNotFound = errors.New("view not found")

const (
	// DefaultViewTTL is how long an untouched view is kept.
	DefaultViewTTL = 30 * time.Minute

	// DefaultMaxViews bounds the live views; each one holds its own dataset.
	DefaultMaxViews = 1000
)

// ViewRegistry owns the live views, keyed by id. Views idle for longer than
// the TTL are closed and dropped, and once maxViews are live the least
// recently used one makes room for a new view.
type ViewRegistry struct {
	mu       sync.Mutex
	views    map[uuid.UUID]*View
	loader   DatasetLoader
	base     context.Context
	ttl      time.Duration
	maxViews int
	now      func() time.Time
}

// NewViewRegistry creates a registry whose views fetch under base, so a
// fetch outlives the request that created the view but not the server.
func NewViewRegistry(base context.Context, loader DatasetLoader, ttl time.Duration) *ViewRegistry {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &ViewRegistry{
		views:    make(map[uuid.UUID]*View),
		loader:   loader,
		base:     base,
		ttl:      ttl,
		maxViews: DefaultMaxViews,
		now:      time.Now,
	}
}

// WithMaxViews sets the live view cap. n <= 0 keeps the default.
func (r *ViewRegistry) WithMaxViews(n int) *ViewRegistry {
	if n > 0 {
		r.mu.Lock()
		r.maxViews = n
		r.mu.Unlock()
	}
	return r
}

// Create mounts a new view and registers it.
func (r *ViewRegistry) Create() *View {
	r.EvictExpired()

	v := NewView(r.loader)
	v.Mount(r.base)

	r.mu.Lock()
	var evicted []*View
	for len(r.views) >= r.maxViews {
		lru := r.leastRecentlyUsed()
		if lru == nil {
			break
		}
		delete(r.views, lru.ID())
		evicted = append(evicted, lru)
	}
	r.views[v.ID()] = v
	count, limit := len(r.views), r.maxViews
	r.mu.Unlock()

	for _, old := range evicted {
		old.Close()
		log.Warn().Str("view", old.ID().String()).Int("max_views", limit).Msg("[view.create] view limit reached, closed least recently used view")
	}

	log.Debug().Str("view", v.ID().String()).Int("views", count).Msg("[view.create] view mounted")
	return v
}

// leastRecentlyUsed must be called with r.mu held.
func (r *ViewRegistry) leastRecentlyUsed() *View {
	var (
		oldest     *View
		oldestUsed time.Time
	)
	for _, v := range r.views {
		used := v.LastUsed()
		if oldest == nil || used.Before(oldestUsed) {
			oldest, oldestUsed = v, used
		}
	}
	return oldest
}

func (r *ViewRegistry) Get(id uuid.UUID) (*View, error) {
	r.mu.Lock()
	v, ok := r.views[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrViewNotFound
	}
	if r.expired(v) {
		r.remove(id, v)
		return nil, ErrViewNotFound
	}
	return v, nil
}

// Close tears down and forgets a view.
func (r *ViewRegistry) Close(id uuid.UUID) error {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return ErrViewNotFound
	}
	v.Close()
	log.Debug().Str("view", id.String()).Msg("[view.close] view closed")
	return nil
}

func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// EvictExpired closes every idle view and returns how many were removed.
func (r *ViewRegistry) EvictExpired() int {
	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		if r.expired(v) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	if len(stale) > 0 {
		log.Debug().Int("evicted", len(stale)).Msg("[view.evict] idle views closed")
	}
	return len(stale)
}

// CloseAll tears down every view, used on shutdown.
func (r *ViewRegistry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[uuid.UUID]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}

// RunJanitor evicts idle views every interval until ctx is done.
func (r *ViewRegistry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictExpired()
		}
	}
}

func (r *ViewRegistry) expired(v *View) bool {
	return r.now().Sub(v.LastUsed()) > r.ttl
}

func (r *ViewRegistry) remove(id uuid.UUID, v *View) {
	r.mu.Lock()
	if current, ok := r.views[id]; ok && current == v {
		delete(r.views, id)
	}
	r.mu.Unlock()
	v.Close()
}
