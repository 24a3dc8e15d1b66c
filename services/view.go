package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrViewClosed = errors.New("view is closed")

// DatasetLoader is satisfied by *Loader.
type DatasetLoader interface {
	Load(ctx context.Context) (LoadResult, error)
}

// View is one mounted entitlement browser. It fetches the dataset exactly
// once, then answers search and facet changes synchronously from memory.
//
// All state lives in an immutable ViewSnapshot that is replaced whole under
// the mutex; readers get a value they can keep without further locking.
type View struct {
	mu       sync.Mutex
	snap     models.ViewSnapshot
	loader   DatasetLoader
	mounted  bool
	closed   bool
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once
	lastUsed time.Time
	now      func() time.Time
}

func NewView(loader DatasetLoader) *View {
	now := time.Now
	return &View{
		snap:     initialSnapshot(uuid.New(), now()),
		loader:   loader,
		done:     make(chan struct{}),
		lastUsed: now(),
		now:      now,
	}
}

// ID returns the view id.
func (v *View) ID() uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap.ID
}

// Mount starts the single dataset fetch. Calling it again is a no-op.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted || v.closed {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()

	go func() {
		defer v.markDone()
		defer cancel()
		result, err := v.loader.Load(ctx)
		v.finishLoad(result, err)
	}()
}

// Wait blocks until the fetch has finished or ctx is done.
func (v *View) Wait(ctx context.Context) error {
	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *View) markDone() {
	v.doneOnce.Do(func() { close(v.done) })
}

func (v *View) finishLoad(result LoadResult, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		log.Debug().Str("view", v.snap.ID.String()).Msg("[view.load] discarding result for closed view")
		return
	}

	if err != nil {
		v.snap = applyLoadFailed(v.snap, classifyLoadError(err), v.now())
		return
	}
	v.snap = applyLoaded(v.snap, result, v.now())
}

// Snapshot returns the current state.
func (v *View) Snapshot() models.ViewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = v.now()
	return v.snap
}

// SetSearch replaces the search text and recomputes the visible records.
func (v *View) SetSearch(search string) (models.ViewSnapshot, error) {
	return v.update(func(s models.ViewSnapshot, now time.Time) models.ViewSnapshot {
		return applySearch(s, search, now)
	})
}

// Toggle flips one facet value and recomputes the visible records.
func (v *View) Toggle(f models.Facet, value string) (models.ViewSnapshot, error) {
	return v.update(func(s models.ViewSnapshot, now time.Time) models.ViewSnapshot {
		return applyToggle(s, f, value, now)
	})
}

func (v *View) update(fn func(models.ViewSnapshot, time.Time) models.ViewSnapshot) (models.ViewSnapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return v.snap, ErrViewClosed
	}
	now := v.now()
	v.lastUsed = now
	v.snap = fn(v.snap, now)
	return v.snap, nil
}

// Close tears the view down. An in-flight fetch is cancelled and its result,
// if it still arrives, is dropped.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
	if !v.mounted {
		v.markDone()
	}
	v.snap.State = models.LoadStateClosed
	v.snap.UpdatedAt = v.now()
}

func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// LastUsed is the time of the last read or update.
func (v *View) LastUsed() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastUsed
}

// ── Pure snapshot updates ────────────────────────────────────────────────────

func initialSnapshot(id uuid.UUID, now time.Time) models.ViewSnapshot {
	return recompute(models.ViewSnapshot{
		ID:        id,
		State:     models.LoadStateLoading,
		UpdatedAt: now,
	})
}

func applyLoaded(s models.ViewSnapshot, result LoadResult, now time.Time) models.ViewSnapshot {
	s.State = models.LoadStateReady
	s.LoadError = nil
	s.Records = result.Records
	s.Skipped = result.Skipped
	s.UpdatedAt = now
	return recompute(s)
}

func applyLoadFailed(s models.ViewSnapshot, err *LoadError, now time.Time) models.ViewSnapshot {
	s.State = models.LoadStateFailed
	s.LoadError = err.Failure()
	s.Records = nil
	s.Skipped = 0
	s.UpdatedAt = now
	return recompute(s)
}

func applySearch(s models.ViewSnapshot, search string, now time.Time) models.ViewSnapshot {
	s.Filters = s.Filters.WithSearch(search)
	s.Visible = FilterRecords(s.Records, s.Filters.Search, s.Filters)
	s.UpdatedAt = now
	return s
}

func applyToggle(s models.ViewSnapshot, f models.Facet, value string, now time.Time) models.ViewSnapshot {
	s.Filters = s.Filters.Toggle(f, value)
	s.Visible = FilterRecords(s.Records, s.Filters.Search, s.Filters)
	s.UpdatedAt = now
	return s
}

// recompute rebuilds everything derived from the dataset.
func recompute(s models.ViewSnapshot) models.ViewSnapshot {
	s.Options = BuildFacetOptions(s.Records)
	s.Visible = FilterRecords(s.Records, s.Filters.Search, s.Filters)
	return s
}
