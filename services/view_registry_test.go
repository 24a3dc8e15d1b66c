package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRegistry(t *testing.T) *ViewRegistry {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewViewRegistry(ctx, NewLoader(&staticSource{rows: scenarioRows()}), time.Minute)
}

func TestRegistryCreateGetClose(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)

	v := reg.Create()
	got, err := reg.Get(v.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != v {
		t.Fatalf("Get returned a different view")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}

	if err := reg.Close(v.ID()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !v.Closed() {
		t.Errorf("view should be closed")
	}
	if _, err := reg.Get(v.ID()); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("Get after close = %v, want ErrViewNotFound", err)
	}
	if err := reg.Close(v.ID()); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("second Close = %v, want ErrViewNotFound", err)
	}
}

func TestRegistryUnknownID(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)
	if _, err := reg.Get(uuid.New()); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("Get = %v, want ErrViewNotFound", err)
	}
}

func TestRegistryViewsAreIsolated(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)
	a := reg.Create()
	b := reg.Create()
	mountAndWait(t, a)
	mountAndWait(t, b)

	snap, _ := a.SetSearch("nothing matches this")
	if len(snap.Visible) != 0 {
		t.Fatalf("expected empty result in view a")
	}
	if got := b.Snapshot(); len(got.Visible) != 1 || got.Filters.Search != "" {
		t.Errorf("view b picked up view a's filters: %+v", got.Filters)
	}
}

func TestRegistryEvictsIdleViews(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)
	v := reg.Create()
	mountAndWait(t, v)

	reg.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if n := reg.EvictExpired(); n != 1 {
		t.Fatalf("EvictExpired = %d, want 1", n)
	}
	if !v.Closed() {
		t.Errorf("evicted view should be closed")
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistryGetDropsExpiredView(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)
	v := reg.Create()

	reg.now = func() time.Time { return time.Now().Add(time.Hour) }
	if _, err := reg.Get(v.ID()); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("Get on expired view = %v, want ErrViewNotFound", err)
	}
	if !v.Closed() {
		t.Errorf("expired view should be closed on lookup")
	}
}

func TestRegistryCloseAll(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)
	views := []*View{reg.Create(), reg.Create(), reg.Create()}

	reg.CloseAll()
	for _, v := range views {
		if !v.Closed() {
			t.Errorf("view %s still open", v.ID())
		}
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistryCapsLiveViews(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t).WithMaxViews(2)

	clock := time.Now()
	reg.now = func() time.Time { return clock }

	first := reg.Create()
	second := reg.Create()
	mountAndWait(t, first)
	mountAndWait(t, second)

	// Touch first so second becomes the least recently used.
	time.Sleep(5 * time.Millisecond)
	first.Snapshot()

	third := reg.Create()
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}
	if !second.Closed() {
		t.Errorf("least recently used view should have been closed")
	}
	if first.Closed() || third.Closed() {
		t.Errorf("recently used views must stay open")
	}
	if _, err := reg.Get(second.ID()); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("Get(second) = %v, want ErrViewNotFound", err)
	}

	for i := 0; i < 20; i++ {
		reg.Create()
	}
	if reg.Len() != 2 {
		t.Errorf("Len after burst = %d, want 2", reg.Len())
	}
}

func TestRegistryDefaultCap(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t).WithMaxViews(0)
	if reg.maxViews != DefaultMaxViews {
		t.Errorf("maxViews = %d, want default %d", reg.maxViews, DefaultMaxViews)
	}
}
