package services

import (
	"context"
	"errors"
	"testing"
	"time"

	dataset_cache "github.com/brendanxryan/entitlemate-backend/cache"
)

func TestCachedSourceSharesOneFetch(t *testing.T) {
	t.Parallel()
	upstream := &staticSource{rows: scenarioRows()}
	source := &CachedSource{Source: upstream, Cache: dataset_cache.New(nil, time.Minute)}
	loader := NewLoader(source)

	for i := 0; i < 3; i++ {
		mountAndWait(t, NewView(loader))
	}
	if got := upstream.calls.Load(); got != 1 {
		t.Errorf("upstream fetched %d times, want 1", got)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	t.Parallel()
	upstream := &staticSource{err: ErrSourceStatus}
	source := &CachedSource{Source: upstream, Cache: dataset_cache.New(nil, time.Minute)}

	for i := 0; i < 2; i++ {
		if _, err := source.Fetch(context.Background()); !errors.Is(err, ErrSourceStatus) {
			t.Fatalf("err = %v", err)
		}
	}
	if got := upstream.calls.Load(); got != 2 {
		t.Errorf("upstream fetched %d times, want 2", got)
	}
}
