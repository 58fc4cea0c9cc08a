package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "standings:c1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestLoad_TypedValueAndPrefixInvalidation(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"team-a", "team-b"}, nil
	}

	got, err := Load(ctx, store, "teams:c1", loader)
	if err != nil || len(got) != 2 {
		t.Fatalf("first load got=%v err=%v", got, err)
	}
	if _, err := Load(ctx, store, "teams:c1", loader); err != nil {
		t.Fatalf("second load error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}

	store.DeletePrefix(ctx, "teams:")
	if _, err := Load(ctx, store, "teams:c1", loader); err != nil {
		t.Fatalf("third load error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("loader called %d times after invalidation, want 2", calls.Load())
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "championships:all", "cached")
	if _, ok := store.Get(ctx, "championships:all"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(ctx, "championships:all"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expired entry kept: len=%d", got)
	}
}

func TestStore_InvalidationDuringLoadIsNotOverwritten(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	loading := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(ctx, "teams:c1", func(context.Context) (any, error) {
			close(loading)
			<-release
			return "stale", nil
		})
	}()

	<-loading
	store.DeletePrefix(ctx, "teams:")
	close(release)
	<-done

	if v, ok := store.Get(ctx, "teams:c1"); ok {
		t.Fatalf("stale load repopulated invalidated key: %v", v)
	}
}
