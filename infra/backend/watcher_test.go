package backend

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/internal/app/remote/memory"
)

type countRecorder struct {
	mu     sync.Mutex
	counts []int
}

func (r *countRecorder) record(docs []remote.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, len(docs))
}

func (r *countRecorder) last() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.counts) == 0 {
		return 0, false
	}
	return r.counts[len(r.counts)-1], true
}

func waitForCount(t *testing.T, rec *countRecorder, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if got, ok := rec.last(); ok && got == want {
			return
		}
		select {
		case <-deadline:
			got, _ := rec.last()
			t.Fatalf("handler never saw %d documents, last %d", want, got)
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func TestWatcherFiresOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	rec := &countRecorder{}
	w := NewWatcher(store, remote.CartItemsCollection, nil, 5*time.Millisecond, nil).OnChange(rec.record)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	// The first poll reports the initial (empty) set.
	waitForCount(t, rec, 0)

	if _, err := store.Add(ctx, remote.CartItemsCollection, map[string]string{"name": "Linen Shirt"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	waitForCount(t, rec, 1)

	if _, err := store.Add(ctx, remote.CartItemsCollection, map[string]string{"name": "Denim Shirt"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	waitForCount(t, rec, 2)
}

func TestWatcherSkipsUnchangedSets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	if _, err := store.Add(ctx, remote.CartItemsCollection, map[string]string{"name": "Linen Shirt"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := &countRecorder{}
	w := NewWatcher(store, remote.CartItemsCollection, nil, 5*time.Millisecond, nil).OnChange(rec.record)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	waitForCount(t, rec, 1)
	time.Sleep(50 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.counts) != 1 {
		t.Fatalf("handler fired %d times for an unchanged set", len(rec.counts))
	}
}

func TestWatcherRestartsAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	rec := &countRecorder{}
	w := NewWatcher(store, remote.CartItemsCollection, nil, 5*time.Millisecond, nil).OnChange(rec.record)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitForCount(t, rec, 0)
	w.Stop()

	if _, err := store.Add(ctx, remote.CartItemsCollection, map[string]string{"name": "Linen Shirt"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer w.Stop()
	waitForCount(t, rec, 1)
}

func TestWatcherRejectsDoubleStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(memory.New(), remote.CartItemsCollection, nil, time.Minute, nil)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err == nil {
		t.Fatal("second start must fail while running")
	}
}
