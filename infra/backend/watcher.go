package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/pkg/logger"
)

// Watcher polls a collection for changes. It is the continuous-observation
// counterpart to the one-shot adapters: each poll that changes the visible
// document set invokes the handler with the latest documents. It works
// against any remote.Documents implementation.
type Watcher struct {
	docs       remote.Documents
	collection string
	filter     *remote.Filter
	interval   time.Duration
	handler    func([]remote.Document)
	log        *logger.Logger

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
	lastIDs map[string]struct{}
}

// NewWatcher creates a poller over collection with an optional equality
// filter.
func NewWatcher(docs remote.Documents, collection string, filter *remote.Filter, interval time.Duration, log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.NewDefault("watcher")
	}
	return &Watcher{
		docs:       docs,
		collection: collection,
		filter:     filter,
		interval:   interval,
		log:        log,
	}
}

// OnChange sets the handler invoked when the document set changes.
func (w *Watcher) OnChange(handler func([]remote.Document)) *Watcher {
	w.handler = handler
	return w
}

// Start begins polling until Stop is called or ctx is cancelled. A stopped
// watcher can be started again; it keeps its last observed id set so a
// restart does not re-fire for an unchanged collection.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	go w.poll(ctx, stopCh)
	return nil
}

// Stop stops the poller.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

func (w *Watcher) poll(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	docs, err := w.docs.Query(ctx, w.collection, w.filter, 0)
	if err != nil {
		// Polling failures are transient; keep ticking.
		w.log.WithError(err).Debug("watch poll failed")
		return
	}

	ids := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		ids[d.ID] = struct{}{}
	}

	w.mu.Lock()
	changed := w.lastIDs == nil || !sameIDs(w.lastIDs, ids)
	w.lastIDs = ids
	handler := w.handler
	w.mu.Unlock()

	if changed && handler != nil {
		handler(docs)
	}
}

func sameIDs(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
