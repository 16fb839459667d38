package stores

import (
	"sync"

	"github.com/lumenshop/storefront/internal/app/domain/catalog"
)

// HomePayload carries the three data sets the landing view renders
// together.
type HomePayload struct {
	Categories []catalog.Category
	Products   []catalog.Product
	Banners    []catalog.Banner
}

type sourceState int

const (
	sourceLoading sourceState = iota
	sourceSuccess
	sourceError
)

func classify(isLoading bool, errMsg string) sourceState {
	switch {
	case isLoading:
		return sourceLoading
	case errMsg != "":
		return sourceError
	default:
		return sourceSuccess
	}
}

// Home joins the category, product and banner stores into one landing
// snapshot. The join is all-or-nothing: the combined state is Success only
// once all three sources succeeded, Error as soon as any source errors
// (ties broken in declared order: categories, products, banners), and
// Loading otherwise.
type Home struct {
	out *Store[HomePayload]

	mu         sync.Mutex
	categories Snapshot[[]catalog.Category]
	products   Snapshot[[]catalog.Product]
	banners    Snapshot[[]catalog.Banner]

	cancels []func()
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewHome subscribes to the three source stores and starts re-joining on
// every source update.
func NewHome(categories *Store[[]catalog.Category], products *Store[[]catalog.Product], banners *Store[[]catalog.Banner]) *Home {
	h := &Home{
		out:        New[HomePayload](true),
		categories: categories.Snapshot(),
		products:   products.Snapshot(),
		banners:    banners.Snapshot(),
		done:       make(chan struct{}),
	}

	catCh, catCancel := categories.Observe()
	prodCh, prodCancel := products.Observe()
	banCh, banCancel := banners.Observe()
	h.cancels = []func(){catCancel, prodCancel, banCancel}

	h.wg.Add(3)
	go track(h, catCh, func(s Snapshot[[]catalog.Category]) { h.categories = s })
	go track(h, prodCh, func(s Snapshot[[]catalog.Product]) { h.products = s })
	go track(h, banCh, func(s Snapshot[[]catalog.Banner]) { h.banners = s })

	h.recompute()
	return h
}

// Snapshot returns the latest combined snapshot.
func (h *Home) Snapshot() Snapshot[HomePayload] {
	return h.out.Snapshot()
}

// Observe subscribes to combined snapshot updates.
func (h *Home) Observe() (<-chan Snapshot[HomePayload], func()) {
	return h.out.Observe()
}

// Close detaches from the source stores. No combined updates are published
// afterwards.
func (h *Home) Close() {
	for _, cancel := range h.cancels {
		cancel()
	}
	close(h.done)
	h.wg.Wait()
}

func track[T any](h *Home, ch <-chan Snapshot[T], set func(Snapshot[T])) {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case snap := <-ch:
			h.mu.Lock()
			set(snap)
			h.mu.Unlock()
			h.recompute()
		}
	}
}

// recompute evaluates the join rule over the latest source snapshots and
// publishes the combined result.
func (h *Home) recompute() {
	h.mu.Lock()
	cats, prods, bans := h.categories, h.products, h.banners
	h.mu.Unlock()

	// Declared source order decides which message wins on simultaneous
	// errors.
	for _, src := range []struct {
		state sourceState
		msg   string
	}{
		{classify(cats.IsLoading, cats.ErrorMessage), cats.ErrorMessage},
		{classify(prods.IsLoading, prods.ErrorMessage), prods.ErrorMessage},
		{classify(bans.IsLoading, bans.ErrorMessage), bans.ErrorMessage},
	} {
		if src.state == sourceError {
			h.out.Replace(Snapshot[HomePayload]{ErrorMessage: src.msg})
			return
		}
	}

	allSuccess := classify(cats.IsLoading, cats.ErrorMessage) == sourceSuccess &&
		classify(prods.IsLoading, prods.ErrorMessage) == sourceSuccess &&
		classify(bans.IsLoading, bans.ErrorMessage) == sourceSuccess
	if allSuccess {
		h.out.Replace(Snapshot[HomePayload]{
			Payload: HomePayload{
				Categories: cats.Payload,
				Products:   prods.Payload,
				Banners:    bans.Payload,
			},
		})
		return
	}

	h.out.Replace(Snapshot[HomePayload]{IsLoading: true})
}
