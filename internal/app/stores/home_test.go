package stores

import (
	"testing"
	"time"

	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/pkg/result"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func newHomeFixture() (*Home, *Store[[]catalog.Category], *Store[[]catalog.Product], *Store[[]catalog.Banner]) {
	cats := New[[]catalog.Category](true)
	prods := New[[]catalog.Product](true)
	bans := New[[]catalog.Banner](true)
	return NewHome(cats, prods, bans), cats, prods, bans
}

func TestHomeStartsLoading(t *testing.T) {
	h, _, _, _ := newHomeFixture()
	defer h.Close()
	if snap := h.Snapshot(); !snap.IsLoading {
		t.Fatalf("expected initial loading, got %#v", snap)
	}
}

func TestHomeStaysLoadingUntilAllSourcesSucceed(t *testing.T) {
	h, cats, prods, bans := newHomeFixture()
	defer h.Close()

	cats.Apply(result.Success([]catalog.Category{{Name: "Shirts"}}))
	prods.Apply(result.Success([]catalog.Product{{Name: "Linen Shirt"}}))

	// Two of three terminal: still loading.
	time.Sleep(20 * time.Millisecond)
	if snap := h.Snapshot(); !snap.IsLoading {
		t.Fatalf("expected loading with banners pending, got %#v", snap)
	}

	bans.Apply(result.Success([]catalog.Banner{{Name: "Sale"}}))
	waitFor(t, func() bool {
		snap := h.Snapshot()
		return !snap.IsLoading && snap.ErrorMessage == ""
	}, "combined success never published")

	snap := h.Snapshot()
	if len(snap.Payload.Categories) != 1 || len(snap.Payload.Products) != 1 || len(snap.Payload.Banners) != 1 {
		t.Fatalf("aggregate incomplete: %#v", snap.Payload)
	}
}

func TestHomeErrorPropagatesImmediately(t *testing.T) {
	h, _, prods, _ := newHomeFixture()
	defer h.Close()

	prods.Apply(result.Failure[[]catalog.Product]("products unavailable"))
	waitFor(t, func() bool {
		return h.Snapshot().ErrorMessage == "products unavailable"
	}, "source error never propagated")

	if snap := h.Snapshot(); snap.IsLoading {
		t.Fatalf("errored aggregate must not be loading: %#v", snap)
	}
}

func TestHomeErrorPrecedenceFollowsDeclaredOrder(t *testing.T) {
	h, cats, _, bans := newHomeFixture()
	defer h.Close()

	bans.Apply(result.Failure[[]catalog.Banner]("banner error"))
	waitFor(t, func() bool {
		return h.Snapshot().ErrorMessage == "banner error"
	}, "banner error never published")

	// Once the category source errors too, its message takes precedence.
	cats.Apply(result.Failure[[]catalog.Category]("category error"))
	waitFor(t, func() bool {
		return h.Snapshot().ErrorMessage == "category error"
	}, "category error never took precedence")
}

func TestHomeRecoversFromErrorOnRetry(t *testing.T) {
	h, cats, prods, bans := newHomeFixture()
	defer h.Close()

	cats.Apply(result.Failure[[]catalog.Category]("offline"))
	waitFor(t, func() bool {
		return h.Snapshot().ErrorMessage == "offline"
	}, "error never published")

	cats.Apply(result.Loading[[]catalog.Category]())
	waitFor(t, func() bool {
		return h.Snapshot().IsLoading
	}, "retry never returned aggregate to loading")

	cats.Apply(result.Success([]catalog.Category{{Name: "Shoes"}}))
	prods.Apply(result.Success([]catalog.Product{{Name: "Trail Shoes"}}))
	bans.Apply(result.Success([]catalog.Banner{{Name: "Monsoon"}}))
	waitFor(t, func() bool {
		snap := h.Snapshot()
		return !snap.IsLoading && snap.ErrorMessage == ""
	}, "aggregate never recovered")
}

func TestHomeCloseStopsUpdates(t *testing.T) {
	h, cats, prods, bans := newHomeFixture()
	h.Close()

	cats.Apply(result.Success([]catalog.Category{{Name: "Shirts"}}))
	prods.Apply(result.Success([]catalog.Product{{Name: "Linen Shirt"}}))
	bans.Apply(result.Success([]catalog.Banner{{Name: "Sale"}}))

	time.Sleep(20 * time.Millisecond)
	if snap := h.Snapshot(); !snap.IsLoading {
		t.Fatalf("aggregate updated after close: %#v", snap)
	}
}
