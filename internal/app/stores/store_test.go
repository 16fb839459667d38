package stores

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lumenshop/storefront/pkg/result"
)

func TestApplyReductionRules(t *testing.T) {
	st := New[[]string](false)

	st.Apply(result.Success([]string{"a", "b"}))
	snap := st.Snapshot()
	if snap.IsLoading || snap.ErrorMessage != "" || len(snap.Payload) != 2 {
		t.Fatalf("unexpected snapshot after success: %#v", snap)
	}

	// Loading overlays the stale payload instead of blanking it.
	st.Apply(result.Loading[[]string]())
	snap = st.Snapshot()
	if !snap.IsLoading {
		t.Fatal("expected loading")
	}
	if len(snap.Payload) != 2 {
		t.Fatalf("loading must keep the previous payload, got %v", snap.Payload)
	}

	// Error keeps the payload and records the message.
	st.Apply(result.Failure[[]string]("fetch failed"))
	snap = st.Snapshot()
	if snap.IsLoading || snap.ErrorMessage != "fetch failed" {
		t.Fatalf("unexpected snapshot after error: %#v", snap)
	}
	if len(snap.Payload) != 2 {
		t.Fatalf("error must keep the previous payload, got %v", snap.Payload)
	}

	// Success replaces the payload and clears the error.
	st.Apply(result.Success([]string{"c"}))
	snap = st.Snapshot()
	if snap.ErrorMessage != "" || len(snap.Payload) != 1 || snap.Payload[0] != "c" {
		t.Fatalf("unexpected snapshot after recovery: %#v", snap)
	}
}

func TestApplyRepeatedLoadingIsIdempotent(t *testing.T) {
	st := New[string](false)
	st.Apply(result.Success("hello"))
	st.Apply(result.Loading[string]())
	st.Apply(result.Loading[string]())
	snap := st.Snapshot()
	if !snap.IsLoading || snap.Payload != "hello" {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestObserveDeliversInEmissionOrder(t *testing.T) {
	st := New[int](false)
	ch, cancel := st.Observe()
	defer cancel()

	st.Apply(result.Loading[int]())
	st.Apply(result.Success(1))
	st.Apply(result.Loading[int]())
	st.Apply(result.Failure[int]("nope"))

	want := []Snapshot[int]{
		{IsLoading: true},
		{Payload: 1},
		{IsLoading: true, Payload: 1},
		{Payload: 1, ErrorMessage: "nope"},
	}
	for i, w := range want {
		select {
		case got := <-ch:
			if got != w {
				t.Fatalf("update %d: got %#v, want %#v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("update %d never delivered", i)
		}
	}
}

func TestObserveCancelStopsDelivery(t *testing.T) {
	st := New[int](false)
	ch, cancel := st.Observe()
	cancel()

	// A full burst must not block the reducer on the dead subscriber.
	for i := 0; i < 32; i++ {
		st.Apply(result.Success(i))
	}
	select {
	case snap := <-ch:
		// At most entries published before the cancel took effect.
		_ = snap
	default:
	}
	if got := st.Snapshot().Payload; got != 31 {
		t.Fatalf("reducer stalled, snapshot payload = %d", got)
	}
}

func TestConsumeReducesChannelToTerminal(t *testing.T) {
	st := New[string](false)
	ch := result.Run(context.Background(), func(ctx context.Context) (string, error) {
		return "done", nil
	})
	st.Consume(context.Background(), ch)
	snap := st.Snapshot()
	if snap.IsLoading || snap.Payload != "done" || snap.ErrorMessage != "" {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestConsumeStopsWritingAfterCancel(t *testing.T) {
	st := New[string](false)
	ctx, cancel := context.WithCancel(context.Background())
	gate := make(chan struct{})
	ch := result.Run(ctx, func(ctx context.Context) (string, error) {
		<-gate
		return "late", nil
	})

	consumed := make(chan struct{})
	go func() {
		st.Consume(ctx, ch)
		close(consumed)
	}()

	// Let the loading envelope land, then tear down mid-flight.
	deadline := time.After(time.Second)
	for !st.Snapshot().IsLoading {
		select {
		case <-deadline:
			t.Fatal("loading never reduced")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-consumed
	close(gate)

	time.Sleep(20 * time.Millisecond)
	snap := st.Snapshot()
	if snap.Payload == "late" {
		t.Fatal("snapshot written after consume scope ended")
	}
	if !snap.IsLoading {
		t.Fatalf("expected snapshot frozen in loading state, got %#v", snap)
	}
}

func TestConsumeIgnoresBufferedEnvelopesAfterCancel(t *testing.T) {
	// Fail buffers both envelopes up front, so the receive and ctx.Done
	// are ready together; a cancelled scope must reduce neither.
	for i := 0; i < 300; i++ {
		st := New[string](false)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		st.Consume(ctx, result.Fail[string]("stale failure"))

		snap := st.Snapshot()
		if snap.IsLoading || snap.ErrorMessage != "" {
			t.Fatalf("run %d: snapshot mutated after teardown: %#v", i, snap)
		}
	}
}

func TestPublishOrderMatchesCommitOrder(t *testing.T) {
	st := New[int](false)
	ch, cancelObs := st.Observe()
	defer cancelObs()

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			st.Apply(result.Success(i))
		}()
	}

	var last int
	for i := 0; i < n; i++ {
		select {
		case snap := <-ch:
			last = snap.Payload
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d snapshots delivered", i, n)
		}
	}
	wg.Wait()

	if final := st.Snapshot().Payload; last != final {
		t.Fatalf("last delivery %d does not match final snapshot %d", last, final)
	}
}

func TestOverlappingConsumesLastWriteWins(t *testing.T) {
	st := New[string](false)

	first := result.Run(context.Background(), func(ctx context.Context) (string, error) {
		return "first", nil
	})
	second := result.Run(context.Background(), func(ctx context.Context) (string, error) {
		return "second", nil
	})

	// Reduce both fully; the later terminal is the one that sticks.
	st.Consume(context.Background(), first)
	st.Consume(context.Background(), second)

	if got := st.Snapshot().Payload; got != "second" {
		t.Fatalf("expected last terminal to win, got %q", got)
	}
}

func TestResetClearsToIdlePayload(t *testing.T) {
	st := New[[]string](false)
	st.Apply(result.Failure[[]string]("old error"))
	st.Apply(result.Loading[[]string]())

	st.Reset([]string{})
	snap := st.Snapshot()
	if snap.IsLoading || snap.ErrorMessage != "" || len(snap.Payload) != 0 {
		t.Fatalf("unexpected snapshot after reset: %#v", snap)
	}
}
