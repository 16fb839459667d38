package result

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestFanOutEmptyKeysShortCircuits(t *testing.T) {
	var dispatched atomic.Int32
	c := FanOut(context.Background(), nil, func(ctx context.Context, id string) (string, error) {
		dispatched.Add(1)
		return id, nil
	})
	envs := collect(t, c)
	if len(envs) != 2 || envs[0].Kind != KindLoading || envs[1].Kind != KindSuccess {
		t.Fatalf("unexpected sequence: %#v", envs)
	}
	if len(envs[1].Value) != 0 {
		t.Fatalf("expected empty aggregate, got %v", envs[1].Value)
	}
	if dispatched.Load() != 0 {
		t.Fatalf("expected no dispatches, got %d", dispatched.Load())
	}
}

func TestFanOutPreservesKeyOrder(t *testing.T) {
	keys := []string{"c", "a", "b"}
	c := FanOut(context.Background(), keys, func(ctx context.Context, id string) (string, error) {
		// Finish out of order.
		if id == "c" {
			time.Sleep(20 * time.Millisecond)
		}
		return "v:" + id, nil
	})
	envs := collect(t, c)
	if envs[1].Kind != KindSuccess {
		t.Fatalf("expected success, got %#v", envs[1])
	}
	want := []string{"v:c", "v:a", "v:b"}
	for i, v := range envs[1].Value {
		if v != want[i] {
			t.Fatalf("aggregate out of order: got %v, want %v", envs[1].Value, want)
		}
	}
}

func TestFanOutFirstFailureWins(t *testing.T) {
	keys := []int{1, 2, 3, 4}
	c := FanOut(context.Background(), keys, func(ctx context.Context, k int) (int, error) {
		if k == 2 {
			return 0, fmt.Errorf("lookup %d failed", k)
		}
		return k * 10, nil
	})
	envs := collect(t, c)
	if len(envs) != 2 {
		t.Fatalf("expected exactly one terminal envelope, got %d total", len(envs))
	}
	if envs[1].Kind != KindError || envs[1].Message != "lookup 2 failed" {
		t.Fatalf("unexpected terminal envelope: %#v", envs[1])
	}
}

func TestFanOutDropsAggregateAfterCancel(t *testing.T) {
	for i := 0; i < 200; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		gate := make(chan struct{})
		c := FanOut(ctx, []int{1, 2}, func(ctx context.Context, k int) (int, error) {
			<-gate
			return k, nil
		})
		if env := <-c.Events(); env.Kind != KindLoading {
			t.Fatalf("run %d: expected loading first, got %v", i, env.Kind)
		}
		cancel()
		close(gate)
		for env := range c.Events() {
			if env.Terminal() {
				t.Fatalf("run %d: aggregate delivered after cancel: %#v", i, env)
			}
		}
	}
}

func TestFanOutCancelsSiblingsOnFailure(t *testing.T) {
	var cancelled atomic.Int32
	keys := []int{1, 2, 3}
	c := FanOut(context.Background(), keys, func(ctx context.Context, k int) (int, error) {
		if k == 1 {
			return 0, fmt.Errorf("boom")
		}
		select {
		case <-ctx.Done():
			cancelled.Add(1)
			return 0, ctx.Err()
		case <-time.After(2 * time.Second):
			return k, nil
		}
	})
	envs := collect(t, c)
	if envs[1].Kind != KindError {
		t.Fatalf("expected error, got %#v", envs[1])
	}
	if cancelled.Load() != 2 {
		t.Fatalf("expected both siblings cancelled, got %d", cancelled.Load())
	}
}
