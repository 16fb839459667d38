package result

import "context"

// Channel carries the envelope sequence for one operation. The producer
// closes the underlying channel after the terminal envelope; consumers
// range over Events until it closes.
type Channel[T any] struct {
	events chan Envelope[T]
}

// Events returns the envelope stream.
func (c *Channel[T]) Events() <-chan Envelope[T] {
	return c.events
}

// Run adapts a single collaborator call into a result channel. Loading is
// queued before fn is dispatched, so a consumer always observes it first.
// When ctx is cancelled the terminal envelope is dropped rather than
// delivered late; the collaborator call itself is expected to honour ctx.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Channel[T] {
	c := &Channel[T]{events: make(chan Envelope[T], 2)}
	c.events <- Loading[T]()
	go func() {
		defer close(c.events)
		v, err := fn(ctx)
		var env Envelope[T]
		if err != nil {
			env = Failure[T](err.Error())
		} else {
			env = Success(v)
		}
		// A bare select races when the buffer and ctx.Done are both
		// ready; the explicit check keeps the drop deterministic.
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
		case c.events <- env:
		}
	}()
	return c
}

// Fail returns a channel that emits Loading then Error without dispatching
// any collaborator call. Used for precondition violations, e.g. an action
// that requires a signed-in user.
func Fail[T any](msg string) *Channel[T] {
	c := &Channel[T]{events: make(chan Envelope[T], 2)}
	c.events <- Loading[T]()
	c.events <- Failure[T](msg)
	close(c.events)
	return c
}
