// Package result implements the uniform asynchronous result protocol every
// collaborator call is adapted into. An operation yields a strictly ordered
// sequence of envelopes: Loading first, then exactly one of Success or
// Error, after which the channel closes.
package result

// Kind identifies the variant carried by an Envelope.
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Envelope is the tri-state outcome wrapper for one asynchronous operation.
type Envelope[T any] struct {
	Kind    Kind
	Value   T
	Message string
}

// Loading returns the non-terminal envelope emitted before dispatch.
func Loading[T any]() Envelope[T] {
	return Envelope[T]{Kind: KindLoading}
}

// Success returns the terminal envelope carrying the operation's value.
func Success[T any](v T) Envelope[T] {
	return Envelope[T]{Kind: KindSuccess, Value: v}
}

// Failure returns the terminal envelope carrying an error message.
func Failure[T any](msg string) Envelope[T] {
	return Envelope[T]{Kind: KindError, Message: msg}
}

// Terminal reports whether the envelope ends the operation.
func (e Envelope[T]) Terminal() bool {
	return e.Kind != KindLoading
}
