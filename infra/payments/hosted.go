package payments

import "context"

// RetryOptions controls the hosted flow's own retry behaviour. This is SDK
// configuration passed through verbatim, not a retry performed by the core.
type RetryOptions struct {
	Enabled  bool `json:"enabled"`
	MaxCount int  `json:"max_count"`
}

// Prefill pre-populates the hosted checkout form.
type Prefill struct {
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// HostedOptions mirror the hosted checkout SDK's open parameters.
type HostedOptions struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Image          string       `json:"image"`
	Currency       string       `json:"currency"`
	OrderID        string       `json:"order_id"`
	AmountSubunits int64        `json:"amount"`
	Retry          RetryOptions `json:"retry"`
	Prefill        Prefill      `json:"prefill"`
}

// HostedCheckout is the hosted-flow SDK boundary. The SDK presents its own
// checkout UI and reports the outcome through done exactly once.
type HostedCheckout interface {
	Open(ctx context.Context, opts HostedOptions, done func(paymentID string, err error))
}
