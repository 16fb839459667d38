package payments

import "context"

// SheetConfig configures the payment-sheet flow.
type SheetConfig struct {
	MerchantDisplayName         string
	AllowsDelayedPaymentMethods bool
}

// PaymentSheet is the payment-sheet SDK boundary. Present shows the sheet
// for a client secret obtained from the payment-intent endpoint and reports
// the outcome through done exactly once; a nil error means the payment
// completed.
type PaymentSheet interface {
	Present(ctx context.Context, clientSecret string, cfg SheetConfig, done func(err error))
}
