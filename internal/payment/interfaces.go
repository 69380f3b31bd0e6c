package payment

import (
	"context"
	"errors"
)

// ErrBadSignature is returned when a webhook payload fails verification.
var ErrBadSignature = errors.New("invalid webhook signature")

// CheckoutRequest describes a hosted checkout session to create.
// Amount is in minor currency units.
type CheckoutRequest struct {
	Amount      int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the processor-issued handle for an intended payment.
type CheckoutSession struct {
	ID  string
	URL string
}

// Event is a normalized processor webhook notification.
type Event struct {
	ID        string
	Type      string
	SessionID string
}

// Provider creates hosted checkout sessions with the payment processor.
type Provider interface {
	// CreateCheckoutSession creates a time-bounded checkout session and
	// returns its identifier and redirect URL.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)

	// Name identifies the processor (webhook event bookkeeping).
	Name() string
}

// WebhookVerifier authenticates and parses processor webhook deliveries.
type WebhookVerifier interface {
	// VerifyAndParse checks the payload signature and returns the
	// normalized event. Returns ErrBadSignature on verification failure.
	VerifyAndParse(payload []byte, signatureHeader string) (*Event, error)
}
