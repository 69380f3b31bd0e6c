package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// ProviderStripe is the provider name recorded with webhook events.
const ProviderStripe = "stripe"

// StripeProvider implements Provider and WebhookVerifier against the
// Stripe API. The API client is instance state, not a package global,
// so it can be injected and faked.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider creates a Stripe provider with the given secret key.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// Name identifies the processor.
func (p *StripeProvider) Name() string { return ProviderStripe }

// CreateCheckoutSession creates a hosted Checkout Session in payment
// mode with a single card line item.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	log.Printf("[StripeProvider] Created checkout session %s (%d %s)", sess.ID, req.Amount, req.Currency)
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyAndParse checks the Stripe-Signature header and normalizes the
// event. Only checkout.session.* events carry a session identifier.
func (p *StripeProvider) VerifyAndParse(payload []byte, signatureHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	var sessionID string
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Raw, &object); err == nil {
		sessionID = object.ID
	}

	return &Event{
		ID:        event.ID,
		Type:      string(event.Type),
		SessionID: sessionID,
	}, nil
}

// Ensure StripeProvider implements both interfaces
var (
	_ Provider        = (*StripeProvider)(nil)
	_ WebhookVerifier = (*StripeProvider)(nil)
)
