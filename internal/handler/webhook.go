package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"talenthub-api/internal/middleware"
	"talenthub-api/internal/model"
	"talenthub-api/internal/payment"
	"talenthub-api/internal/repository"
	"talenthub-api/internal/service"
	"talenthub-api/pkg/response"
)

// maxWebhookBody bounds a processor webhook payload.
const maxWebhookBody = 1 << 20

// WebhookHandler receives payment processor notifications and applies
// them to the investment ledger. Deliveries are deduplicated by
// (provider, event id) so processor retries are idempotent.
type WebhookHandler struct {
	verifier    payment.WebhookVerifier
	provider    string
	events      repository.PaymentEventRepository
	investments *service.InvestmentService
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(
	verifier payment.WebhookVerifier,
	provider string,
	events repository.PaymentEventRepository,
	investments *service.InvestmentService,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:    verifier,
		provider:    provider,
		events:      events,
		investments: investments,
	}
}

// HandleStripe handles POST /webhooks/stripe
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		response.Raw(w, http.StatusBadRequest, map[string]string{"error": "failed to read payload"})
		return
	}
	defer r.Body.Close()

	event, err := h.verifier.VerifyAndParse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrBadSignature) {
			log.Printf("[WebhookHandler] Signature verification failed rid=%s", middleware.GetRequestID(r.Context()))
			response.Raw(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
			return
		}
		response.Raw(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	fresh, err := h.events.Record(r.Context(), &model.PaymentEvent{
		Provider:  h.provider,
		EventID:   event.ID,
		EventType: event.Type,
		SessionID: event.SessionID,
	})
	if err != nil {
		log.Printf("[WebhookHandler] Failed to record event %s: %v", event.ID, err)
		response.Raw(w, http.StatusInternalServerError, map[string]string{"error": "failed to record event"})
		return
	}
	if !fresh {
		response.Raw(w, http.StatusOK, map[string]bool{"received": true, "duplicate": true})
		return
	}

	if err := h.investments.ConfirmFromEvent(r.Context(), event); err != nil {
		log.Printf("[WebhookHandler] Failed to apply event %s: %v", event.ID, err)
		// Drop the dedup record so the processor's retry is reprocessed.
		if ferr := h.events.Forget(r.Context(), h.provider, event.ID); ferr != nil {
			log.Printf("[WebhookHandler] Failed to forget event %s: %v", event.ID, ferr)
		}
		response.Raw(w, http.StatusInternalServerError, map[string]string{"error": "failed to apply event"})
		return
	}
	if err := h.events.MarkProcessed(r.Context(), h.provider, event.ID, ""); err != nil {
		log.Printf("[WebhookHandler] Failed to mark event %s processed: %v", event.ID, err)
	}

	response.Raw(w, http.StatusOK, map[string]bool{"received": true})
}
