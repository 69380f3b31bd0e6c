package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"talenthub-api/internal/middleware"
	"talenthub-api/internal/model"
	"talenthub-api/internal/service"
	"talenthub-api/pkg/apierror"
	"talenthub-api/pkg/response"
)

// InvestmentHandler handles investment HTTP requests. The checkout
// endpoint keeps its original wire shape: request {talentId, amount},
// response {url} on success and {error} on failure, with the bearer
// credential resolved inside the orchestration rather than by the
// shared auth middleware.
type InvestmentHandler struct {
	investments *service.InvestmentService
	sessions    middleware.SessionResolver
}

// NewInvestmentHandler creates a new investment handler.
func NewInvestmentHandler(investments *service.InvestmentService, sessions middleware.SessionResolver) *InvestmentHandler {
	return &InvestmentHandler{
		investments: investments,
		sessions:    sessions,
	}
}

// CheckoutRequest represents the checkout request body.
// Amount is in minor currency units (cents).
type CheckoutRequest struct {
	TalentID string `json:"talentId"`
	Amount   int64  `json:"amount"`
}

// CreateCheckout handles POST /investments/checkout
func (h *InvestmentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	identity, err := h.resolve(r, token)
	if err != nil {
		response.Raw(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Raw(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	defer r.Body.Close()

	inv, url, err := h.investments.CreateCheckout(r.Context(), identity.UserID, req.TalentID, req.Amount, r.Header.Get("Origin"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrTalentNotFound):
			response.Raw(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			// External-service failures are logged, never surfaced verbatim.
			log.Printf("[InvestmentHandler] Checkout failed for investor=%s rid=%s: %v",
				identity.UserID, middleware.GetRequestID(r.Context()), err)
			response.Raw(w, http.StatusInternalServerError, map[string]string{"error": "failed to create checkout"})
		}
		return
	}

	log.Printf("[InvestmentHandler] Checkout created: investment=%s session=%s", inv.ID, inv.SessionID)
	response.Raw(w, http.StatusOK, map[string]string{"url": url})
}

// ListMine handles GET /investments
func (h *InvestmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	investments, err := h.investments.ListByInvestor(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to list investments"))
		return
	}

	response.OK(w, investments)
}

func (h *InvestmentHandler) resolve(r *http.Request, token string) (*model.SessionData, error) {
	if token == "" || h.sessions == nil {
		return nil, errors.New("not authenticated")
	}
	return h.sessions.Resolve(r.Context(), token)
}
