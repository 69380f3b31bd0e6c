package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talenthub-api/internal/model"
	"talenthub-api/internal/payment"
	"talenthub-api/internal/repository"
	"talenthub-api/pkg/uid"
)

// ErrInvalidAmount is returned for a non-positive investment amount.
var ErrInvalidAmount = errors.New("amount must be a positive number of minor currency units")

// ErrTalentNotFound is returned when the target is missing or not a talent.
var ErrTalentNotFound = errors.New("talent not found")

// CheckoutConfig carries the processor-facing settings for checkouts.
type CheckoutConfig struct {
	Currency       string
	ProductName    string
	SuccessPath    string
	CancelPath     string
	FallbackOrigin string
}

// InvestmentService orchestrates the checkout flow: validate the intent,
// create a processor session, persist the pending ledger row, and later
// move it on webhook confirmation.
type InvestmentService struct {
	investments repository.InvestmentRepository
	users       repository.UserRepository
	provider    payment.Provider
	cfg         CheckoutConfig
}

// NewInvestmentService creates an investment service.
// Returns nil if any required dependency is missing.
func NewInvestmentService(
	investments repository.InvestmentRepository,
	users repository.UserRepository,
	provider payment.Provider,
	cfg CheckoutConfig,
) *InvestmentService {
	if investments == nil || users == nil || provider == nil {
		return nil
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &InvestmentService{
		investments: investments,
		users:       users,
		provider:    provider,
		cfg:         cfg,
	}
}

// CreateCheckout runs the single-attempt checkout orchestration. The
// session is created first, the ledger row second; a failure between the
// two leaves an uncancelled session at the processor and is reported as
// a plain failure to the caller. No retries, no dedup of identical calls.
func (s *InvestmentService) CreateCheckout(ctx context.Context, investorID, talentID string, amount int64, origin string) (*model.Investment, string, error) {
	if amount <= 0 {
		return nil, "", ErrInvalidAmount
	}
	if talentID == "" {
		return nil, "", ErrTalentNotFound
	}

	talent, err := s.users.GetByID(ctx, talentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrTalentNotFound
		}
		return nil, "", fmt.Errorf("failed to look up talent: %w", err)
	}
	if talent.Role != model.RoleTalent {
		return nil, "", ErrTalentNotFound
	}

	if origin == "" {
		origin = s.cfg.FallbackOrigin
	}
	origin = strings.TrimSuffix(origin, "/")

	sess, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Amount:      amount,
		Currency:    s.cfg.Currency,
		ProductName: s.cfg.ProductName,
		SuccessURL:  origin + s.cfg.SuccessPath,
		CancelURL:   origin + s.cfg.CancelPath,
	})
	if err != nil {
		return nil, "", fmt.Errorf("checkout session creation failed: %w", err)
	}

	now := time.Now().UTC()
	inv := &model.Investment{
		ID:         uid.New(),
		InvestorID: investorID,
		TalentID:   talentID,
		Amount:     amount,
		Currency:   s.cfg.Currency,
		SessionID:  sess.ID,
		Status:     model.InvestmentPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.investments.Create(ctx, inv); err != nil {
		// The processor session is not cancelled here; the pending
		// sweeper and session expiry bound the damage.
		log.Printf("[InvestmentService] Session %s created but ledger insert failed: %v", sess.ID, err)
		return nil, "", fmt.Errorf("failed to record investment: %w", err)
	}

	return inv, sess.URL, nil
}

// ConfirmFromEvent applies a processor webhook to the ledger. Unknown
// event types are acknowledged without effect. The pending-only
// transition makes replayed events no-ops.
func (s *InvestmentService) ConfirmFromEvent(ctx context.Context, ev *payment.Event) error {
	var to model.InvestmentStatus
	switch ev.Type {
	case "checkout.session.completed":
		to = model.InvestmentConfirmed
	case "checkout.session.expired":
		to = model.InvestmentExpired
	case "checkout.session.async_payment_failed":
		to = model.InvestmentFailed
	default:
		return nil
	}

	if ev.SessionID == "" {
		return fmt.Errorf("event %s carries no session id", ev.ID)
	}

	moved, err := s.investments.TransitionBySession(ctx, ev.SessionID, to)
	if err != nil {
		return err
	}
	if moved {
		log.Printf("[InvestmentService] Session %s -> %s (event %s)", ev.SessionID, to, ev.ID)
	} else {
		log.Printf("[InvestmentService] Session %s already settled, event %s ignored", ev.SessionID, ev.ID)
	}
	return nil
}

// ListByInvestor lists an investor's investments, newest first.
func (s *InvestmentService) ListByInvestor(ctx context.Context, investorID string) ([]model.Investment, error) {
	return s.investments.ListByInvestor(ctx, investorID)
}

// SummarizeTalent aggregates confirmed investments for a talent.
func (s *InvestmentService) SummarizeTalent(ctx context.Context, talentID string) (*model.InvestmentSummary, error) {
	summary, err := s.investments.SummarizeTalent(ctx, talentID)
	if err != nil {
		return nil, err
	}
	if summary.Currency == "" {
		summary.Currency = s.cfg.Currency
	}
	return summary, nil
}

// ExpireStale marks pending investments older than maxAge as expired.
func (s *InvestmentService) ExpireStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.investments.ExpirePending(ctx, maxAge)
}
