package repository

import (
	"context"
	"errors"
	"time"

	"talenthub-api/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when registering an email that is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines user/profile data access methods.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateEmail on a taken email.
	Create(ctx context.Context, u *model.User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// SearchTalents lists talent-role users matching the filter,
	// ordered by followers descending then newest first.
	SearchTalents(ctx context.Context, filter model.TalentFilter) ([]model.User, int64, error)
}

// InvestmentRepository defines investment ledger data access methods.
type InvestmentRepository interface {
	// Create inserts a new investment row (status pending).
	Create(ctx context.Context, inv *model.Investment) error

	// GetBySessionID retrieves the investment linked to a checkout session.
	GetBySessionID(ctx context.Context, sessionID string) (*model.Investment, error)

	// TransitionBySession moves a pending investment keyed by session ID
	// to the given status. Returns false if no pending row matched, which
	// makes replayed webhook deliveries no-ops.
	TransitionBySession(ctx context.Context, sessionID string, to model.InvestmentStatus) (bool, error)

	// ListByInvestor lists an investor's investments, newest first.
	ListByInvestor(ctx context.Context, investorID string) ([]model.Investment, error)

	// SummarizeTalent aggregates confirmed investments for a talent.
	SummarizeTalent(ctx context.Context, talentID string) (*model.InvestmentSummary, error)

	// ExpirePending marks pending rows older than maxAge as expired and
	// returns how many were touched.
	ExpirePending(ctx context.Context, maxAge time.Duration) (int64, error)

	// CountByStatus returns row counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// ShowcaseRepository defines showcase data access methods.
type ShowcaseRepository interface {
	// Create inserts a new showcase row.
	Create(ctx context.Context, s *model.Showcase) error

	// ListByOwner lists an owner's showcases, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Showcase, error)

	// Count returns the total number of showcases.
	Count(ctx context.Context) (int64, error)
}

// PaymentEventRepository defines webhook event bookkeeping methods.
type PaymentEventRepository interface {
	// Record inserts a webhook delivery. Returns false when the
	// (provider, event id) pair was already seen.
	Record(ctx context.Context, ev *model.PaymentEvent) (bool, error)

	// MarkProcessed stamps a recorded event as handled, with an optional
	// processing error message.
	MarkProcessed(ctx context.Context, provider, eventID, processingError string) error

	// Forget removes a recorded event so a processor retry can be
	// processed again after a failed apply.
	Forget(ctx context.Context, provider, eventID string) error
}
