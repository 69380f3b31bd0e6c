package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-api/internal/model"
	"talenthub-api/internal/payment"
	"talenthub-api/internal/repository"
	"talenthub-api/pkg/uid"
)

// fakeProvider issues deterministic checkout sessions and records the
// requests it saw.
type fakeProvider struct {
	requests []payment.CheckoutRequest
	fail     bool
	counter  int
}

func (p *fakeProvider) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	if p.fail {
		return nil, errors.New("processor unavailable")
	}
	p.requests = append(p.requests, req)
	p.counter++
	id := fmt.Sprintf("cs_test_%d", p.counter)
	return &payment.CheckoutSession{
		ID:  id,
		URL: "https://checkout.stripe.com/pay/" + id,
	}, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func openTestStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedTalent(t *testing.T, users repository.UserRepository, id string) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &model.User{
		ID:           id,
		Name:         "Tina Talent",
		Email:        id + "@example.com",
		PasswordHash: "x",
		Role:         model.RoleTalent,
		CreatedAt:    time.Now().UTC(),
	}))
}

func newCheckoutFixture(t *testing.T) (*InvestmentService, *fakeProvider, repository.InvestmentRepository, repository.UserRepository) {
	t.Helper()
	db := openTestStore(t)
	investments := repository.NewSQLiteInvestmentRepository(db)
	users := repository.NewSQLiteUserRepository(db)
	provider := &fakeProvider{}

	svc := NewInvestmentService(investments, users, provider, CheckoutConfig{
		Currency:       "usd",
		ProductName:    "Investment in Talent",
		SuccessPath:    "/investment-success",
		CancelPath:     "/investment-canceled",
		FallbackOrigin: "http://localhost:3000",
	})
	require.NotNil(t, svc)
	return svc, provider, investments, users
}

func TestCreateCheckoutSuccess(t *testing.T) {
	svc, provider, investments, users := newCheckoutFixture(t)
	ctx := context.Background()
	seedTalent(t, users, "t1")

	inv, url, err := svc.CreateCheckout(ctx, "investor-1", "t1", 5000, "https://app.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", url)
	assert.Equal(t, "cs_test_1", inv.SessionID)
	assert.Equal(t, model.InvestmentPending, inv.Status)

	// Exactly one ledger row, linked to the session the processor issued.
	stored, err := investments.GetBySessionID(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "investor-1", stored.InvestorID)
	assert.Equal(t, "t1", stored.TalentID)
	assert.Equal(t, int64(5000), stored.Amount)

	// Redirect targets derive from the caller's origin.
	require.Len(t, provider.requests, 1)
	assert.Equal(t, "https://app.example.com/investment-success", provider.requests[0].SuccessURL)
	assert.Equal(t, "https://app.example.com/investment-canceled", provider.requests[0].CancelURL)
}

func TestCreateCheckoutFallbackOrigin(t *testing.T) {
	svc, provider, _, users := newCheckoutFixture(t)
	seedTalent(t, users, "t1")

	_, _, err := svc.CreateCheckout(context.Background(), "investor-1", "t1", 100, "")
	require.NoError(t, err)
	require.Len(t, provider.requests, 1)
	assert.Equal(t, "http://localhost:3000/investment-success", provider.requests[0].SuccessURL)
}

func TestCreateCheckoutValidation(t *testing.T) {
	svc, provider, _, users := newCheckoutFixture(t)
	ctx := context.Background()
	seedTalent(t, users, "t1")

	_, _, err := svc.CreateCheckout(ctx, "investor-1", "t1", 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.CreateCheckout(ctx, "investor-1", "t1", -5, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.CreateCheckout(ctx, "investor-1", "", 100, "")
	assert.ErrorIs(t, err, ErrTalentNotFound)

	_, _, err = svc.CreateCheckout(ctx, "investor-1", "nobody", 100, "")
	assert.ErrorIs(t, err, ErrTalentNotFound)

	// No processor session for any rejected intent.
	assert.Empty(t, provider.requests)
}

func TestCreateCheckoutTargetMustBeTalent(t *testing.T) {
	svc, provider, _, users := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{
		ID:           "inv-2",
		Name:         "Ivan Investor",
		Email:        "ivan@example.com",
		PasswordHash: "x",
		Role:         model.RoleInvestor,
		CreatedAt:    time.Now().UTC(),
	}))

	_, _, err := svc.CreateCheckout(ctx, "investor-1", "inv-2", 100, "")
	assert.ErrorIs(t, err, ErrTalentNotFound)
	assert.Empty(t, provider.requests)
}

func TestCreateCheckoutProviderFailureLeavesNoRow(t *testing.T) {
	svc, provider, investments, users := newCheckoutFixture(t)
	ctx := context.Background()
	seedTalent(t, users, "t1")
	provider.fail = true

	_, _, err := svc.CreateCheckout(ctx, "investor-1", "t1", 100, "")
	require.Error(t, err)

	list, err := investments.ListByInvestor(ctx, "investor-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateCheckoutNoDeduplication(t *testing.T) {
	svc, _, investments, users := newCheckoutFixture(t)
	ctx := context.Background()
	seedTalent(t, users, "t1")

	// Two identical calls are two independent sessions and two rows.
	_, url1, err := svc.CreateCheckout(ctx, "investor-1", "t1", 5000, "")
	require.NoError(t, err)
	_, url2, err := svc.CreateCheckout(ctx, "investor-1", "t1", 5000, "")
	require.NoError(t, err)
	assert.NotEqual(t, url1, url2)

	list, err := investments.ListByInvestor(ctx, "investor-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestConfirmFromEvent(t *testing.T) {
	svc, _, investments, users := newCheckoutFixture(t)
	ctx := context.Background()
	seedTalent(t, users, "t1")

	inv, _, err := svc.CreateCheckout(ctx, "investor-1", "t1", 5000, "")
	require.NoError(t, err)

	ev := &payment.Event{ID: "evt_1", Type: "checkout.session.completed", SessionID: inv.SessionID}
	require.NoError(t, svc.ConfirmFromEvent(ctx, ev))

	stored, err := investments.GetBySessionID(ctx, inv.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.InvestmentConfirmed, stored.Status)

	// A replayed or late conflicting event does not move a settled row.
	require.NoError(t, svc.ConfirmFromEvent(ctx, &payment.Event{
		ID: "evt_2", Type: "checkout.session.expired", SessionID: inv.SessionID,
	}))
	stored, err = investments.GetBySessionID(ctx, inv.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.InvestmentConfirmed, stored.Status)
}

func TestConfirmFromEventUnknownTypeIgnored(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture(t)

	err := svc.ConfirmFromEvent(context.Background(), &payment.Event{
		ID: "evt_x", Type: "invoice.paid", SessionID: "cs_whatever",
	})
	assert.NoError(t, err)
}

func TestConfirmFromEventMissingSessionID(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture(t)

	err := svc.ConfirmFromEvent(context.Background(), &payment.Event{
		ID: "evt_y", Type: "checkout.session.completed",
	})
	assert.Error(t, err)
}

func TestExpireStale(t *testing.T) {
	db := openTestStore(t)
	investments := repository.NewSQLiteInvestmentRepository(db)
	users := repository.NewSQLiteUserRepository(db)
	svc := NewInvestmentService(investments, users, &fakeProvider{}, CheckoutConfig{})
	ctx := context.Background()

	stale := &model.Investment{
		ID:         uid.New(),
		InvestorID: "investor-1",
		TalentID:   "t1",
		Amount:     100,
		Currency:   "usd",
		SessionID:  "cs_stale",
		Status:     model.InvestmentPending,
		CreatedAt:  time.Now().UTC().Add(-48 * time.Hour),
		UpdatedAt:  time.Now().UTC().Add(-48 * time.Hour),
	}
	require.NoError(t, investments.Create(ctx, stale))

	expired, err := svc.ExpireStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
}
