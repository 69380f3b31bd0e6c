package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-api/internal/model"
	"talenthub-api/pkg/uid"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testInvestment(sessionID string) *model.Investment {
	now := time.Now().UTC()
	return &model.Investment{
		ID:         uid.New(),
		InvestorID: "investor-1",
		TalentID:   "t1",
		Amount:     5000,
		Currency:   "usd",
		SessionID:  sessionID,
		Status:     model.InvestmentPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestInvestmentCreateAndGetBySession(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	inv := testInvestment("cs_test_123")
	require.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetBySessionID(ctx, "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
	assert.Equal(t, int64(5000), got.Amount)
	assert.Equal(t, model.InvestmentPending, got.Status)

	_, err = repo.GetBySessionID(ctx, "cs_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvestmentSessionIDUnique(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testInvestment("cs_dup")))
	assert.Error(t, repo.Create(ctx, testInvestment("cs_dup")))
}

func TestInvestmentTransitionBySession(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testInvestment("cs_1")))

	moved, err := repo.TransitionBySession(ctx, "cs_1", model.InvestmentConfirmed)
	require.NoError(t, err)
	assert.True(t, moved)

	// Replay is a no-op: the row is no longer pending.
	moved, err = repo.TransitionBySession(ctx, "cs_1", model.InvestmentFailed)
	require.NoError(t, err)
	assert.False(t, moved)

	got, err := repo.GetBySessionID(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, model.InvestmentConfirmed, got.Status)
}

func TestInvestmentListByInvestorNewestFirst(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	older := testInvestment("cs_old")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testInvestment("cs_new")

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.ListByInvestor(ctx, "investor-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cs_new", list[0].SessionID)
	assert.Equal(t, "cs_old", list[1].SessionID)
}

func TestInvestmentSummarizeTalentOnlyConfirmed(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	confirmed := testInvestment("cs_a")
	require.NoError(t, repo.Create(ctx, confirmed))
	_, err := repo.TransitionBySession(ctx, "cs_a", model.InvestmentConfirmed)
	require.NoError(t, err)

	pending := testInvestment("cs_b")
	pending.Amount = 999
	require.NoError(t, repo.Create(ctx, pending))

	summary, err := repo.SummarizeTalent(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), summary.Total)
	assert.Equal(t, int64(1), summary.Count)
}

func TestInvestmentExpirePending(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	stale := testInvestment("cs_stale")
	stale.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, stale))

	fresh := testInvestment("cs_fresh")
	require.NoError(t, repo.Create(ctx, fresh))

	expired, err := repo.ExpirePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	got, err := repo.GetBySessionID(ctx, "cs_stale")
	require.NoError(t, err)
	assert.Equal(t, model.InvestmentExpired, got.Status)

	got, err = repo.GetBySessionID(ctx, "cs_fresh")
	require.NoError(t, err)
	assert.Equal(t, model.InvestmentPending, got.Status)
}

func TestInvestmentCountByStatus(t *testing.T) {
	repo := NewSQLiteInvestmentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testInvestment("cs_x")))
	require.NoError(t, repo.Create(ctx, testInvestment("cs_y")))
	_, err := repo.TransitionBySession(ctx, "cs_y", model.InvestmentConfirmed)
	require.NoError(t, err)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["pending"])
	assert.Equal(t, int64(1), counts["confirmed"])
}
