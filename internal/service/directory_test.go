package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-api/internal/cache"
	"talenthub-api/internal/model"
	"talenthub-api/internal/repository"
)

// countingUserRepository counts directory queries hitting the store.
type countingUserRepository struct {
	repository.UserRepository
	searches int
}

func (r *countingUserRepository) SearchTalents(ctx context.Context, filter model.TalentFilter) ([]model.User, int64, error) {
	r.searches++
	return r.UserRepository.SearchTalents(ctx, filter)
}

func TestDirectorySearchUsesCache(t *testing.T) {
	db := openTestStore(t)
	users := &countingUserRepository{UserRepository: repository.NewSQLiteUserRepository(db)}
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })
	ctx := context.Background()

	seedTalent(t, users, "t1")
	seedTalent(t, users, "t2")

	svc := NewDirectoryService(users, mem, time.Minute)
	require.NotNil(t, svc)

	filter := model.TalentFilter{Limit: 10}
	talents, total, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, talents, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, users.searches)

	// Same filter within the TTL is served from cache.
	talents, total, err = svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, talents, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, users.searches)

	// A different filter is its own cache entry.
	_, _, err = svc.Search(ctx, model.TalentFilter{Category: "Music", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, users.searches)
}

func TestDirectorySearchWithoutCache(t *testing.T) {
	db := openTestStore(t)
	users := &countingUserRepository{UserRepository: repository.NewSQLiteUserRepository(db)}
	ctx := context.Background()
	seedTalent(t, users, "t1")

	svc := NewDirectoryService(users, nil, 0)
	require.NotNil(t, svc)

	_, _, err := svc.Search(ctx, model.TalentFilter{Limit: 10})
	require.NoError(t, err)
	_, _, err = svc.Search(ctx, model.TalentFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, users.searches)
}

func TestGetTalentRejectsOtherRoles(t *testing.T) {
	db := openTestStore(t)
	users := repository.NewSQLiteUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{
		ID:           "inv-1",
		Name:         "Ivan Investor",
		Email:        "ivan@example.com",
		PasswordHash: "x",
		Role:         model.RoleInvestor,
		CreatedAt:    time.Now().UTC(),
	}))

	svc := NewDirectoryService(users, nil, 0)

	_, err := svc.GetTalent(ctx, "inv-1")
	assert.True(t, IsNotFound(err))

	_, err = svc.GetTalent(ctx, "missing")
	assert.True(t, IsNotFound(err))
}
