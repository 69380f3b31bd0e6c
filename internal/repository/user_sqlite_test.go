package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-api/internal/model"
	"talenthub-api/pkg/uid"
)

func testUser(email string, role model.Role) *model.User {
	return &model.User{
		ID:           uid.New(),
		Name:         "Ada Example",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUserCreateAndGet(t *testing.T) {
	repo := NewSQLiteUserRepository(openTestDB(t))
	ctx := context.Background()

	u := testUser("ada@example.com", model.RoleTalent)
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, model.RoleTalent, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := NewSQLiteUserRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("dup@example.com", model.RoleInvestor)))
	err := repo.Create(ctx, testUser("dup@example.com", model.RoleTalent))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSearchTalentsFilters(t *testing.T) {
	repo := NewSQLiteUserRepository(openTestDB(t))
	ctx := context.Background()

	dancer := testUser("dancer@example.com", model.RoleTalent)
	dancer.Name = "Dana Dancer"
	dancer.Category = "dance"
	dancer.Location = "Berlin"
	dancer.Followers = 100
	require.NoError(t, repo.Create(ctx, dancer))

	singer := testUser("singer@example.com", model.RoleTalent)
	singer.Name = "Sam Singer"
	singer.Category = "music"
	singer.Followers = 500
	require.NoError(t, repo.Create(ctx, singer))

	// Investors never show up in the directory.
	require.NoError(t, repo.Create(ctx, testUser("vc@example.com", model.RoleInvestor)))

	all, total, err := repo.SearchTalents(ctx, model.TalentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, all, 2)
	// Ordered by followers descending.
	assert.Equal(t, "Sam Singer", all[0].Name)

	byCategory, total, err := repo.SearchTalents(ctx, model.TalentFilter{Category: "dance"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Dana Dancer", byCategory[0].Name)

	byQuery, _, err := repo.SearchTalents(ctx, model.TalentFilter{Query: "Sam"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Sam Singer", byQuery[0].Name)

	byLocation, _, err := repo.SearchTalents(ctx, model.TalentFilter{Location: "Berl"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Dana Dancer", byLocation[0].Name)
}

func TestSearchTalentsPagination(t *testing.T) {
	repo := NewSQLiteUserRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		u := testUser(uid.New()+"@example.com", model.RoleTalent)
		u.Followers = int64(i)
		require.NoError(t, repo.Create(ctx, u))
	}

	page, total, err := repo.SearchTalents(ctx, model.TalentFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}
