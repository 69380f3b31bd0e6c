package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"talenthub-api/internal/cache"
	"talenthub-api/internal/model"
	"talenthub-api/internal/repository"
)

// DirectoryService serves the talent directory with a short-TTL read
// cache in front of the user store. Freshly registered talents may lag
// one TTL behind; no invalidation is attempted.
type DirectoryService struct {
	users repository.UserRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewDirectoryService creates a directory service. cache may be nil to
// disable caching.
func NewDirectoryService(users repository.UserRepository, c cache.Cache, ttl time.Duration) *DirectoryService {
	if users == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DirectoryService{users: users, cache: c, ttl: ttl}
}

// directoryPage is the cached shape of one directory query result.
type directoryPage struct {
	Talents []model.User `json:"talents"`
	Total   int64        `json:"total"`
}

// Search lists talents matching the filter, newest-and-most-followed
// first, through the cache when one is configured.
func (s *DirectoryService) Search(ctx context.Context, filter model.TalentFilter) ([]model.User, int64, error) {
	if s.cache == nil {
		return s.users.SearchTalents(ctx, filter)
	}

	key := fmt.Sprintf("talents:q=%s:c=%s:l=%s:n=%d:o=%d",
		filter.Query, filter.Category, filter.Location, filter.Limit, filter.Offset)

	data, err := s.cache.GetOrSet(ctx, key, s.ttl, func() ([]byte, error) {
		talents, total, err := s.users.SearchTalents(ctx, filter)
		if err != nil {
			return nil, err
		}
		return json.Marshal(directoryPage{Talents: talents, Total: total})
	})
	if err != nil {
		return nil, 0, err
	}

	var page directoryPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cached directory page: %w", err)
	}
	return page.Talents, page.Total, nil
}

// GetTalent loads a single talent profile.
func (s *DirectoryService) GetTalent(ctx context.Context, talentID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, talentID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleTalent {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
