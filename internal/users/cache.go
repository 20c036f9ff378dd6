package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// cachedRepository is a read-through cache in front of the postgres
// repository. Only the fetch layer is cached; recommendation scores
// themselves are always computed fresh. Writes invalidate the entry,
// and joins/leaves from the activities side simply age out, so a
// user's cached joined-activity list can lag by at most the TTL.
type cachedRepository struct {
	repo  Repository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedRepository wraps a repository with a redis cache for user
// reads.
func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration) Repository {
	return &cachedRepository{
		repo:  repo,
		redis: client,
		ttl:   ttl,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("users:record:%d", id)
}

func (c *cachedRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	cached, err := c.redis.Get(ctx, userCacheKey(id)).Bytes()
	if err == nil {
		var user User
		if err := json.Unmarshal(cached, &user); err == nil {
			return &user, nil
		}
		// Corrupt entry, fall through to the database
	}

	user, err := c.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		// Best effort; a failed cache write must not fail the read
		c.redis.Set(ctx, userCacheKey(id), payload, c.ttl)
	}

	return user, nil
}

func (c *cachedRepository) CreateUser(ctx context.Context, user *User) error {
	return c.repo.CreateUser(ctx, user)
}

func (c *cachedRepository) UpdateProfile(ctx context.Context, user *User) error {
	if err := c.repo.UpdateProfile(ctx, user); err != nil {
		return err
	}
	c.redis.Del(ctx, userCacheKey(user.ID))
	return nil
}

func (c *cachedRepository) SaveQuestionnaire(ctx context.Context, userID int64, prefs *Preferences) error {
	if err := c.repo.SaveQuestionnaire(ctx, userID, prefs); err != nil {
		return err
	}
	c.redis.Del(ctx, userCacheKey(userID))
	return nil
}

func (c *cachedRepository) ListMatchCandidates(ctx context.Context, excludeUserID int64) ([]*User, error) {
	// Candidate lists change with every questionnaire submission and
	// are per-requester; not worth caching
	return c.repo.ListMatchCandidates(ctx, excludeUserID)
}
