package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
)

const (
	pendingKeyPrefix     = "pre2fa:"
	pendingUserKeyPrefix = "pre2fa_user:"
)

// PendingVerificationRepo keeps pending login verifications in Redis,
// keyed by the opaque login token handed to the client. A secondary key per
// user points at that user's current token, so saving a record for a user
// drops whatever record they had before: at most one code per user is live.
// Redis TTL expires stale records on its own.
type PendingVerificationRepo struct {
	client redis.UniversalClient
	ctx    context.Context
}

func NewPendingVerificationRepo(client redis.UniversalClient) (*PendingVerificationRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for PendingVerificationRepo")
	}
	return &PendingVerificationRepo{
		client: client,
		ctx:    context.Background(),
	}, nil
}

func userKey(userID uint) string {
	return pendingUserKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func (r *PendingVerificationRepo) Save(token string, pending *entity.PendingVerification, ttl time.Duration) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending verification: %w", err)
	}

	// Drop the user's previous record so only the latest code validates.
	prev, err := r.client.Get(r.ctx, userKey(pending.UserID)).Result()
	if err == nil && prev != token {
		r.client.Del(r.ctx, pendingKeyPrefix+prev)
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to look up previous pending verification: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(r.ctx, pendingKeyPrefix+token, data, ttl)
	pipe.Set(r.ctx, userKey(pending.UserID), token, ttl)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("failed to store pending verification: %w", err)
	}
	return nil
}

func (r *PendingVerificationRepo) Get(token string) (*entity.PendingVerification, error) {
	data, err := r.client.Get(r.ctx, pendingKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending verification: %w", err)
	}
	var pending entity.PendingVerification
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending verification: %w", err)
	}
	return &pending, nil
}

func (r *PendingVerificationRepo) Delete(token string) error {
	return r.client.Del(r.ctx, pendingKeyPrefix+token).Err()
}

func (r *PendingVerificationRepo) DeleteByUserID(userID uint) error {
	token, err := r.client.Get(r.ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to look up pending verification for user: %w", err)
	}
	return r.client.Del(r.ctx, pendingKeyPrefix+token, userKey(userID)).Err()
}
