package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

const resetCodeTTL = 10 * time.Minute

// ResetCodeStore keeps password-reset codes in Redis with a short TTL.
// Key format: pwreset:<phone>
type ResetCodeStore struct {
	client *redis.Client
}

func NewResetCodeStore(client *redis.Client) *ResetCodeStore {
	return &ResetCodeStore{client: client}
}

func (s *ResetCodeStore) Put(ctx context.Context, phone, code string) error {
	return s.client.Set(ctx, s.key(phone), code, resetCodeTTL).Err()
}

func (s *ResetCodeStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, s.key(phone)).Result()
	if err == redis.Nil {
		return "", domain.ErrResetCodeInvalid
	}
	if err != nil {
		return "", fmt.Errorf("get reset code: %w", err)
	}
	return code, nil
}

func (s *ResetCodeStore) Del(ctx context.Context, phone string) error {
	return s.client.Del(ctx, s.key(phone)).Err()
}

func (s *ResetCodeStore) key(phone string) string {
	return "pwreset:" + phone
}
