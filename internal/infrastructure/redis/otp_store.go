package redisinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "wcontent:otp:"

// consumeScript deletes the key only when it holds the submitted code.
// Returns 1 on a consumed match, 0 otherwise.
var consumeScript = redis.NewScript(`
	local stored = redis.call('GET', KEYS[1])
	if not stored then
		return 0
	end
	if stored ~= ARGV[1] then
		return 0
	end
	redis.call('DEL', KEYS[1])
	return 1
`)

// OTPStore keeps pending codes in Redis so every API instance sees the same state.
// Expiry is delegated to the key TTL.
type OTPStore struct {
	client redis.UniversalClient
}

func NewOTPStore(client redis.UniversalClient) *OTPStore {
	return &OTPStore{client: client}
}

func (s *OTPStore) key(identity string) string {
	return otpKeyPrefix + identity
}

func (s *OTPStore) Put(ctx context.Context, identity, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(identity), code, ttl).Err(); err != nil {
		return fmt.Errorf("redis otp: put failed: %w", err)
	}
	return nil
}

func (s *OTPStore) Validate(ctx context.Context, identity, code string) (bool, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{s.key(identity)}, code).Int64()
	if err != nil {
		return false, fmt.Errorf("redis otp: validate failed: %w", err)
	}
	return res == 1, nil
}
