package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is absent or its TTL has elapsed.
// An expired pending registration is indistinguishable from one that
// never existed.
var ErrNotFound = errors.New("cache: not found")

// PendingRegistration is the transient registration state held between
// /register and /verify-otp. The password is stored as a bcrypt hash,
// never in clear text.
type PendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"password_hash"`
	OTP          string `json:"otp"`
}

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func registrationKey(email string) string { return "otp_verification_" + email }
func revokedKey(jti string) string        { return "revoked_token_" + jti }
func checkoutKey(userID uint) string      { return fmt.Sprintf("checkout_lock_%d", userID) }

// PutPendingRegistration replaces any existing pending record for the email
// and resets its expiry to ttl.
func (s *Store) PutPendingRegistration(ctx context.Context, reg PendingRegistration, ttl time.Duration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, registrationKey(reg.Email), data, ttl).Err()
}

func (s *Store) GetPendingRegistration(ctx context.Context, email string) (*PendingRegistration, error) {
	data, err := s.rdb.Get(ctx, registrationKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var reg PendingRegistration
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Store) DeletePendingRegistration(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, registrationKey(email)).Err()
}

// RevokeToken denylists a token's jti until the token itself expires.
// Logout only revokes the token used for the current request.
func (s *Store) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *Store) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AcquireCheckoutLock serializes checkout per user so a double-submitted
// request cannot create two orders. Returns false when a checkout for the
// same user is already in flight.
func (s *Store) AcquireCheckoutLock(ctx context.Context, userID uint, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, checkoutKey(userID), "1", ttl).Result()
}

func (s *Store) ReleaseCheckoutLock(ctx context.Context, userID uint) {
	s.rdb.Del(ctx, checkoutKey(userID))
}
