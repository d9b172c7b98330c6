package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the part of Cache the limiter needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
}

// LoginLimiter locks an email after maxAttempts failed logins within window.
// The window starts at the first failure and is not extended by later ones.
type LoginLimiter struct {
	store       Store
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(store Store, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func loginKey(email string) string {
	return "login:failures:" + email
}

func (l *LoginLimiter) Locked(ctx context.Context, email string) (bool, error) {
	if l.maxAttempts <= 0 {
		return false, nil
	}

	value, err := l.store.Get(ctx, loginKey(email))
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	failures, err := strconv.Atoi(value)
	if err != nil {
		return false, err
	}

	return failures >= l.maxAttempts, nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	_, err := l.store.Incr(ctx, loginKey(email), l.window)
	return err
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.store.Delete(ctx, loginKey(email))
}
