package usecases

import (
	"context"
	"io"
	"time"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/redis"
)

// Notifier delivers outbound account notifications. Callers treat it as
// fire-and-forget: failures are logged, never returned to the client.
type Notifier interface {
	SendVerificationCode(ctx context.Context, user *entities.User, code string) error
	SendAccountRejected(ctx context.Context, user *entities.User, reason string) error
}

// ObjectStorage stores uploaded files by key.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// SessionStore keeps server-side sessions for clients that log in with
// useSession.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}
