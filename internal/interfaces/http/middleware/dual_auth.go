package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"estate-market.backend/pkg/jwt"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errMissingCredentials = errors.New("authentication required (session or bearer token)")
	errBadAuthorization   = errors.New("invalid authorization format, use: Bearer <token>")
	errUnknownSession     = errors.New("session not found or expired")
	errSessionRefresh     = errors.New("session could not be refreshed")
)

// SessionStore resolves a session id to its stored tokens and keeps the
// session alive while it is in use.
type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	TouchSession(ctx context.Context, sessionID string, expiration time.Duration) (bool, error)
}

// Sessions is a session store with the idle lifetime applied on each
// authenticated request.
type Sessions struct {
	Store  SessionStore
	Expiry time.Duration
}

// NewSessions binds store to an idle expiry.
func NewSessions(store SessionStore, expiry time.Duration) *Sessions {
	return &Sessions{Store: store, Expiry: expiry}
}

// authenticate returns the caller's claims. A session id takes precedence
// over the Authorization header when both are sent.
func authenticate(c *gin.Context, jwtService *jwt.JWTService, sessions *Sessions) (*jwt.Claims, error) {
	if sessionID := strings.TrimSpace(c.GetHeader(SessionHeader)); sessionID != "" && sessions != nil {
		return sessions.resolve(c.Request.Context(), jwtService, sessionID)
	}

	token, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	return jwtService.ValidateToken(token)
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", errMissingCredentials
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", errBadAuthorization
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
	if token == "" {
		return "", errBadAuthorization
	}
	return token, nil
}

// resolve validates the session's access token, rotating the stored pair
// from its refresh token once the access token has expired, and slides the
// session expiry forward.
func (s *Sessions) resolve(ctx context.Context, jwtService *jwt.JWTService, sessionID string) (*jwt.Claims, error) {
	session, err := s.Store.GetSession(ctx, sessionID)
	if err != nil || session == nil || session.AccessToken == "" {
		return nil, errUnknownSession
	}

	claims, err := jwtService.ValidateToken(session.AccessToken)
	if errors.Is(err, jwt.ErrExpiredToken) {
		claims, err = s.rotate(ctx, jwtService, sessionID, session)
	}
	if err != nil {
		return nil, err
	}

	if s.Expiry > 0 {
		if _, err := s.Store.TouchSession(ctx, sessionID, s.Expiry); err != nil {
			logger.Warn(ctx, "Failed to extend session", zap.Error(err))
		}
	}
	return claims, nil
}

func (s *Sessions) rotate(ctx context.Context, jwtService *jwt.JWTService, sessionID string, session *redis.SessionData) (*jwt.Claims, error) {
	refresh, err := jwtService.ValidateToken(session.RefreshToken)
	if err != nil {
		return nil, err
	}

	pair, err := jwtService.GenerateTokenPair(refresh.UserID, refresh.Email, refresh.Role)
	if err != nil {
		logger.Warn(ctx, "Failed to mint session tokens", zap.Error(err))
		return nil, errSessionRefresh
	}
	session.AccessToken = pair.AccessToken
	session.RefreshToken = pair.RefreshToken
	if err := s.Store.CreateSession(ctx, sessionID, session, s.Expiry); err != nil {
		logger.Warn(ctx, "Failed to store refreshed session", zap.Error(err))
		return nil, errSessionRefresh
	}
	return jwtService.ValidateToken(pair.AccessToken)
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	default:
		return err.Error()
	}
}
