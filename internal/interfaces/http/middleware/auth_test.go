package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/jwt"
	"estate-market.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions map[string]*redis.SessionData

func (s stubSessions) GetSession(_ context.Context, id string) (*redis.SessionData, error) {
	if data, ok := s[id]; ok {
		return data, nil
	}
	return nil, errors.New("session not found")
}

func (s stubSessions) CreateSession(_ context.Context, id string, data *redis.SessionData, _ time.Duration) error {
	s[id] = data
	return nil
}

func (s stubSessions) TouchSession(_ context.Context, id string, _ time.Duration) (bool, error) {
	_, ok := s[id]
	return ok, nil
}

func newAuthRouter(jwtService *jwt.JWTService, sessions *Sessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtService, sessions), func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestAuthMiddleware_Bearer(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthRouter(jwtService, nil)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "buyer@example.com", string(entities.UserRoleBuyer))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer invalid", http.StatusUnauthorized},
		{"valid token", "Bearer " + pair.AccessToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(AuthorizationHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", -time.Minute, time.Hour)
	r := newAuthRouter(jwtService, nil)
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "a@example.com", "buyer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_Session(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "seller@example.com", "seller")
	require.NoError(t, err)

	sessions := stubSessions{"sess-1": {UserID: userID.String(), AccessToken: pair.AccessToken}}
	r := newAuthRouter(jwtService, NewSessions(sessions, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	// an unknown session does not fall back to the bearer header
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "sess-unknown")
	req.Header.Set(AuthorizationHeader, "Bearer "+pair.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func newRedisSessions(t *testing.T) (*redis.SessionStore, func(string) time.Duration) {
	t.Helper()
	srv := startMiniRedis(t)
	store, err := redis.NewSessionStore(strings.Repeat("cd", 32))
	require.NoError(t, err)
	return store, func(id string) time.Duration { return srv.TTL("session:" + id) }
}

func TestAuthMiddleware_SessionOutlivesAccessToken(t *testing.T) {
	expired := jwt.NewJWTService("secret", -time.Minute, time.Hour)
	userID := uuid.New()
	stale, err := expired.GenerateTokenPair(userID, "seller@example.com", "seller")
	require.NoError(t, err)

	store, ttl := newRedisSessions(t)
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, "sess-live", &redis.SessionData{
		UserID:       userID.String(),
		Role:         "seller",
		AccessToken:  stale.AccessToken,
		RefreshToken: stale.RefreshToken,
	}, 10*time.Minute))

	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthRouter(jwtService, NewSessions(store, 2*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "sess-live")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, userID.String(), w.Body.String())

	saved, err := store.GetSession(ctx, "sess-live")
	require.NoError(t, err)
	assert.NotEqual(t, stale.AccessToken, saved.AccessToken)
	claims, err := jwtService.ValidateToken(saved.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 2*time.Hour, ttl("sess-live"))

	// the rotated token keeps working on the next request
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_SessionSlidesExpiry(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "buyer@example.com", "buyer")
	require.NoError(t, err)

	store, ttl := newRedisSessions(t)
	require.NoError(t, store.CreateSession(context.Background(), "sess-idle", &redis.SessionData{
		UserID:       userID.String(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, time.Minute))

	r := newAuthRouter(jwtService, NewSessions(store, 30*time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "sess-idle")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30*time.Minute, ttl("sess-idle"))
}

func TestAuthMiddleware_SessionRefreshExpired(t *testing.T) {
	expired := jwt.NewJWTService("secret", -time.Minute, -time.Minute)
	pair, err := expired.GenerateTokenPair(uuid.New(), "a@example.com", "buyer")
	require.NoError(t, err)

	sessions := stubSessions{"sess-old": {AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}}
	r := newAuthRouter(jwt.NewJWTService("secret", time.Minute, time.Hour), NewSessions(sessions, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "sess-old")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
	assert.Equal(t, pair.AccessToken, sessions["sess-old"].AccessToken)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := gin.New()
	r.GET("/p", OptionalAuthMiddleware(jwtService, nil), func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.String())
	})

	for _, header := range []string{"", "Bearer broken"} {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		if header != "" {
			req.Header.Set(AuthorizationHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "anonymous", w.Body.String())
	}

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "a@example.com", "buyer")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(AuthorizationHeader, "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	build := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set(UserRoleKey, role)
			}
			c.Next()
		})
		r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		r.GET("/listers", RequireRole(entities.UserRoleSeller, entities.UserRoleAgent), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	cases := []struct {
		role   string
		path   string
		status int
	}{
		{"", "/admin", http.StatusUnauthorized},
		{"buyer", "/admin", http.StatusForbidden},
		{"admin", "/admin", http.StatusNoContent},
		{"agent", "/listers", http.StatusNoContent},
		{"buyer", "/listers", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		build(tc.role).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.role, tc.path)
	}
}

func TestIsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, IsAdmin(c))
	c.Set(UserRoleKey, "admin")
	assert.True(t, IsAdmin(c))
}
