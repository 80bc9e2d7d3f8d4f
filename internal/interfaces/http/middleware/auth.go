package middleware

import (
	"context"
	"net/http"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/jwt"
	"estate-market.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a session id issued at login
	SessionHeader = "X-Session-Id"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// AuthMiddleware requires a valid access token, taken from the session
// named by X-Session-Id or from the Authorization bearer header.
func AuthMiddleware(jwtService *jwt.JWTService, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, jwtService, sessions)
		if err != nil {
			logger.Debug(c.Request.Context(), "Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": unauthorizedMessage(err),
			})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid token
// is present and lets anonymous requests through otherwise.
func OptionalAuthMiddleware(jwtService *jwt.JWTService, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := authenticate(c, jwtService, sessions); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserRoleKey, claims.Role)

	ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID.String())
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	return c.GetString(UserRoleKey), c.GetString(UserRoleKey) != ""
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := GetUserRole(c)
	return role == string(entities.UserRoleAdmin)
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "User role not found",
			})
			return
		}

		for _, role := range roles {
			if userRole == string(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":  "PERMISSION_DENIED",
			"error": "Insufficient permissions",
		})
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
