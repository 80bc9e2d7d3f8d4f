package handlers

import (
	"context"
	"net/http"
	"strings"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/interfaces/http/middleware"
	"estate-market.backend/internal/interfaces/http/response"
	"estate-market.backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	accessCookie  = "token"
	refreshCookie = "refresh_token"
)

type authService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) error
	ResendCode(ctx context.Context, email string) error
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase authService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email for the verification code.",
		"user":    user,
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if authResponse.SessionID == "" {
		c.SetCookie(accessCookie, authResponse.AccessToken, 3600*24, "/", "", false, true)
		c.SetCookie(refreshCookie, authResponse.RefreshToken, 3600*24*7, "/", "", false, true)
	}

	response.Success(c, http.StatusOK, authResponse)
}

// VerifyEmail confirms the account email with a six digit code
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input entities.VerifyEmailInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Email verified successfully",
	})
}

// ResendCode issues a fresh verification code
// POST /api/v1/auth/resend-code
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var input entities.ResendCodeInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.ResendCode(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Verification code sent",
	})
}

// RefreshToken handles token refresh. The token is read from the JSON body
// and falls back to the refresh cookie.
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var refreshToken string
	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			refreshToken = strings.TrimSpace(input.RefreshToken)
		}
	}
	if refreshToken == "" {
		if cookie, err := c.Cookie(refreshCookie); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	tokenPair, err := h.authUsecase.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(accessCookie, tokenPair.AccessToken, 3600*24, "/", "", false, true)
	c.SetCookie(refreshCookie, tokenPair.RefreshToken, 3600*24*7, "/", "", false, true)

	response.Success(c, http.StatusOK, tokenPair)
}

// Logout deletes the caller's session and clears auth cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := strings.TrimSpace(c.GetHeader(middleware.SessionHeader)); sessionID != "" {
		if err := h.authUsecase.Logout(c.Request.Context(), sessionID); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.SetCookie(accessCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// GetMe returns the authenticated user
// GET /api/v1/users/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
	})
}
