package handlers

import (
	"context"
	"io"
	"net/http"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const uploadField = "file"

type profileService interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*entities.PublicProfile, error)
}

type idDocumentService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, size int64, r io.Reader) (*entities.User, error)
	DocumentURL(ctx context.Context, userID uuid.UUID) (string, error)
}

// UserHandler serves profile and identity document endpoints
type UserHandler struct {
	profiles  profileService
	documents idDocumentService
}

// NewUserHandler creates a new user handler
func NewUserHandler(profiles profileService, documents idDocumentService) *UserHandler {
	return &UserHandler{profiles: profiles, documents: documents}
}

// UpdateProfile changes name, phone or bio
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword replaces the caller's password
// POST /api/v1/users/me/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.profiles.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

// GetPublicProfile returns another user's public profile
// GET /api/v1/users/:id
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profiles.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UploadIDDocument stores the caller's government ID scan
// POST /api/v1/users/me/id-document
func (h *UserHandler) UploadIDDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file could not be read"))
		return
	}
	defer file.Close()

	user, err := h.documents.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetIDDocument returns a short-lived link to the caller's ID document
// GET /api/v1/users/me/id-document
func (h *UserHandler) GetIDDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	url, err := h.documents.DocumentURL(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url})
}
