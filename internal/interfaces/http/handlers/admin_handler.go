package handlers

import (
	"context"
	"net/http"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/internal/interfaces/http/response"
	"estate-market.backend/internal/usecases"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type adminService interface {
	VerifyUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	ApproveUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	VerifyAdmin(ctx context.Context, id uuid.UUID) (*entities.User, error)
	RejectUser(ctx context.Context, adminID, id uuid.UUID, reason string) error
	ListUsers(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	ListPendingApproval(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	ListIDPending(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	ListUnverified(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	ListUnverifiedAdmins(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	GetUserDetails(ctx context.Context, id uuid.UUID) (*entities.User, error)
	Stats(ctx context.Context) (*usecases.UserStats, error)
}

type documentLinker interface {
	DocumentURL(ctx context.Context, userID uuid.UUID) (string, error)
}

// AdminHandler handles account verification and moderation endpoints
type AdminHandler struct {
	adminUsecase adminService
	documents    documentLinker
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase adminService, documents documentLinker) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, documents: documents}
}

type userLister func(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error)

func (h *AdminHandler) list(c *gin.Context, fn userLister) {
	pagination := paginationFromQuery(c)
	users, total, err := fn(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, users, total, pagination)
}

// ListUsers lists all users with optional search and role filters
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := entities.UserFilter{
		Search: c.Query("search"),
		Role:   entities.ParseUserRole(c.Query("role")),
	}
	h.list(c, func(ctx context.Context, p utils.PaginationParams) ([]*entities.User, int64, error) {
		return h.adminUsecase.ListUsers(ctx, filter, p)
	})
}

// ListPendingApproval lists accounts awaiting approval
// GET /api/v1/admin/users/pending-approval
func (h *AdminHandler) ListPendingApproval(c *gin.Context) {
	h.list(c, h.adminUsecase.ListPendingApproval)
}

// ListIDPending lists accounts with an uploaded, unverified ID document
// GET /api/v1/admin/users/id-pending
func (h *AdminHandler) ListIDPending(c *gin.Context) {
	h.list(c, h.adminUsecase.ListIDPending)
}

// ListUnverified lists accounts that are not fully verified
// GET /api/v1/admin/users/unverified
func (h *AdminHandler) ListUnverified(c *gin.Context) {
	h.list(c, h.adminUsecase.ListUnverified)
}

// ListUnverifiedAdmins lists admin accounts awaiting verification
// GET /api/v1/admin/admins/unverified
func (h *AdminHandler) ListUnverifiedAdmins(c *gin.Context) {
	h.list(c, h.adminUsecase.ListUnverifiedAdmins)
}

// GetUser returns full account details
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	user, err := h.adminUsecase.GetUserDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

type userTransition func(ctx context.Context, id uuid.UUID) (*entities.User, error)

func (h *AdminHandler) transition(c *gin.Context, fn userTransition) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	user, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// VerifyUser marks every status of the account terminal
// POST /api/v1/admin/users/:id/verify
func (h *AdminHandler) VerifyUser(c *gin.Context) {
	h.transition(c, h.adminUsecase.VerifyUser)
}

// ApproveUser approves an account
// POST /api/v1/admin/users/:id/approve
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	h.transition(c, h.adminUsecase.ApproveUser)
}

// VerifyAdmin verifies another admin account
// POST /api/v1/admin/admins/:id/verify
func (h *AdminHandler) VerifyAdmin(c *gin.Context) {
	h.transition(c, h.adminUsecase.VerifyAdmin)
}

// RejectUser deletes an account and notifies its owner
// POST /api/v1/admin/users/:id/reject
func (h *AdminHandler) RejectUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input entities.RejectUserInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}

	if err := h.adminUsecase.RejectUser(c.Request.Context(), adminID, id, input.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User rejected"})
}

// GetIDDocument returns a short-lived link to a user's ID document
// GET /api/v1/admin/users/:id/id-document
func (h *AdminHandler) GetIDDocument(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	url, err := h.documents.DocumentURL(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url})
}

// Stats returns account counts per role
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
