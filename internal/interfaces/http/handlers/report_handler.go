package handlers

import (
	"context"
	"net/http"
	"strings"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/internal/interfaces/http/response"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type reportService interface {
	Create(ctx context.Context, reporterID uuid.UUID, input *entities.CreateReportInput) (*entities.Report, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Report, error)
	List(ctx context.Context, filter entities.ReportFilter, pagination utils.PaginationParams) ([]*entities.Report, int64, error)
	ListPending(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Report, int64, error)
	ForUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Report, int64, error)
	ForProperty(ctx context.Context, propertyID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Report, int64, error)
	MarkReviewed(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error)
	Resolve(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error)
	Dismiss(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error)
}

// ReportHandler handles abuse reports and their moderation
type ReportHandler struct {
	reports reportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create files a report against a user or a listing
// POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	reporterID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.CreateReportInput
	if !bindJSON(c, &input) {
		return
	}
	input.Reason = entities.ReportReason(strings.ToUpper(string(input.Reason)))

	report, err := h.reports.Create(c.Request.Context(), reporterID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, report)
}

// List lists reports, optionally filtered by status
// GET /api/v1/admin/reports?status=
func (h *ReportHandler) List(c *gin.Context) {
	filter := entities.ReportFilter{Status: entities.ReportStatus(strings.ToUpper(c.Query("status")))}
	pagination := paginationFromQuery(c)
	reports, total, err := h.reports.List(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, reports, total, pagination)
}

// ListPending lists reports awaiting moderation
// GET /api/v1/admin/reports/pending
func (h *ReportHandler) ListPending(c *gin.Context) {
	pagination := paginationFromQuery(c)
	reports, total, err := h.reports.ListPending(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, reports, total, pagination)
}

// Get returns a single report
// GET /api/v1/admin/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// ForUser lists reports filed against a user
// GET /api/v1/admin/users/:id/reports
func (h *ReportHandler) ForUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	pagination := paginationFromQuery(c)
	reports, total, err := h.reports.ForUser(c.Request.Context(), id, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, reports, total, pagination)
}

// ForProperty lists reports filed against a listing
// GET /api/v1/admin/properties/:id/reports
func (h *ReportHandler) ForProperty(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	pagination := paginationFromQuery(c)
	reports, total, err := h.reports.ForProperty(c.Request.Context(), id, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, reports, total, pagination)
}

type reportTransition func(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error)

func (h *ReportHandler) transition(c *gin.Context, fn reportTransition) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input entities.ReportActionInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}

	report, err := fn(c.Request.Context(), adminID, id, input.AdminNotes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// MarkReviewed moves a pending report to REVIEWED
// POST /api/v1/admin/reports/:id/review
func (h *ReportHandler) MarkReviewed(c *gin.Context) { h.transition(c, h.reports.MarkReviewed) }

// Resolve moves a pending report to RESOLVED
// POST /api/v1/admin/reports/:id/resolve
func (h *ReportHandler) Resolve(c *gin.Context) { h.transition(c, h.reports.Resolve) }

// Dismiss moves a pending report to DISMISSED
// POST /api/v1/admin/reports/:id/dismiss
func (h *ReportHandler) Dismiss(c *gin.Context) { h.transition(c, h.reports.Dismiss) }
