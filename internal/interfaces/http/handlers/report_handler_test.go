package handlers

import (
	"context"
	"net/http"
	"testing"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportService struct {
	created  *entities.CreateReportInput
	filter   entities.ReportFilter
	statuses map[uuid.UUID]entities.ReportStatus
	notes    string
	scope    string
}

func (s *stubReportService) Create(_ context.Context, reporter uuid.UUID, in *entities.CreateReportInput) (*entities.Report, error) {
	if !in.Reason.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	s.created = in
	return &entities.Report{ID: uuid.New(), ReporterID: reporter, Reason: in.Reason, Status: entities.ReportPending}, nil
}
func (s *stubReportService) Get(_ context.Context, id uuid.UUID) (*entities.Report, error) {
	status, ok := s.statuses[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return &entities.Report{ID: id, Status: status}, nil
}
func (s *stubReportService) List(_ context.Context, f entities.ReportFilter, _ utils.PaginationParams) ([]*entities.Report, int64, error) {
	s.filter = f
	return nil, 0, nil
}
func (s *stubReportService) ListPending(context.Context, utils.PaginationParams) ([]*entities.Report, int64, error) {
	s.scope = "pending"
	return nil, 0, nil
}
func (s *stubReportService) ForUser(context.Context, uuid.UUID, utils.PaginationParams) ([]*entities.Report, int64, error) {
	s.scope = "user"
	return nil, 0, nil
}
func (s *stubReportService) ForProperty(context.Context, uuid.UUID, utils.PaginationParams) ([]*entities.Report, int64, error) {
	s.scope = "property"
	return nil, 0, nil
}
func (s *stubReportService) move(id uuid.UUID, next entities.ReportStatus, notes string) (*entities.Report, error) {
	current, ok := s.statuses[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if !current.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidStatusTransition
	}
	s.statuses[id], s.notes = next, notes
	return &entities.Report{ID: id, Status: next}, nil
}
func (s *stubReportService) MarkReviewed(_ context.Context, _, id uuid.UUID, notes string) (*entities.Report, error) {
	return s.move(id, entities.ReportReviewed, notes)
}
func (s *stubReportService) Resolve(_ context.Context, _, id uuid.UUID, notes string) (*entities.Report, error) {
	return s.move(id, entities.ReportResolved, notes)
}
func (s *stubReportService) Dismiss(_ context.Context, _, id uuid.UUID, notes string) (*entities.Report, error) {
	return s.move(id, entities.ReportDismissed, notes)
}

func newReportTestRouter(svc *stubReportService) *gin.Engine {
	h := NewReportHandler(svc)
	r := newTestRouter()
	r.POST("/reports", h.Create)
	r.GET("/admin/reports", h.List)
	r.GET("/admin/reports/pending", h.ListPending)
	r.GET("/admin/reports/:id", h.Get)
	r.POST("/admin/reports/:id/review", h.MarkReviewed)
	r.POST("/admin/reports/:id/resolve", h.Resolve)
	r.POST("/admin/reports/:id/dismiss", h.Dismiss)
	r.GET("/admin/users/:id/reports", h.ForUser)
	r.GET("/admin/properties/:id/reports", h.ForProperty)
	return r
}

func TestReportHandler_Create(t *testing.T) {
	svc := &stubReportService{}
	r := newReportTestRouter(svc)
	target := uuid.New()

	w := serve(t, r, testRequest{method: http.MethodPost, path: "/reports", user: uuid.New(), body: gin.H{
		"reportedUserId": target, "reason": "fraud", "description": "asks for deposit",
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, entities.ReportReasonFraud, svc.created.Reason)
	assert.Equal(t, target, *svc.created.ReportedUserID)
	assert.Equal(t, string(entities.ReportPending), decodeBody(t, w)["status"])

	w = serve(t, r, testRequest{method: http.MethodPost, path: "/reports", user: uuid.New(), body: gin.H{"reportedUserId": target, "reason": "boring"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, r, testRequest{method: http.MethodPost, path: "/reports", body: gin.H{"reportedUserId": target, "reason": "SPAM"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportHandler_Transitions(t *testing.T) {
	id := uuid.New()
	svc := &stubReportService{statuses: map[uuid.UUID]entities.ReportStatus{id: entities.ReportPending}}
	r := newReportTestRouter(svc)
	admin := uuid.New()
	base := "/admin/reports/" + id.String()

	w := serve(t, r, testRequest{method: http.MethodPost, path: base + "/resolve", user: admin, body: gin.H{"adminNotes": "user warned"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(entities.ReportResolved), decodeBody(t, w)["status"])
	assert.Equal(t, "user warned", svc.notes)

	for _, action := range []string{"review", "resolve", "dismiss"} {
		w = serve(t, r, testRequest{method: http.MethodPost, path: base + "/" + action, user: admin})
		assert.Equal(t, http.StatusConflict, w.Code, action)
		assert.Equal(t, domainerrors.CodeInvalidStatusTransition, decodeBody(t, w)["code"])
	}

	w = serve(t, r, testRequest{method: http.MethodPost, path: "/admin/reports/" + uuid.NewString() + "/dismiss", user: admin})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, r, testRequest{method: http.MethodGet, path: base, user: admin})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(entities.ReportResolved), decodeBody(t, w)["status"])
}

func TestReportHandler_Listings(t *testing.T) {
	svc := &stubReportService{}
	r := newReportTestRouter(svc)

	w := serve(t, r, testRequest{method: http.MethodGet, path: "/admin/reports?status=dismissed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.ReportDismissed, svc.filter.Status)

	for path, scope := range map[string]string{
		"/admin/reports/pending":                             "pending",
		"/admin/users/" + uuid.NewString() + "/reports":      "user",
		"/admin/properties/" + uuid.NewString() + "/reports": "property",
	} {
		w = serve(t, r, testRequest{method: http.MethodGet, path: path})
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, scope, svc.scope)
	}
}
