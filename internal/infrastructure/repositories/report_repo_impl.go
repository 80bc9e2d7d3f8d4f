package repositories

import (
	"context"
	"errors"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/infrastructure/models"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// ReportRepository implements report data operations
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create stores a new report
func (r *ReportRepository) Create(ctx context.Context, report *entities.Report) error {
	if report.ID == uuid.Nil {
		report.ID = utils.GenerateUUIDv7()
	}
	if report.Status == "" {
		report.Status = entities.ReportPending
	}
	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now
	m := &models.Report{
		ID:                 report.ID,
		ReporterID:         report.ReporterID,
		ReportedUserID:     report.ReportedUserID,
		ReportedPropertyID: report.ReportedPropertyID,
		Reason:             string(report.Reason),
		Description:        report.Description,
		Status:             string(report.Status),
		AdminNotes:         report.AdminNotes,
		ResolvedBy:         report.ResolvedBy,
		CreatedAt:          report.CreatedAt,
		UpdatedAt:          report.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	var m models.Report
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toReportEntity(&m), nil
}

// List lists reports matching filter, newest first
func (r *ReportRepository) List(ctx context.Context, filter entities.ReportFilter, pagination utils.PaginationParams) ([]*entities.Report, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.ReportedUserID != nil {
		query = query.Where("reported_user_id = ?", *filter.ReportedUserID)
	}
	if filter.ReportedPropertyID != nil {
		query = query.Where("reported_property_id = ?", *filter.ReportedPropertyID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []models.Report
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*entities.Report, 0, len(rows))
	for i := range rows {
		out = append(out, toReportEntity(&rows[i]))
	}
	return out, totalCount, nil
}

// Transition moves a PENDING report to next with a single conditional
// UPDATE, so only one of several concurrent moderators can succeed.
func (r *ReportRepository) Transition(ctx context.Context, id uuid.UUID, next entities.ReportStatus, adminNotes string, adminID uuid.UUID) error {
	if !entities.ReportPending.CanTransitionTo(next) {
		return domainerrors.ErrInvalidStatusTransition
	}

	db := GetDB(ctx, r.db).WithContext(ctx)
	result := db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, string(entities.ReportPending)).
		Updates(map[string]interface{}{
			"status":      string(next),
			"admin_notes": null.NewString(adminNotes, adminNotes != ""),
			"resolved_by": adminID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidStatusTransition
}

func toReportEntity(m *models.Report) *entities.Report {
	return &entities.Report{
		ID:                 m.ID,
		ReporterID:         m.ReporterID,
		ReportedUserID:     m.ReportedUserID,
		ReportedPropertyID: m.ReportedPropertyID,
		Reason:             entities.ReportReason(m.Reason),
		Description:        m.Description,
		Status:             entities.ReportStatus(m.Status),
		AdminNotes:         m.AdminNotes,
		ResolvedBy:         m.ResolvedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
