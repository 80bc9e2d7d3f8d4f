package usecases

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportUsecase handles abuse reports and their moderation
type ReportUsecase struct {
	reportRepo   repositories.ReportRepository
	userRepo     repositories.UserRepository
	propertyRepo repositories.PropertyRepository
}

// NewReportUsecase creates a new report usecase
func NewReportUsecase(
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	propertyRepo repositories.PropertyRepository,
) *ReportUsecase {
	return &ReportUsecase{
		reportRepo:   reportRepo,
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
	}
}

// Create files a PENDING report against exactly one user or property
func (u *ReportUsecase) Create(ctx context.Context, reporterID uuid.UUID, input *entities.CreateReportInput) (*entities.Report, error) {
	if (input.ReportedUserID == nil) == (input.ReportedPropertyID == nil) {
		return nil, invalidInput("report exactly one user or property")
	}
	if !input.Reason.Valid() {
		return nil, invalidInput("unknown report reason")
	}

	if input.ReportedUserID != nil {
		if *input.ReportedUserID == reporterID {
			return nil, invalidInput("cannot report yourself")
		}
		if _, err := u.userRepo.GetByID(ctx, *input.ReportedUserID); err != nil {
			return nil, err
		}
	}
	if input.ReportedPropertyID != nil {
		if _, err := u.propertyRepo.GetByID(ctx, *input.ReportedPropertyID); err != nil {
			return nil, err
		}
	}

	report := &entities.Report{
		ReporterID:         reporterID,
		ReportedUserID:     input.ReportedUserID,
		ReportedPropertyID: input.ReportedPropertyID,
		Reason:             input.Reason,
		Description:        cleanText(input.Description),
		Status:             entities.ReportPending,
	}
	if err := u.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Report filed",
		zap.String("report_id", report.ID.String()),
		zap.String("reason", string(report.Reason)),
	)
	return report, nil
}

// Get gets a report by ID
func (u *ReportUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	return u.reportRepo.GetByID(ctx, id)
}

// List lists reports matching filter, newest first
func (u *ReportUsecase) List(ctx context.Context, filter entities.ReportFilter, pagination utils.PaginationParams) ([]*entities.Report, int64, error) {
	return u.reportRepo.List(ctx, filter, pagination)
}

// ListPending lists reports waiting for a moderator
func (u *ReportUsecase) ListPending(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Report, int64, error) {
	return u.reportRepo.List(ctx, entities.ReportFilter{Status: entities.ReportPending}, pagination)
}

// ForUser lists reports filed against userID
func (u *ReportUsecase) ForUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Report, int64, error) {
	return u.reportRepo.List(ctx, entities.ReportFilter{ReportedUserID: &userID}, pagination)
}

// ForProperty lists reports filed against propertyID
func (u *ReportUsecase) ForProperty(ctx context.Context, propertyID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Report, int64, error) {
	return u.reportRepo.List(ctx, entities.ReportFilter{ReportedPropertyID: &propertyID}, pagination)
}

// MarkReviewed moves a PENDING report to REVIEWED
func (u *ReportUsecase) MarkReviewed(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error) {
	return u.transition(ctx, adminID, id, entities.ReportReviewed, notes)
}

// Resolve moves a PENDING report to RESOLVED
func (u *ReportUsecase) Resolve(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error) {
	return u.transition(ctx, adminID, id, entities.ReportResolved, notes)
}

// Dismiss moves a PENDING report to DISMISSED
func (u *ReportUsecase) Dismiss(ctx context.Context, adminID, id uuid.UUID, notes string) (*entities.Report, error) {
	return u.transition(ctx, adminID, id, entities.ReportDismissed, notes)
}

func (u *ReportUsecase) transition(ctx context.Context, adminID, id uuid.UUID, next entities.ReportStatus, notes string) (*entities.Report, error) {
	if err := u.reportRepo.Transition(ctx, id, next, cleanText(notes), adminID); err != nil {
		return nil, err
	}
	reportTransitions.WithLabelValues(string(next)).Inc()
	logger.Info(ctx, "Report moderated",
		zap.String("report_id", id.String()),
		zap.String("status", string(next)),
		zap.String("admin_id", adminID.String()),
	)
	return u.reportRepo.GetByID(ctx, id)
}
