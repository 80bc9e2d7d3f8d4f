package repositories

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
)

// ReportRepository defines report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *entities.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Report, error)
	List(ctx context.Context, filter entities.ReportFilter, pagination utils.PaginationParams) ([]*entities.Report, int64, error)
	// Transition moves a PENDING report to next. It returns
	// ErrInvalidStatusTransition when the report is no longer PENDING.
	Transition(ctx context.Context, id uuid.UUID, next entities.ReportStatus, adminNotes string, adminID uuid.UUID) error
}
