package repositories

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ReviewRepository defines review data operations
type ReviewRepository interface {
	GetByReviewerAndTarget(ctx context.Context, reviewerID, targetID uuid.UUID) (*entities.Review, error)
	Create(ctx context.Context, review *entities.Review) error
	Update(ctx context.Context, review *entities.Review) error
	ListByTarget(ctx context.Context, targetID uuid.UUID) ([]*entities.Review, error)
	// Stats aggregates every review of targetID.
	Stats(ctx context.Context, targetID uuid.UUID) (entities.RatingStats, error)
}
