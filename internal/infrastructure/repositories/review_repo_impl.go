package repositories

import (
	"context"
	"errors"
	"math"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/infrastructure/models"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository implements review data operations
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// GetByReviewerAndTarget returns the single review reviewerID left for targetID
func (r *ReviewRepository) GetByReviewerAndTarget(ctx context.Context, reviewerID, targetID uuid.UUID) (*entities.Review, error) {
	var m models.Review
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("reviewer_id = ? AND target_user_id = ?", reviewerID, targetID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toReviewEntity(&m), nil
}

// Create stores a new review
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	if review.ID == uuid.Nil {
		review.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now
	m := &models.Review{
		ID:           review.ID,
		ReviewerID:   review.ReviewerID,
		TargetUserID: review.TargetUserID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// Update overwrites rating and comment of an existing review
func (r *ReviewRepository) Update(ctx context.Context, review *entities.Review) error {
	review.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByTarget lists the reviews of targetID, newest first
func (r *ReviewRepository) ListByTarget(ctx context.Context, targetID uuid.UUID) ([]*entities.Review, error) {
	var rows []models.Review
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("target_user_id = ?", targetID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Review, 0, len(rows))
	for i := range rows {
		out = append(out, toReviewEntity(&rows[i]))
	}
	return out, nil
}

// Stats recomputes the average and count over every review of targetID.
// The average is rounded half away from zero to two decimals, the precision
// of the users.average_rating column.
func (r *ReviewRepository) Stats(ctx context.Context, targetID uuid.UUID) (entities.RatingStats, error) {
	var row struct {
		Average *float64
		Count   int
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("target_user_id = ?", targetID).
		Scan(&row).Error
	if err != nil {
		return entities.RatingStats{}, err
	}
	stats := entities.RatingStats{Count: row.Count}
	if row.Average != nil {
		stats.Average = math.Round(*row.Average*100) / 100
	}
	return stats, nil
}

func toReviewEntity(m *models.Review) *entities.Review {
	return &entities.Review{
		ID:           m.ID,
		ReviewerID:   m.ReviewerID,
		TargetUserID: m.TargetUserID,
		Rating:       m.Rating,
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
