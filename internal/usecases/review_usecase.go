package usecases

import (
	"context"
	"errors"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewUsecase handles user reviews and the rating aggregate
type ReviewUsecase struct {
	reviewRepo  repositories.ReviewRepository
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
}

// NewReviewUsecase creates a new review usecase
func NewReviewUsecase(
	reviewRepo repositories.ReviewRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		uow:         uow,
	}
}

// AddReview records reviewerID's rating of the target, replacing an earlier
// review by the same reviewer, and recomputes the target's aggregate.
// The reviewer must have messaged the target first.
func (u *ReviewUsecase) AddReview(ctx context.Context, reviewerID uuid.UUID, input *entities.AddReviewInput) (*entities.Review, error) {
	if input.Rating < entities.MinRating || input.Rating > entities.MaxRating {
		return nil, domainerrors.ErrInvalidRating
	}
	if reviewerID == input.TargetUserID {
		return nil, domainerrors.ErrSelfReview
	}

	contacted, err := u.messageRepo.ExistsFromTo(ctx, reviewerID, input.TargetUserID)
	if err != nil {
		return nil, err
	}
	if !contacted {
		return nil, domainerrors.ErrNoInteraction
	}

	comment := cleanText(input.Comment)
	var (
		review *entities.Review
		result string
	)
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		// Locking the target row serializes concurrent reviews of one user.
		if _, err := u.userRepo.GetByID(u.uow.WithLock(txCtx), input.TargetUserID); err != nil {
			return err
		}

		existing, err := u.reviewRepo.GetByReviewerAndTarget(txCtx, reviewerID, input.TargetUserID)
		switch {
		case err == nil:
			existing.Rating = input.Rating
			existing.Comment = comment
			if err := u.reviewRepo.Update(txCtx, existing); err != nil {
				return err
			}
			review, result = existing, "updated"
		case errors.Is(err, domainerrors.ErrNotFound):
			review = &entities.Review{
				ReviewerID:   reviewerID,
				TargetUserID: input.TargetUserID,
				Rating:       input.Rating,
				Comment:      comment,
			}
			if err := u.reviewRepo.Create(txCtx, review); err != nil {
				return err
			}
			result = "created"
		default:
			return err
		}

		stats, err := u.reviewRepo.Stats(txCtx, input.TargetUserID)
		if err != nil {
			return err
		}
		return u.userRepo.UpdateRating(txCtx, input.TargetUserID, stats)
	})
	if err != nil {
		return nil, err
	}

	reviewWrites.WithLabelValues(result).Inc()
	logger.Info(ctx, "Review saved",
		zap.String("review_id", review.ID.String()),
		zap.String("target_id", input.TargetUserID.String()),
		zap.String("result", result),
	)
	return review, nil
}

// ListForUser lists reviews of targetID
func (u *ReviewUsecase) ListForUser(ctx context.Context, targetID uuid.UUID) ([]*entities.Review, error) {
	return u.reviewRepo.ListByTarget(ctx, targetID)
}

// Rating returns the current aggregate for targetID
func (u *ReviewUsecase) Rating(ctx context.Context, targetID uuid.UUID) (entities.RatingStats, error) {
	return u.reviewRepo.Stats(ctx, targetID)
}

// ContactedUsers lists the users reviewerID has messaged and may review
func (u *ReviewUsecase) ContactedUsers(ctx context.Context, reviewerID uuid.UUID) ([]*entities.PublicProfile, error) {
	ids, err := u.messageRepo.ListRecipientIDs(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	profiles := make([]*entities.PublicProfile, 0, len(ids))
	for _, id := range ids {
		user, err := u.userRepo.GetByID(ctx, id)
		if errors.Is(err, domainerrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, user.Profile())
	}
	return profiles, nil
}
