package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one reviewer's rating of another user. There is at most one
// per (ReviewerID, TargetUserID).
type Review struct {
	ID           uuid.UUID `json:"id"`
	ReviewerID   uuid.UUID `json:"reviewerId"`
	TargetUserID uuid.UUID `json:"targetUserId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AddReviewInput represents a review submission.
type AddReviewInput struct {
	TargetUserID uuid.UUID `json:"targetUserId" binding:"required"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment" binding:"max=2000"`
}

// RatingStats is the aggregate recomputed after every review write.
type RatingStats struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"reviewCount"`
}
