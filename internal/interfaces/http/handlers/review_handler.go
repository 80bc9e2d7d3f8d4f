package handlers

import (
	"context"
	"net/http"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type reviewService interface {
	AddReview(ctx context.Context, reviewerID uuid.UUID, input *entities.AddReviewInput) (*entities.Review, error)
	ListForUser(ctx context.Context, targetID uuid.UUID) ([]*entities.Review, error)
	Rating(ctx context.Context, targetID uuid.UUID) (entities.RatingStats, error)
	ContactedUsers(ctx context.Context, reviewerID uuid.UUID) ([]*entities.PublicProfile, error)
}

// ReviewHandler handles user reviews
type ReviewHandler struct {
	reviews reviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews reviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// AddReview creates or replaces the caller's review of a user
// POST /api/v1/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.AddReviewInput
	if !bindJSON(c, &input) {
		return
	}

	review, err := h.reviews.AddReview(c.Request.Context(), reviewerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// ListForUser lists reviews written about a user
// GET /api/v1/users/:id/reviews
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	targetID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	reviews, err := h.reviews.ListForUser(c.Request.Context(), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if reviews == nil {
		reviews = []*entities.Review{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": reviews})
}

// Rating returns a user's average rating and review count
// GET /api/v1/users/:id/rating
func (h *ReviewHandler) Rating(c *gin.Context) {
	targetID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.reviews.Rating(c.Request.Context(), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ContactedUsers lists users the caller has messaged and may review
// GET /api/v1/reviews/contacted
func (h *ReviewHandler) ContactedUsers(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	profiles, err := h.reviews.ContactedUsers(c.Request.Context(), reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if profiles == nil {
		profiles = []*entities.PublicProfile{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": profiles})
}
