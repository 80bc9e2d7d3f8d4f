package repositories

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateStatuses(ctx context.Context, user *entities.User) error
	UpdateRating(ctx context.Context, id uuid.UUID, stats entities.RatingStats) error
	// Delete removes the row permanently.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	CountByRole(ctx context.Context, role entities.UserRole) (int64, error)
}

// VerificationCodeRepository stores pending email verification codes.
type VerificationCodeRepository interface {
	Save(ctx context.Context, code *entities.VerificationCode) error
	Get(ctx context.Context, email string) (*entities.VerificationCode, error)
	Delete(ctx context.Context, email string) error
}
