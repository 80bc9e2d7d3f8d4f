package repositories

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
)

// PropertyRepository defines listing data operations
type PropertyRepository interface {
	Create(ctx context.Context, property *entities.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Property, error)
	Update(ctx context.Context, property *entities.Property) error
	UpdateMedia(ctx context.Context, property *entities.Property) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter entities.PropertyFilter, pagination utils.PaginationParams) ([]*entities.Property, int64, error)
}
