package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/infrastructure/models"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyRepository implements listing data operations
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create stores a new listing
func (r *PropertyRepository) Create(ctx context.Context, property *entities.Property) error {
	if property.ID == uuid.Nil {
		property.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}
	property.UpdatedAt = now
	return GetDB(ctx, r.db).WithContext(ctx).Create(toPropertyModel(property)).Error
}

// GetByID gets a listing by ID
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Property, error) {
	var m models.Property
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPropertyEntity(&m), nil
}

// Update persists the editable listing fields
func (r *PropertyRepository) Update(ctx context.Context, property *entities.Property) error {
	property.UpdatedAt = time.Now()
	return r.updateColumns(ctx, property.ID, map[string]interface{}{
		"title":                  property.Title,
		"location":               property.Location,
		"description":            property.Description,
		"price":                  property.Price,
		"rooms":                  property.Rooms,
		"floor":                  property.Floor,
		"area":                   property.Area,
		"distance_to_metro":      property.DistanceToMetro,
		"distance_to_university": property.DistanceToUniversity,
		"latitude":               property.Latitude,
		"longitude":              property.Longitude,
		"updated_at":             property.UpdatedAt,
	})
}

// UpdateMedia persists the photo and video lists
func (r *PropertyRepository) UpdateMedia(ctx context.Context, property *entities.Property) error {
	property.UpdatedAt = time.Now()
	m := &models.Property{ID: property.ID, Photos: property.Photos, Videos: property.Videos, UpdatedAt: property.UpdatedAt}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(m).
		Select("photos", "videos", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVerified sets the admin verification flag
func (r *PropertyRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"is_verified": verified, "updated_at": time.Now()})
}

// SetArchived sets the archive flag
func (r *PropertyRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"is_archived": archived, "updated_at": time.Now()})
}

func (r *PropertyRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a listing
func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Search lists listings matching filter, newest first
func (r *PropertyRepository) Search(ctx context.Context, filter entities.PropertyFilter, pagination utils.PaginationParams) ([]*entities.Property, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Property{})

	if filter.OnlyPublic {
		query = query.Where("is_verified = ? AND is_archived = ?", true, false)
	}
	if filter.Unverified {
		query = query.Where("is_verified = ?", false)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		term := "%" + strings.ToLower(kw) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(location) LIKE ?)", term, term)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Rooms != nil {
		query = query.Where("rooms = ?", *filter.Rooms)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []models.Property
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Property, 0, len(rows))
	for i := range rows {
		out = append(out, toPropertyEntity(&rows[i]))
	}
	return out, totalCount, nil
}

func toPropertyModel(p *entities.Property) *models.Property {
	return &models.Property{
		ID:                   p.ID,
		OwnerID:              p.OwnerID,
		Title:                p.Title,
		Location:             p.Location,
		Description:          p.Description,
		Price:                p.Price,
		Rooms:                p.Rooms,
		Floor:                p.Floor,
		Area:                 p.Area,
		DistanceToMetro:      p.DistanceToMetro,
		DistanceToUniversity: p.DistanceToUniversity,
		Latitude:             p.Latitude,
		Longitude:            p.Longitude,
		Photos:               p.Photos,
		Videos:               p.Videos,
		IsVerified:           p.IsVerified,
		IsArchived:           p.IsArchived,
		RatingAverage:        p.RatingAverage,
		RatingCount:          p.RatingCount,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toPropertyEntity(m *models.Property) *entities.Property {
	photos, videos := m.Photos, m.Videos
	if photos == nil {
		photos = []string{}
	}
	if videos == nil {
		videos = []string{}
	}
	return &entities.Property{
		ID:                   m.ID,
		OwnerID:              m.OwnerID,
		Title:                m.Title,
		Location:             m.Location,
		Description:          m.Description,
		Price:                m.Price,
		Rooms:                m.Rooms,
		Floor:                m.Floor,
		Area:                 m.Area,
		DistanceToMetro:      m.DistanceToMetro,
		DistanceToUniversity: m.DistanceToUniversity,
		Latitude:             m.Latitude,
		Longitude:            m.Longitude,
		Photos:               photos,
		Videos:               videos,
		IsVerified:           m.IsVerified,
		IsArchived:           m.IsArchived,
		RatingAverage:        m.RatingAverage,
		RatingCount:          m.RatingCount,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
