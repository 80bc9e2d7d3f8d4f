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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	m := toUserModel(user)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email, ignoring case and surrounding spaces
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// Update persists profile fields. Role and statuses are not touched.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":             user.Name,
		"phone":            user.Phone,
		"bio":              user.Bio,
		"government_id":    user.GovernmentID,
		"id_document_path": user.IDDocumentPath,
		"updated_at":       time.Now(),
	}
	return r.updateColumns(ctx, user.ID, updates)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
}

// UpdateStatuses writes the three verification statuses in one statement
func (r *UserRepository) UpdateStatuses(ctx context.Context, user *entities.User) error {
	return r.updateColumns(ctx, user.ID, map[string]interface{}{
		"email_status":    string(user.EmailStatus),
		"id_status":       string(user.IDStatus),
		"approval_status": string(user.ApprovalStatus),
		"updated_at":      time.Now(),
	})
}

// UpdateRating stores the recomputed review aggregate
func (r *UserRepository) UpdateRating(ctx context.Context, id uuid.UUID, stats entities.RatingStats) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"average_rating": stats.Average,
		"review_count":   stats.Count,
		"updated_at":     time.Now(),
	})
}

func (r *UserRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete permanently removes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users matching filter, newest first
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{})

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", searchTerm, searchTerm)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if filter.EmailStatus != "" {
		query = query.Where("email_status = ?", string(filter.EmailStatus))
	}
	if filter.IDStatus != "" {
		query = query.Where("id_status = ?", string(filter.IDStatus))
	}
	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", string(filter.ApprovalStatus))
	}
	if filter.NotVerified {
		query = query.Where("(email_status <> ? OR id_status <> ? OR approval_status <> ?)",
			string(entities.EmailVerified), string(entities.IDVerified), string(entities.ApprovalApproved))
	}
	if filter.HasIDDocument {
		query = query.Where("id_document_path IS NOT NULL AND id_document_path <> ''")
	}
	if filter.ExcludeEmail != "" {
		query = query.Where("LOWER(email) <> ?", strings.ToLower(filter.ExcludeEmail))
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var userModels []models.User
	if err := query.Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, totalCount, nil
}

// CountByRole counts users holding role
func (r *UserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("role = ?", string(role)).Count(&count).Error
	return count, err
}

func toUserModel(user *entities.User) *models.User {
	return &models.User{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		EmailStatus:    string(user.EmailStatus),
		IDStatus:       string(user.IDStatus),
		ApprovalStatus: string(user.ApprovalStatus),
		GovernmentID:   user.GovernmentID,
		IDDocumentPath: user.IDDocumentPath,
		Phone:          user.Phone,
		Bio:            user.Bio,
		AverageRating:  user.AverageRating,
		ReviewCount:    user.ReviewCount,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           entities.UserRole(m.Role),
		EmailStatus:    entities.EmailStatus(m.EmailStatus),
		IDStatus:       entities.IDStatus(m.IDStatus),
		ApprovalStatus: entities.ApprovalStatus(m.ApprovalStatus),
		GovernmentID:   m.GovernmentID,
		IDDocumentPath: m.IDDocumentPath,
		Phone:          m.Phone,
		Bio:            m.Bio,
		AverageRating:  m.AverageRating,
		ReviewCount:    m.ReviewCount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// isUniqueViolation matches translated gorm errors and the raw postgres and
// sqlite messages for connections opened without TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "UNIQUE constraint failed")
}
