package usecases

import (
	"context"
	"fmt"
	"io"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PropertyUsecase handles listings, their media and admin verification
type PropertyUsecase struct {
	propertyRepo   repositories.PropertyRepository
	userRepo       repositories.UserRepository
	storage        ObjectStorage
	maxUploadBytes int64
}

// NewPropertyUsecase creates a new property usecase
func NewPropertyUsecase(
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	storage ObjectStorage,
	maxUploadBytes int64,
) *PropertyUsecase {
	return &PropertyUsecase{
		propertyRepo:   propertyRepo,
		userRepo:       userRepo,
		storage:        storage,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create adds an unverified listing owned by ownerID. Only sellers and
// agents may list.
func (u *PropertyUsecase) Create(ctx context.Context, ownerID uuid.UUID, input *entities.CreatePropertyInput) (*entities.Property, error) {
	owner, err := u.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.Role.CanListProperties() {
		return nil, domainerrors.ErrPermissionDenied
	}

	property := &entities.Property{
		OwnerID:              ownerID,
		Title:                cleanText(input.Title),
		Location:             cleanText(input.Location),
		Description:          cleanText(input.Description),
		Price:                input.Price,
		Rooms:                input.Rooms,
		Floor:                input.Floor,
		Area:                 input.Area,
		DistanceToMetro:      input.DistanceToMetro,
		DistanceToUniversity: input.DistanceToUniversity,
		Latitude:             input.Latitude,
		Longitude:            input.Longitude,
		Photos:               []string{},
		Videos:               []string{},
	}
	if property.Title == "" || property.Location == "" {
		return nil, invalidInput("title and location are required")
	}
	if property.Price < 0 || property.Rooms < 0 {
		return nil, invalidInput("price and rooms must not be negative")
	}

	if err := u.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Property created",
		zap.String("property_id", property.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return property, nil
}

// Get returns a listing. Listings that are not publicly visible are only
// returned to their owner and to admins.
func (u *PropertyUsecase) Get(ctx context.Context, id, viewerID uuid.UUID, isAdmin bool) (*entities.Property, error) {
	property, err := u.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.PubliclyVisible() && !isAdmin && property.OwnerID != viewerID {
		return nil, domainerrors.ErrNotFound
	}
	return property, nil
}

// Search lists verified, unarchived listings matching filter
func (u *PropertyUsecase) Search(ctx context.Context, filter entities.PropertyFilter, pagination utils.PaginationParams) ([]*entities.Property, int64, error) {
	filter.Keyword = cleanText(filter.Keyword)
	filter.OnlyPublic = true
	filter.Unverified = false
	filter.OwnerID = nil
	return u.propertyRepo.Search(ctx, filter, pagination)
}

// ListMine lists every listing owned by ownerID
func (u *PropertyUsecase) ListMine(ctx context.Context, ownerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Property, int64, error) {
	return u.propertyRepo.Search(ctx, entities.PropertyFilter{OwnerID: &ownerID}, pagination)
}

// AdminList lists all listings regardless of status
func (u *PropertyUsecase) AdminList(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Property, int64, error) {
	return u.propertyRepo.Search(ctx, entities.PropertyFilter{}, pagination)
}

// AdminListUnverified lists listings waiting for verification
func (u *PropertyUsecase) AdminListUnverified(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Property, int64, error) {
	return u.propertyRepo.Search(ctx, entities.PropertyFilter{Unverified: true}, pagination)
}

func (u *PropertyUsecase) loadOwned(ctx context.Context, ownerID, id uuid.UUID) (*entities.Property, error) {
	property, err := u.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, domainerrors.ErrPermissionDenied
	}
	return property, nil
}

// Update applies the provided fields to an owned listing
func (u *PropertyUsecase) Update(ctx context.Context, ownerID, id uuid.UUID, input *entities.UpdatePropertyInput) (*entities.Property, error) {
	property, err := u.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if property.Title = cleanText(*input.Title); property.Title == "" {
			return nil, invalidInput("title is required")
		}
	}
	if input.Location != nil {
		if property.Location = cleanText(*input.Location); property.Location == "" {
			return nil, invalidInput("location is required")
		}
	}
	if input.Description != nil {
		property.Description = cleanText(*input.Description)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, invalidInput("price must not be negative")
		}
		property.Price = *input.Price
	}
	if input.Rooms != nil {
		if *input.Rooms < 0 {
			return nil, invalidInput("rooms must not be negative")
		}
		property.Rooms = *input.Rooms
	}
	if input.Floor.Valid {
		property.Floor = input.Floor
	}
	if input.Area.Valid {
		property.Area = input.Area
	}
	if input.DistanceToMetro.Valid {
		property.DistanceToMetro = input.DistanceToMetro
	}
	if input.DistanceToUniversity.Valid {
		property.DistanceToUniversity = input.DistanceToUniversity
	}
	if input.Latitude.Valid {
		property.Latitude = input.Latitude
	}
	if input.Longitude.Valid {
		property.Longitude = input.Longitude
	}

	if err := u.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// SetArchived archives or restores an owned listing
func (u *PropertyUsecase) SetArchived(ctx context.Context, ownerID, id uuid.UUID, archived bool) error {
	if _, err := u.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return u.propertyRepo.SetArchived(ctx, id, archived)
}

// SetVerified marks a listing verified or unverified
func (u *PropertyUsecase) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	if err := u.propertyRepo.SetVerified(ctx, id, verified); err != nil {
		return err
	}
	logger.Info(ctx, "Property verification changed",
		zap.String("property_id", id.String()),
		zap.Bool("verified", verified),
	)
	return nil
}

// Delete removes a listing. Owners delete their own; admins any.
func (u *PropertyUsecase) Delete(ctx context.Context, actorID, id uuid.UUID, isAdmin bool) error {
	if !isAdmin {
		if _, err := u.loadOwned(ctx, actorID, id); err != nil {
			return err
		}
	}
	if err := u.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "Property deleted",
		zap.String("property_id", id.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func mediaTypes(kind entities.MediaKind) (map[string]string, error) {
	switch kind {
	case entities.MediaPhoto:
		return photoTypes, nil
	case entities.MediaVideo:
		return videoTypes, nil
	}
	return nil, invalidInput("unknown media kind")
}

// AddMedia uploads a photo or video and appends it to the listing
func (u *PropertyUsecase) AddMedia(ctx context.Context, ownerID, id uuid.UUID, kind entities.MediaKind, filename string, size int64, r io.Reader) (*entities.Property, error) {
	allowed, err := mediaTypes(kind)
	if err != nil {
		return nil, err
	}
	ext, contentType, err := contentTypeFor(filename, allowed)
	if err != nil {
		return nil, err
	}
	if err := checkUploadSize(size, u.maxUploadBytes); err != nil {
		return nil, err
	}

	property, err := u.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%ss/%s%s", propertyMediaPrefix, id, kind, utils.GenerateUUIDv7(), ext)
	if err := u.storage.Put(ctx, key, r, size, contentType); err != nil {
		return nil, err
	}

	property.SetMedia(kind, append(property.Media(kind), key))
	if err := u.propertyRepo.UpdateMedia(ctx, property); err != nil {
		warnIfFailed(ctx, "Failed to remove orphaned media", u.storage.Delete(ctx, key))
		return nil, err
	}
	return property, nil
}

// RemoveMedia drops the photo or video at index from an owned listing
func (u *PropertyUsecase) RemoveMedia(ctx context.Context, ownerID, id uuid.UUID, kind entities.MediaKind, index int) (*entities.Property, error) {
	if _, err := mediaTypes(kind); err != nil {
		return nil, err
	}
	property, err := u.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	current := property.Media(kind)
	if index < 0 || index >= len(current) {
		return nil, invalidInput("media index out of range")
	}
	removed := current[index]
	remaining := make([]string, 0, len(current)-1)
	remaining = append(remaining, current[:index]...)
	remaining = append(remaining, current[index+1:]...)
	property.SetMedia(kind, remaining)

	if err := u.propertyRepo.UpdateMedia(ctx, property); err != nil {
		return nil, err
	}
	warnIfFailed(ctx, "Failed to delete media object", u.storage.Delete(ctx, removed),
		zap.String("property_id", id.String()))
	return property, nil
}
