package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// IDDocumentUsecase handles government ID uploads and admin access to them
type IDDocumentUsecase struct {
	userRepo       repositories.UserRepository
	uow            repositories.UnitOfWork
	storage        ObjectStorage
	maxUploadBytes int64
	presignExpiry  time.Duration
}

// NewIDDocumentUsecase creates a new ID document usecase
func NewIDDocumentUsecase(
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	storage ObjectStorage,
	maxUploadBytes int64,
	presignExpiry time.Duration,
) *IDDocumentUsecase {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &IDDocumentUsecase{
		userRepo:       userRepo,
		uow:            uow,
		storage:        storage,
		maxUploadBytes: maxUploadBytes,
		presignExpiry:  presignExpiry,
	}
}

func idDocumentKey(userID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/%s/ID_%s_%s%s", idDocumentPrefix, userID, userID, utils.GenerateUUIDv7(), ext)
}

// Upload stores the document and moves the account to IDStatus SUBMITTED.
// A previous document is replaced.
func (u *IDDocumentUsecase) Upload(ctx context.Context, userID uuid.UUID, filename string, size int64, r io.Reader) (*entities.User, error) {
	ext, contentType, err := contentTypeFor(filename, idDocumentTypes)
	if err != nil {
		return nil, err
	}
	if err := checkUploadSize(size, u.maxUploadBytes); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IDStatus == entities.IDVerified {
		return nil, domainerrors.NewError("identity document already verified", domainerrors.ErrBadRequest)
	}

	key := idDocumentKey(userID, ext)
	if err := u.storage.Put(ctx, key, r, size, contentType); err != nil {
		return nil, err
	}

	previous := user.IDDocumentPath
	user.IDDocumentPath = null.StringFrom(key)
	user.IDStatus = entities.IDSubmitted
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		return u.userRepo.UpdateStatuses(txCtx, user)
	})
	if err != nil {
		warnIfFailed(ctx, "Failed to remove orphaned ID document", u.storage.Delete(ctx, key))
		return nil, err
	}

	if previous.Valid && previous.String != key {
		warnIfFailed(ctx, "Failed to delete replaced ID document", u.storage.Delete(ctx, previous.String),
			zap.String("user_id", userID.String()))
	}

	logger.Info(ctx, "ID document submitted", zap.String("user_id", userID.String()))
	return user, nil
}

// DocumentURL returns a time-limited link to the user's ID document
func (u *IDDocumentUsecase) DocumentURL(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.IDDocumentPath.Valid || user.IDDocumentPath.String == "" {
		return "", domainerrors.ErrNotFound
	}
	return u.storage.PresignedURL(ctx, user.IDDocumentPath.String, u.presignExpiry)
}
