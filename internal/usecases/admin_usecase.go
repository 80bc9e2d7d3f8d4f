package usecases

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminUsecase handles account verification and moderation listings
type AdminUsecase struct {
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
	storage  ObjectStorage
	notifier Notifier
	policy   AccountPolicy
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	storage ObjectStorage,
	notifier Notifier,
	policy AccountPolicy,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo: userRepo,
		uow:      uow,
		storage:  storage,
		notifier: notifier,
		policy:   policy,
	}
}

// UserStats counts accounts per role.
type UserStats struct {
	Admins  int64 `json:"admins"`
	Buyers  int64 `json:"buyers"`
	Sellers int64 `json:"sellers"`
	Agents  int64 `json:"agents"`
}

// VerifyUser moves every status of the account to its terminal value.
// Verifying an already verified account changes nothing.
func (u *AdminUsecase) VerifyUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.markVerified(ctx, id, "")
}

// ApproveUser is VerifyUser for the approval queue.
func (u *AdminUsecase) ApproveUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.markVerified(ctx, id, "")
}

// VerifyAdmin verifies an admin account. Other roles are rejected.
func (u *AdminUsecase) VerifyAdmin(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.markVerified(ctx, id, entities.UserRoleAdmin)
}

func (u *AdminUsecase) markVerified(ctx context.Context, id uuid.UUID, requiredRole entities.UserRole) (*entities.User, error) {
	var user *entities.User
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		if requiredRole != "" && user.Role != requiredRole {
			return invalidInput("user is not an " + string(requiredRole))
		}
		if user.Verified() {
			return nil
		}
		user.MarkFullyVerified()
		return u.userRepo.UpdateStatuses(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User verified",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// RejectUser deletes the account permanently. The main admin and the
// acting admin cannot be rejected.
func (u *AdminUsecase) RejectUser(ctx context.Context, adminID, id uuid.UUID, reason string) error {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.policy.IsMainAdmin(user.Email) || user.ID == adminID {
		return domainerrors.ErrPermissionDenied
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info(ctx, "User rejected",
		zap.String("user_id", id.String()),
		zap.String("admin_id", adminID.String()),
	)

	if user.IDDocumentPath.Valid && u.storage != nil {
		warnIfFailed(ctx, "Failed to delete ID document", u.storage.Delete(ctx, user.IDDocumentPath.String),
			zap.String("user_id", id.String()))
	}
	if u.notifier != nil {
		warnIfFailed(ctx, "Failed to send rejection notice", u.notifier.SendAccountRejected(ctx, user, cleanText(reason)),
			zap.String("user_id", id.String()))
	}
	return nil
}

// ListUsers lists accounts matching filter
func (u *AdminUsecase) ListUsers(ctx context.Context, filter entities.UserFilter, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	filter.Search = cleanText(filter.Search)
	return u.userRepo.List(ctx, filter, pagination)
}

// ListPendingApproval lists accounts waiting for admin approval
func (u *AdminUsecase) ListPendingApproval(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, entities.UserFilter{
		ApprovalStatus: entities.ApprovalPending,
		ExcludeEmail:   u.policy.MainAdminEmail,
	}, pagination)
}

// ListIDPending lists accounts with an uploaded, unreviewed ID document
func (u *AdminUsecase) ListIDPending(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, entities.UserFilter{
		IDStatus:      entities.IDSubmitted,
		HasIDDocument: true,
	}, pagination)
}

// ListUnverified lists accounts with any status short of terminal
func (u *AdminUsecase) ListUnverified(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, entities.UserFilter{
		NotVerified:  true,
		ExcludeEmail: u.policy.MainAdminEmail,
	}, pagination)
}

// ListUnverifiedAdmins lists admin accounts that cannot log in yet
func (u *AdminUsecase) ListUnverifiedAdmins(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, entities.UserFilter{
		Role:         entities.UserRoleAdmin,
		NotVerified:  true,
		ExcludeEmail: u.policy.MainAdminEmail,
	}, pagination)
}

// GetUserDetails returns the full account record
func (u *AdminUsecase) GetUserDetails(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// Stats counts accounts per role
func (u *AdminUsecase) Stats(ctx context.Context) (*UserStats, error) {
	counts := make(map[entities.UserRole]int64, 4)
	for _, role := range []entities.UserRole{
		entities.UserRoleAdmin, entities.UserRoleBuyer, entities.UserRoleSeller, entities.UserRoleAgent,
	} {
		n, err := u.userRepo.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return &UserStats{
		Admins:  counts[entities.UserRoleAdmin],
		Buyers:  counts[entities.UserRoleBuyer],
		Sellers: counts[entities.UserRoleSeller],
		Agents:  counts[entities.UserRoleAgent],
	}, nil
}
