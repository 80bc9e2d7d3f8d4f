package usecases

import (
	"strings"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
)

// AccountPolicy holds the fixed account rules: the main admin identity,
// the reserved admin email domain and verification/session lifetimes.
type AccountPolicy struct {
	MainAdminEmail      string
	MainAdminPassword   string
	MainAdminName       string
	AdminEmailDomain    string
	VerificationCodeTTL time.Duration
	SessionExpiry       time.Duration
}

// IsMainAdmin reports whether email identifies the main admin.
func (p AccountPolicy) IsMainAdmin(email string) bool {
	return p.MainAdminEmail != "" && normalizeEmail(email) == normalizeEmail(p.MainAdminEmail)
}

func (p AccountPolicy) isMainAdminLogin(email, password string) bool {
	return p.IsMainAdmin(email) && p.MainAdminPassword != "" && password == p.MainAdminPassword
}

// checkDomain enforces that admins, and only admins, use the reserved domain.
func (p AccountPolicy) checkDomain(role entities.UserRole, email string) error {
	if p.AdminEmailDomain == "" {
		return nil
	}
	reserved := strings.HasSuffix(normalizeEmail(email), strings.ToLower(p.AdminEmailDomain))
	if role == entities.UserRoleAdmin && !reserved {
		return domainerrors.ErrReservedDomain
	}
	if role != entities.UserRoleAdmin && reserved {
		return domainerrors.ErrReservedDomain
	}
	return nil
}

// initialApproval is the approval status a new account starts in. Buyers
// have no documents to review.
func initialApproval(role entities.UserRole) entities.ApprovalStatus {
	if role == entities.UserRoleBuyer {
		return entities.ApprovalApproved
	}
	return entities.ApprovalPending
}

// loginGate decides whether a user whose password already matched may log
// in. Checks run in order and the first failure wins.
func loginGate(user *entities.User, mainAdmin bool) error {
	if mainAdmin {
		return nil
	}
	if user.EmailStatus != entities.EmailVerified {
		return domainerrors.ErrEmailNotVerified
	}
	switch user.Role {
	case entities.UserRoleBuyer:
		return nil
	case entities.UserRoleAdmin:
		if !user.Verified() {
			return domainerrors.ErrAccountPendingApproval
		}
		return nil
	case entities.UserRoleSeller, entities.UserRoleAgent:
		if user.IDStatus != entities.IDVerified {
			return domainerrors.ErrIDNotVerified
		}
		if user.ApprovalStatus != entities.ApprovalApproved {
			return domainerrors.ErrAccountPendingApproval
		}
		return nil
	default:
		return domainerrors.ErrForbidden
	}
}
