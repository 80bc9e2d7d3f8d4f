package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
	UserRoleAgent  UserRole = "agent"
)

// ParseUserRole normalises case and surrounding whitespace. The result may
// still be invalid.
func ParseUserRole(s string) UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleBuyer, UserRoleSeller, UserRoleAgent:
		return true
	}
	return false
}

// CanListProperties reports whether the role may own listings.
func (r UserRole) CanListProperties() bool {
	return r == UserRoleSeller || r == UserRoleAgent
}

// EmailStatus tracks whether the account email has been confirmed.
type EmailStatus string

const (
	EmailPending  EmailStatus = "PENDING"
	EmailVerified EmailStatus = "VERIFIED"
)

// IDStatus tracks the government ID document workflow.
type IDStatus string

const (
	IDNotSubmitted IDStatus = "NOT_SUBMITTED"
	IDSubmitted    IDStatus = "SUBMITTED"
	IDVerified     IDStatus = "VERIFIED"
)

// ApprovalStatus tracks admin approval of the account.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
)

// User is a marketplace account of any role.
type User struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"`
	Role           UserRole       `json:"role"`
	EmailStatus    EmailStatus    `json:"emailStatus"`
	IDStatus       IDStatus       `json:"idStatus"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	GovernmentID   string         `json:"governmentId,omitempty"`
	IDDocumentPath null.String    `json:"-"`
	Phone          string         `json:"phone,omitempty"`
	Bio            string         `json:"bio,omitempty"`
	AverageRating  float64        `json:"averageRating"`
	ReviewCount    int            `json:"reviewCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Verified is the aggregate of all three statuses at their terminal value.
func (u *User) Verified() bool {
	return u.EmailStatus == EmailVerified &&
		u.IDStatus == IDVerified &&
		u.ApprovalStatus == ApprovalApproved
}

// MarkFullyVerified moves every status to its terminal value.
func (u *User) MarkFullyVerified() {
	u.EmailStatus = EmailVerified
	u.IDStatus = IDVerified
	u.ApprovalStatus = ApprovalApproved
}

// PublicProfile is the subset of a user visible to other accounts.
type PublicProfile struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Role          UserRole  `json:"role"`
	Bio           string    `json:"bio,omitempty"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	Verified      bool      `json:"isVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Profile returns the public view of u.
func (u *User) Profile() *PublicProfile {
	return &PublicProfile{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role,
		Bio:           u.Bio,
		AverageRating: u.AverageRating,
		ReviewCount:   u.ReviewCount,
		Verified:      u.Verified(),
		CreatedAt:     u.CreatedAt,
	}
}

// UserFilter narrows admin user listings. Zero values mean no constraint.
type UserFilter struct {
	Search         string
	Role           UserRole
	EmailStatus    EmailStatus
	IDStatus       IDStatus
	ApprovalStatus ApprovalStatus
	NotVerified    bool
	HasIDDocument  bool
	ExcludeEmail   string
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Email        string   `json:"email" binding:"required"`
	Password     string   `json:"password" binding:"required"`
	Role         UserRole `json:"role" binding:"required"`
	GovernmentID string   `json:"governmentId" binding:"max=64"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // store tokens in Redis and return a session id
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
	User         *User  `json:"user"`
}

// VerifyEmailInput confirms an email with the code sent at registration.
type VerifyEmailInput struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// ResendCodeInput requests a fresh verification code.
type ResendCodeInput struct {
	Email string `json:"email" binding:"required"`
}

// RefreshTokenInput exchanges a refresh token for a new pair.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateProfileInput carries optional profile changes.
type UpdateProfileInput struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
	Bio   *string `json:"bio" binding:"omitempty,max=2000"`
}

// RejectUserInput carries the admin's reason for deleting an account.
type RejectUserInput struct {
	Reason string `json:"reason" binding:"max=500"`
}

// VerificationCode is a pending email confirmation.
type VerificationCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the code is past its expiry at now.
func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
