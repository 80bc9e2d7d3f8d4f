package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/crypto"
	"estate-market.backend/pkg/jwt"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	generateVerificationCode = crypto.GenerateVerificationCode
	newSessionID             = uuid.NewString
	authNow                  = time.Now
)

// AuthUsecase handles registration, login eligibility and account self-service
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	codeRepo   repositories.VerificationCodeRepository
	jwtService *jwt.JWTService
	sessions   SessionStore
	notifier   Notifier
	policy     AccountPolicy
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	codeRepo repositories.VerificationCodeRepository,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	notifier Notifier,
	policy AccountPolicy,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		codeRepo:   codeRepo,
		jwtService: jwtService,
		sessions:   sessions,
		notifier:   notifier,
		policy:     policy,
	}
}

// Register creates a new account and sends an email verification code.
// Buyers start approved; every other role waits for an admin.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	email := normalizeEmail(input.Email)
	name := cleanText(input.Name)
	role := entities.ParseUserRole(string(input.Role))

	if !role.Valid() {
		return nil, invalidInput("unknown role")
	}
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if !crypto.ValidateEmail(email) {
		return nil, domainerrors.ErrInvalidEmailFormat
	}
	if !crypto.ValidatePassword(input.Password) {
		return nil, domainerrors.ErrWeakPassword
	}
	if err := u.policy.checkDomain(role, email); err != nil {
		return nil, err
	}

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrDuplicateEmail
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:           name,
		Email:          email,
		PasswordHash:   passwordHash,
		Role:           role,
		EmailStatus:    entities.EmailPending,
		IDStatus:       entities.IDNotSubmitted,
		ApprovalStatus: initialApproval(role),
		GovernmentID:   cleanText(input.GovernmentID),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	warnIfFailed(ctx, "Failed to issue verification code", u.issueCode(ctx, user),
		zap.String("user_id", user.ID.String()))

	return user, nil
}

// issueCode stores a fresh code and hands it to the notifier. Only a
// storage failure is returned.
func (u *AuthUsecase) issueCode(ctx context.Context, user *entities.User) error {
	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	ttl := u.policy.VerificationCodeTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	err = u.codeRepo.Save(ctx, &entities.VerificationCode{
		Email:     normalizeEmail(user.Email),
		Code:      code,
		ExpiresAt: authNow().Add(ttl),
	})
	if err != nil {
		return err
	}

	if u.notifier != nil {
		warnIfFailed(ctx, "Failed to send verification code", u.notifier.SendVerificationCode(ctx, user, code),
			zap.String("user_id", user.ID.String()))
	}
	return nil
}

// Login authenticates a user and applies the role eligibility gate
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.authenticate(ctx, input)
	loginAttempts.WithLabelValues(loginOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user, input.UseSession)
}

func (u *AuthUsecase) authenticate(ctx context.Context, input *entities.LoginInput) (*entities.User, error) {
	email := normalizeEmail(input.Email)

	if u.policy.isMainAdminLogin(email, input.Password) {
		return u.EnsureMainAdmin(ctx)
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := loginGate(user, u.policy.IsMainAdmin(user.Email)); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *AuthUsecase) issueTokens(ctx context.Context, user *entities.User, useSession bool) (*entities.AuthResponse, error) {
	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if !useSession {
		return &entities.AuthResponse{
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
			ExpiresIn:    tokenPair.ExpiresIn,
			User:         user,
		}, nil
	}

	if u.sessions == nil {
		return nil, errors.New("session store not configured")
	}
	expiry := u.policy.SessionExpiry
	if expiry <= 0 {
		expiry = 120 * time.Minute
	}
	sessionID := newSessionID()
	err = u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:       user.ID.String(),
		Email:        user.Email,
		Role:         string(user.Role),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		CreatedAt:    authNow(),
	}, expiry)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		SessionID: sessionID,
		ExpiresIn: int64(expiry.Seconds()),
		User:      user,
	}, nil
}

// VerifyEmail confirms the account email with the code sent at
// registration. Expired codes are cleared.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) error {
	email := normalizeEmail(input.Email)
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.EmailStatus == entities.EmailVerified {
		return nil
	}

	code, err := u.codeRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidVerificationCode
		}
		return err
	}
	if code.Expired(authNow()) {
		warnIfFailed(ctx, "Failed to clear expired verification code", u.codeRepo.Delete(ctx, email))
		return domainerrors.ErrVerificationCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(code.Code), []byte(input.Code)) != 1 {
		return domainerrors.ErrInvalidVerificationCode
	}

	user.EmailStatus = entities.EmailVerified
	if err := u.userRepo.UpdateStatuses(ctx, user); err != nil {
		return err
	}
	warnIfFailed(ctx, "Failed to clear used verification code", u.codeRepo.Delete(ctx, email))

	logger.Info(ctx, "Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

// ResendCode replaces the pending verification code
func (u *AuthUsecase) ResendCode(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.EmailStatus == entities.EmailVerified {
		return domainerrors.NewError("email already verified", domainerrors.ErrBadRequest)
	}
	return u.issueCode(ctx, user)
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrUnauthorized, err)
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// Logout drops a server-side session. Token clients have nothing to revoke.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessions == nil {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// ChangePassword replaces the password after checking the current one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	if !crypto.ValidatePassword(input.NewPassword) {
		return domainerrors.ErrWeakPassword
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// UpdateProfile applies the provided profile fields
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := cleanText(*input.Name)
		if name == "" {
			return nil, invalidInput("name is required")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = cleanText(*input.Phone)
	}
	if input.Bio != nil {
		user.Bio = cleanText(*input.Bio)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetPublicProfile returns the view of a user other accounts may see
func (u *AuthUsecase) GetPublicProfile(ctx context.Context, id uuid.UUID) (*entities.PublicProfile, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// EnsureMainAdmin returns the main admin account, creating it with every
// status terminal when it does not exist yet.
func (u *AuthUsecase) EnsureMainAdmin(ctx context.Context) (*entities.User, error) {
	email := normalizeEmail(u.policy.MainAdminEmail)
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if !user.Verified() {
			user.MarkFullyVerified()
			if err := u.userRepo.UpdateStatuses(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(u.policy.MainAdminPassword)
	if err != nil {
		return nil, err
	}
	name := u.policy.MainAdminName
	if name == "" {
		name = "Main Admin"
	}
	user = &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleAdmin,
	}
	user.MarkFullyVerified()
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Main admin account created", zap.String("user_id", user.ID.String()))
	return user, nil
}
