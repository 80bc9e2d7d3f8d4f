package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/pkg/redis"
)

const verificationKeyPrefix = "verify:"

// Expired codes are kept this long past expiry so a late attempt reports
// expiry instead of an unknown code.
const expiredCodeRetention = 24 * time.Hour

var (
	setCodeValue = redis.Set
	getCodeValue = redis.Get
	delCodeValue = redis.Del
)

// VerificationCodeRepository stores pending email codes in Redis
type VerificationCodeRepository struct{}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository() *VerificationCodeRepository {
	return &VerificationCodeRepository{}
}

func verificationKey(email string) string {
	return verificationKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Save replaces any pending code for the email
func (r *VerificationCodeRepository) Save(ctx context.Context, code *entities.VerificationCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return err
	}
	ttl := time.Until(code.ExpiresAt) + expiredCodeRetention
	return setCodeValue(ctx, verificationKey(code.Email), string(payload), ttl)
}

// Get returns the pending code for the email
func (r *VerificationCodeRepository) Get(ctx context.Context, email string) (*entities.VerificationCode, error) {
	raw, err := getCodeValue(ctx, verificationKey(email))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	var code entities.VerificationCode
	if err := json.Unmarshal([]byte(raw), &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// Delete clears the pending code for the email
func (r *VerificationCodeRepository) Delete(ctx context.Context, email string) error {
	return delCodeValue(ctx, verificationKey(email))
}
