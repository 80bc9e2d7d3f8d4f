package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/pkg/crypto"
	"estate-market.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cleanText(s string) string {
	return strings.TrimSpace(crypto.SanitizeInput(strings.TrimSpace(s)))
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", domainerrors.ErrInvalidInput, msg)
}

// contentTypeFor returns the content type registered for filename's
// extension along with the lower-cased extension.
func contentTypeFor(filename string, allowed map[string]string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowed[ext]
	if !ok {
		return "", "", domainerrors.ErrUnsupportedFileType
	}
	return ext, contentType, nil
}

func checkUploadSize(size, limit int64) error {
	if size <= 0 {
		return invalidInput("file is empty")
	}
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	if size > limit {
		return domainerrors.ErrFileTooLarge
	}
	return nil
}

// resolveUserRef accepts either a user id or an email address.
func resolveUserRef(ref string) (uuid.UUID, string, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return id, "", true
	}
	return uuid.Nil, normalizeEmail(ref), false
}

// warnIfFailed logs err for best-effort side effects.
func warnIfFailed(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	logger.Warn(ctx, msg, append(fields, zap.Error(err))...)
}
