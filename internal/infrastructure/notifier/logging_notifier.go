package notifier

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/logger"
	"go.uber.org/zap"
)

// LoggingNotifier writes notifications to the application log. It is used
// when no broker is configured.
type LoggingNotifier struct{}

// NewLoggingNotifier creates a notifier that only logs.
func NewLoggingNotifier() *LoggingNotifier {
	return &LoggingNotifier{}
}

// SendVerificationCode logs the code for the user.
func (n *LoggingNotifier) SendVerificationCode(ctx context.Context, user *entities.User, code string) error {
	logger.Info(ctx, "Verification code issued",
		zap.String("type", EventVerificationCode),
		zap.String("email", user.Email),
		zap.String("code", code),
	)
	return nil
}

// SendAccountRejected logs the rejection.
func (n *LoggingNotifier) SendAccountRejected(ctx context.Context, user *entities.User, reason string) error {
	logger.Info(ctx, "Account rejected",
		zap.String("type", EventAccountRejected),
		zap.String("email", user.Email),
		zap.String("reason", reason),
	)
	return nil
}

// Close is a no-op.
func (n *LoggingNotifier) Close() error {
	return nil
}
