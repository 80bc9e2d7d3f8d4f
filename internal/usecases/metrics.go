package usecases

import (
	"errors"

	domainerrors "estate-market.backend/internal/domain/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estate_market",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	shadowBlockedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "estate_market",
		Name:      "shadow_blocked_messages_total",
		Help:      "Messages stored as blocked because the recipient blocked the sender.",
	})

	reviewWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estate_market",
		Name:      "review_writes_total",
		Help:      "Review submissions by result.",
	}, []string{"result"})

	reportTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estate_market",
		Name:      "report_transitions_total",
		Help:      "Moderation transitions by target status.",
	}, []string{"status"})
)

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domainerrors.ErrEmailNotVerified):
		return "email_not_verified"
	case errors.Is(err, domainerrors.ErrIDNotVerified):
		return "id_not_verified"
	case errors.Is(err, domainerrors.ErrAccountPendingApproval):
		return "pending_approval"
	default:
		return "error"
	}
}
