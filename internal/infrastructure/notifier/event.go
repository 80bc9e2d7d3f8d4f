package notifier

import (
	"time"

	"estate-market.backend/internal/domain/entities"
	"github.com/google/uuid"
)

const (
	EventVerificationCode = "user.verification_code"
	EventAccountRejected  = "user.account_rejected"
)

// Event is the payload published for every outbound notification. The
// mail relay consuming the topic renders it.
type Event struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Code       string    `json:"code,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

var nowFn = time.Now

func newEvent(eventType string, user *entities.User) Event {
	return Event{
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		OccurredAt: nowFn().UTC(),
	}
}
