package entities

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. IsBlocked is decided at
// send time from the recipient's block list and never changes afterwards.
type Message struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"senderId"`
	RecipientID uuid.UUID  `json:"recipientId"`
	PropertyID  *uuid.UUID `json:"propertyId,omitempty"`
	Content     string     `json:"content"`
	IsRead      bool       `json:"isRead"`
	IsBlocked   bool       `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// VisibleTo reports whether viewer may see the message. Shadow-blocked
// messages stay visible to their sender only.
func (m *Message) VisibleTo(viewer uuid.UUID) bool {
	if m.SenderID == viewer {
		return true
	}
	return m.RecipientID == viewer && !m.IsBlocked
}

// SendMessageInput addresses a message by recipient email or id.
type SendMessageInput struct {
	Recipient  string     `json:"recipient" binding:"required"`
	Content    string     `json:"content" binding:"required,max=5000"`
	PropertyID *uuid.UUID `json:"propertyId"`
}

// Block is a directional block: Blocker no longer receives from Blocked.
type Block struct {
	ID        uuid.UUID `json:"id"`
	BlockerID uuid.UUID `json:"blockerId"`
	BlockedID uuid.UUID `json:"blockedId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatPartner summarizes a counterpart in the user's conversations.
type ChatPartner struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}
