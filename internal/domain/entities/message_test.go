package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestMessage_VisibleTo(t *testing.T) {
	sender, recipient, stranger := uuid.New(), uuid.New(), uuid.New()

	m := &Message{SenderID: sender, RecipientID: recipient}
	if !m.VisibleTo(sender) || !m.VisibleTo(recipient) {
		t.Fatal("expected plain message visible to both parties")
	}
	if m.VisibleTo(stranger) {
		t.Fatal("expected message hidden from third parties")
	}

	m.IsBlocked = true
	if !m.VisibleTo(sender) {
		t.Fatal("expected shadow-blocked message visible to sender")
	}
	if m.VisibleTo(recipient) {
		t.Fatal("expected shadow-blocked message hidden from recipient")
	}
}
