package repositories

import (
	"context"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
)

// MessageRepository defines message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *entities.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error)
	// GetConversation returns both directions between a and b, oldest first.
	GetConversation(ctx context.Context, a, b uuid.UUID) ([]*entities.Message, error)
	// ListInbox returns unblocked messages addressed to recipient, newest first.
	ListInbox(ctx context.Context, recipientID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error)
	ListSent(ctx context.Context, senderID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error)
	// ExistsFromTo reports whether sender has ever messaged recipient.
	ExistsFromTo(ctx context.Context, senderID, recipientID uuid.UUID) (bool, error)
	ListRecipientIDs(ctx context.Context, senderID uuid.UUID) ([]uuid.UUID, error)
	ListPartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkConversationRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error)
	DeleteConversation(ctx context.Context, a, b uuid.UUID) (int64, error)
}

// BlockRepository defines block list operations
type BlockRepository interface {
	// Create is a no-op when the pair already exists.
	Create(ctx context.Context, block *entities.Block) error
	Delete(ctx context.Context, blockerID, blockedID uuid.UUID) error
	Exists(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
	ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entities.Block, error)
}
