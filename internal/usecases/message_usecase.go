package usecases

import (
	"context"
	"errors"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/domain/repositories"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageUsecase handles direct messages and block lists
type MessageUsecase struct {
	messageRepo repositories.MessageRepository
	blockRepo   repositories.BlockRepository
	userRepo    repositories.UserRepository
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(
	messageRepo repositories.MessageRepository,
	blockRepo repositories.BlockRepository,
	userRepo repositories.UserRepository,
) *MessageUsecase {
	return &MessageUsecase{
		messageRepo: messageRepo,
		blockRepo:   blockRepo,
		userRepo:    userRepo,
	}
}

func (u *MessageUsecase) resolveRecipient(ctx context.Context, ref string) (*entities.User, error) {
	id, email, isID := resolveUserRef(ref)
	var (
		user *entities.User
		err  error
	)
	if isID {
		user, err = u.userRepo.GetByID(ctx, id)
	} else {
		user, err = u.userRepo.GetByEmail(ctx, email)
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound("recipient not found")
	}
	return user, err
}

// Send stores a message. When the recipient has blocked the sender the
// message is kept but hidden from the recipient, and the sender gets the
// same response as for a delivered message.
func (u *MessageUsecase) Send(ctx context.Context, senderID uuid.UUID, input *entities.SendMessageInput) (*entities.Message, error) {
	content := cleanText(input.Content)
	if content == "" {
		return nil, invalidInput("message is empty")
	}

	recipient, err := u.resolveRecipient(ctx, input.Recipient)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, invalidInput("cannot message yourself")
	}

	blocked, err := u.blockRepo.Exists(ctx, recipient.ID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &entities.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		PropertyID:  input.PropertyID,
		Content:     content,
		IsBlocked:   blocked,
	}
	if err := u.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if blocked {
		shadowBlockedMessages.Inc()
		logger.Info(ctx, "Message stored as blocked",
			zap.String("message_id", msg.ID.String()),
			zap.String("recipient_id", recipient.ID.String()),
		)
	}
	return msg, nil
}

// Conversation returns both directions between userID and otherID, oldest
// first, as userID may see them.
func (u *MessageUsecase) Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]*entities.Message, error) {
	all, err := u.messageRepo.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	visible := make([]*entities.Message, 0, len(all))
	for _, msg := range all {
		if msg.VisibleTo(userID) {
			visible = append(visible, msg)
		}
	}
	return visible, nil
}

// HasUserContacted reports whether from has ever messaged to. The reverse
// direction is not considered.
func (u *MessageUsecase) HasUserContacted(ctx context.Context, from, to uuid.UUID) (bool, error) {
	return u.messageRepo.ExistsFromTo(ctx, from, to)
}

// Inbox lists messages received by userID, newest first
func (u *MessageUsecase) Inbox(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error) {
	return u.messageRepo.ListInbox(ctx, userID, pagination)
}

// Sent lists messages sent by userID, newest first
func (u *MessageUsecase) Sent(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error) {
	return u.messageRepo.ListSent(ctx, userID, pagination)
}

// ChatPartners lists the users userID has a visible conversation with.
// Deleted accounts are skipped.
func (u *MessageUsecase) ChatPartners(ctx context.Context, userID uuid.UUID) ([]*entities.ChatPartner, error) {
	ids, err := u.messageRepo.ListPartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	partners := make([]*entities.ChatPartner, 0, len(ids))
	for _, id := range ids {
		user, err := u.userRepo.GetByID(ctx, id)
		if errors.Is(err, domainerrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		partners = append(partners, &entities.ChatPartner{UserID: user.ID, Name: user.Name, Email: user.Email})
	}
	return partners, nil
}

// UnreadCount counts unread, unblocked messages addressed to userID
func (u *MessageUsecase) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return u.messageRepo.CountUnread(ctx, userID)
}

// MarkConversationRead marks every message from otherID to userID read
func (u *MessageUsecase) MarkConversationRead(ctx context.Context, userID, otherID uuid.UUID) (int64, error) {
	return u.messageRepo.MarkConversationRead(ctx, userID, otherID)
}

// Search finds messages visible to userID containing query
func (u *MessageUsecase) Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error) {
	query = cleanText(query)
	if query == "" {
		return nil, invalidInput("search query is empty")
	}
	return u.messageRepo.Search(ctx, userID, query)
}

// DeleteConversation removes both directions between userID and otherID
func (u *MessageUsecase) DeleteConversation(ctx context.Context, userID, otherID uuid.UUID) (int64, error) {
	n, err := u.messageRepo.DeleteConversation(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "Conversation deleted",
		zap.String("user_id", userID.String()),
		zap.String("other_id", otherID.String()),
		zap.Int64("messages", n),
	)
	return n, nil
}

// Block stops messages from blockedID reaching blockerID. Blocking twice
// is a no-op.
func (u *MessageUsecase) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return invalidInput("cannot block yourself")
	}
	if _, err := u.userRepo.GetByID(ctx, blockedID); err != nil {
		return err
	}
	return u.blockRepo.Create(ctx, &entities.Block{BlockerID: blockerID, BlockedID: blockedID})
}

// Unblock lifts a block. Unblocking a pair that is not blocked is a no-op.
func (u *MessageUsecase) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return u.blockRepo.Delete(ctx, blockerID, blockedID)
}

// ListBlocks lists the users blockerID has blocked
func (u *MessageUsecase) ListBlocks(ctx context.Context, blockerID uuid.UUID) ([]*entities.Block, error) {
	return u.blockRepo.ListByBlocker(ctx, blockerID)
}
