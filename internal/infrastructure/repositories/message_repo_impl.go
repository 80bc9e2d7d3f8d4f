package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/infrastructure/models"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pairCondition = "(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)"

// MessageRepository implements message data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create stores a message
func (r *MessageRepository) Create(ctx context.Context, msg *entities.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = utils.GenerateUUIDv7()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m := &models.Message{
		ID:          msg.ID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		PropertyID:  msg.PropertyID,
		Content:     msg.Content,
		IsRead:      msg.IsRead,
		IsBlocked:   msg.IsBlocked,
		CreatedAt:   msg.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	var m models.Message
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toMessageEntity(&m), nil
}

// GetConversation returns every message exchanged between a and b, oldest first
func (r *MessageRepository) GetConversation(ctx context.Context, a, b uuid.UUID) ([]*entities.Message, error) {
	var rows []models.Message
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("("+pairCondition+")", a, b, b, a).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMessageEntities(rows), nil
}

// ListInbox lists unblocked messages received by recipientID, newest first
func (r *MessageRepository) ListInbox(ctx context.Context, recipientID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND is_blocked = ?", recipientID, false)
	return r.page(query, pagination)
}

// ListSent lists messages sent by senderID, newest first
func (r *MessageRepository) ListSent(ctx context.Context, senderID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ?", senderID)
	return r.page(query, pagination)
}

func (r *MessageRepository) page(query *gorm.DB, pagination utils.PaginationParams) ([]*entities.Message, int64, error) {
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	var rows []models.Message
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toMessageEntities(rows), totalCount, nil
}

// ExistsFromTo reports whether senderID ever messaged recipientID. Blocked
// messages count: the sender did make contact.
func (r *MessageRepository) ExistsFromTo(ctx context.Context, senderID, recipientID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Count(&count).Error
	return count > 0, err
}

// ListRecipientIDs returns everyone senderID has written to
func (r *MessageRepository) ListRecipientIDs(ctx context.Context, senderID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ?", senderID).
		Distinct().
		Pluck("recipient_id", &ids).Error
	return ids, err
}

// ListPartnerIDs returns everyone userID has exchanged visible messages with
func (r *MessageRepository) ListPartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var sentTo []uuid.UUID
	if err := db.Model(&models.Message{}).
		Where("sender_id = ?", userID).
		Distinct().
		Pluck("recipient_id", &sentTo).Error; err != nil {
		return nil, err
	}

	var receivedFrom []uuid.UUID
	if err := db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_blocked = ?", userID, false).
		Distinct().
		Pluck("sender_id", &receivedFrom).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(sentTo)+len(receivedFrom))
	partners := make([]uuid.UUID, 0, len(sentTo)+len(receivedFrom))
	for _, id := range append(sentTo, receivedFrom...) {
		if id == userID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		partners = append(partners, id)
	}
	return partners, nil
}

// CountUnread counts unread, unblocked messages addressed to recipientID
func (r *MessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ? AND is_blocked = ?", recipientID, false, false).
		Count(&count).Error
	return count, err
}

// MarkConversationRead marks everything senderID sent to recipientID as read
func (r *MessageRepository) MarkConversationRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", recipientID, senderID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// Search finds messages involving userID whose content contains query
func (r *MessageRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error) {
	term := "%" + strings.ToLower(query) + "%"
	var rows []models.Message
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("(sender_id = ? OR (recipient_id = ? AND is_blocked = ?))", userID, userID, false).
		Where("LOWER(content) LIKE ?", term).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMessageEntities(rows), nil
}

// DeleteConversation removes both directions between a and b
func (r *MessageRepository) DeleteConversation(ctx context.Context, a, b uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("("+pairCondition+")", a, b, b, a).
		Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

func toMessageEntities(rows []models.Message) []*entities.Message {
	out := make([]*entities.Message, 0, len(rows))
	for i := range rows {
		out = append(out, toMessageEntity(&rows[i]))
	}
	return out
}

func toMessageEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		PropertyID:  m.PropertyID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		IsBlocked:   m.IsBlocked,
		CreatedAt:   m.CreatedAt,
	}
}

// BlockRepository implements block list operations
type BlockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create inserts the pair unless it already exists
func (r *BlockRepository) Create(ctx context.Context, block *entities.Block) error {
	if block.ID == uuid.Nil {
		block.ID = utils.GenerateUUIDv7()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	m := &models.Block{
		ID:        block.ID,
		BlockerID: block.BlockerID,
		BlockedID: block.BlockedID,
		CreatedAt: block.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

// Delete removes the pair. Removing a missing pair is not an error.
func (r *BlockRepository) Delete(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

// Exists reports whether blockerID has blocked blockedID
func (r *BlockRepository) Exists(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// ListByBlocker lists the users blockerID has blocked, newest first
func (r *BlockRepository) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entities.Block, error) {
	var rows []models.Block
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Block, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entities.Block{
			ID:        m.ID,
			BlockerID: m.BlockerID,
			BlockedID: m.BlockedID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
