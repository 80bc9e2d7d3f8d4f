package handlers

import (
	"context"
	"net/http"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/internal/interfaces/http/response"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type messageService interface {
	Send(ctx context.Context, senderID uuid.UUID, input *entities.SendMessageInput) (*entities.Message, error)
	Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]*entities.Message, error)
	HasUserContacted(ctx context.Context, from, to uuid.UUID) (bool, error)
	Inbox(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error)
	Sent(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Message, int64, error)
	ChatPartners(ctx context.Context, userID uuid.UUID) ([]*entities.ChatPartner, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkConversationRead(ctx context.Context, userID, otherID uuid.UUID) (int64, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error)
	DeleteConversation(ctx context.Context, userID, otherID uuid.UUID) (int64, error)
	Block(ctx context.Context, blockerID, blockedID uuid.UUID) error
	Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	ListBlocks(ctx context.Context, blockerID uuid.UUID) ([]*entities.Block, error)
}

// MessageHandler handles direct messages and block lists
type MessageHandler struct {
	messages messageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messages messageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// callerAndPeer resolves the caller and the :userId path parameter.
func callerAndPeer(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	otherID, ok := uuidParam(c, "userId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, otherID, true
}

// Send delivers a message to a user addressed by id or email
// POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	senderID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.SendMessageInput
	if !bindJSON(c, &input) {
		return
	}

	message, err := h.messages.Send(c.Request.Context(), senderID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, message)
}

// Conversation returns the messages exchanged with another user
// GET /api/v1/messages/conversations/:userId
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID, otherID, ok := callerAndPeer(c)
	if !ok {
		return
	}
	messages, err := h.messages.Conversation(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if messages == nil {
		messages = []*entities.Message{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": messages})
}

// MarkConversationRead marks messages from another user as read
// POST /api/v1/messages/conversations/:userId/read
func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	userID, otherID, ok := callerAndPeer(c)
	if !ok {
		return
	}
	updated, err := h.messages.MarkConversationRead(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// DeleteConversation removes every message between the caller and another user
// DELETE /api/v1/messages/conversations/:userId
func (h *MessageHandler) DeleteConversation(c *gin.Context) {
	userID, otherID, ok := callerAndPeer(c)
	if !ok {
		return
	}
	deleted, err := h.messages.DeleteConversation(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// HasContacted reports whether the caller has messaged another user
// GET /api/v1/messages/contacted/:userId
func (h *MessageHandler) HasContacted(c *gin.Context) {
	userID, otherID, ok := callerAndPeer(c)
	if !ok {
		return
	}
	contacted, err := h.messages.HasUserContacted(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contacted": contacted})
}

// Inbox lists received messages, newest first
// GET /api/v1/messages/inbox
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	pagination := paginationFromQuery(c)
	messages, total, err := h.messages.Inbox(c.Request.Context(), userID, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, messages, total, pagination)
}

// Sent lists sent messages, newest first
// GET /api/v1/messages/sent
func (h *MessageHandler) Sent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	pagination := paginationFromQuery(c)
	messages, total, err := h.messages.Sent(c.Request.Context(), userID, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, messages, total, pagination)
}

// ChatPartners lists users the caller has exchanged messages with
// GET /api/v1/messages/partners
func (h *MessageHandler) ChatPartners(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	partners, err := h.messages.ChatPartners(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if partners == nil {
		partners = []*entities.ChatPartner{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": partners})
}

// UnreadCount returns the number of unread visible messages
// GET /api/v1/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	count, err := h.messages.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// Search finds the caller's messages containing q
// GET /api/v1/messages/search?q=
func (h *MessageHandler) Search(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	messages, err := h.messages.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if messages == nil {
		messages = []*entities.Message{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": messages})
}

// Block stops delivery of messages from another user
// POST /api/v1/blocks/:userId
func (h *MessageHandler) Block(c *gin.Context) {
	userID, otherID, ok := callerAndPeer(c)
	if !ok {
		return
	}
	if err := h.messages.Block(c.Request.Context(), userID, otherID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User blocked"})
}

// Unblock lifts a block
// DELETE /api/v1/blocks/:userId
func (h *MessageHandler) Unblock(c *gin.Context) {
	userID, otherID, ok := callerAndPeer(c)
	if !ok {
		return
	}
	if err := h.messages.Unblock(c.Request.Context(), userID, otherID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User unblocked"})
}

// ListBlocks lists the users the caller has blocked
// GET /api/v1/blocks
func (h *MessageHandler) ListBlocks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	blocks, err := h.messages.ListBlocks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if blocks == nil {
		blocks = []*entities.Block{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": blocks})
}
