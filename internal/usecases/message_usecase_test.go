package usecases_test

import (
	"context"
	"testing"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/usecases"
	"estate-market.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	messages *MockMessageRepository
	blocks   *MockBlockRepository
	users    *MockUserRepository
	uc       *usecases.MessageUsecase
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		messages: new(MockMessageRepository),
		blocks:   new(MockBlockRepository),
		users:    new(MockUserRepository),
	}
	f.uc = usecases.NewMessageUsecase(f.messages, f.blocks, f.users)
	return f
}

func TestMessageUsecase_Send_ByEmail(t *testing.T) {
	f := newMessageFixture()
	sender := uuid.New()
	recipient := &entities.User{ID: uuid.New(), Email: "seller@example.com"}
	propertyID := uuid.New()

	f.users.On("GetByEmail", mock.Anything, "seller@example.com").Return(recipient, nil).Once()
	f.blocks.On("Exists", mock.Anything, recipient.ID, sender).Return(false, nil).Once()
	f.messages.On("Create", mock.Anything, mock.MatchedBy(func(m *entities.Message) bool {
		return m.SenderID == sender && m.RecipientID == recipient.ID && !m.IsBlocked && *m.PropertyID == propertyID
	})).Return(nil).Once()

	msg, err := f.uc.Send(context.Background(), sender, &entities.SendMessageInput{
		Recipient: " Seller@Example.com ", Content: "Is it still available (2 rooms)?", PropertyID: &propertyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Is it still available 2 rooms?", msg.Content)
	f.messages.AssertExpectations(t)
}

func TestMessageUsecase_Send_ShadowBlocked(t *testing.T) {
	f := newMessageFixture()
	sender := uuid.New()
	recipient := &entities.User{ID: uuid.New()}

	f.users.On("GetByID", mock.Anything, recipient.ID).Return(recipient, nil).Once()
	f.blocks.On("Exists", mock.Anything, recipient.ID, sender).Return(true, nil).Once()
	f.messages.On("Create", mock.Anything, mock.MatchedBy(func(m *entities.Message) bool {
		return m.IsBlocked
	})).Return(nil).Once()

	msg, err := f.uc.Send(context.Background(), sender, &entities.SendMessageInput{Recipient: recipient.ID.String(), Content: "hello"})
	require.NoError(t, err)
	assert.NotNil(t, msg)
	f.messages.AssertExpectations(t)
}

func TestMessageUsecase_Send_Rejections(t *testing.T) {
	f := newMessageFixture()
	sender := uuid.New()
	ctx := context.Background()

	_, err := f.uc.Send(ctx, sender, &entities.SendMessageInput{Recipient: "x@example.com", Content: " <> "})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	_, err = f.uc.Send(ctx, sender, &entities.SendMessageInput{Recipient: "ghost@example.com", Content: "hi"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	f.users.On("GetByID", mock.Anything, sender).Return(&entities.User{ID: sender}, nil).Once()
	_, err = f.uc.Send(ctx, sender, &entities.SendMessageInput{Recipient: sender.String(), Content: "hi"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMessageUsecase_Conversation_HidesBlockedFromRecipient(t *testing.T) {
	f := newMessageFixture()
	a, b := uuid.New(), uuid.New()

	fromA := &entities.Message{ID: uuid.New(), SenderID: a, RecipientID: b, IsBlocked: true}
	fromB := &entities.Message{ID: uuid.New(), SenderID: b, RecipientID: a}
	f.messages.On("GetConversation", mock.Anything, mock.Anything, mock.Anything).Return([]*entities.Message{fromA, fromB}, nil)

	// b blocked a: b does not see a's message.
	seenByB, err := f.uc.Conversation(context.Background(), b, a)
	require.NoError(t, err)
	assert.Equal(t, []*entities.Message{fromB}, seenByB)

	// a still sees what a sent.
	seenByA, err := f.uc.Conversation(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, []*entities.Message{fromA, fromB}, seenByA)
}

func TestMessageUsecase_HasUserContacted(t *testing.T) {
	f := newMessageFixture()
	a, b := uuid.New(), uuid.New()
	f.messages.On("ExistsFromTo", mock.Anything, a, b).Return(true, nil).Once()
	f.messages.On("ExistsFromTo", mock.Anything, b, a).Return(false, nil).Once()

	ok, err := f.uc.HasUserContacted(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.uc.HasUserContacted(context.Background(), b, a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMessageUsecase_ChatPartners_SkipsDeletedUsers(t *testing.T) {
	f := newMessageFixture()
	me := uuid.New()
	alive := &entities.User{ID: uuid.New(), Name: "Alive", Email: "alive@example.com"}
	gone := uuid.New()

	f.messages.On("ListPartnerIDs", mock.Anything, me).Return([]uuid.UUID{alive.ID, gone}, nil).Once()
	f.users.On("GetByID", mock.Anything, alive.ID).Return(alive, nil).Once()
	f.users.On("GetByID", mock.Anything, gone).Return(nil, domainerrors.ErrNotFound).Once()

	partners, err := f.uc.ChatPartners(context.Background(), me)
	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, "Alive", partners[0].Name)
}

func TestMessageUsecase_Passthroughs(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	me, other := uuid.New(), uuid.New()
	page := utils.GetPaginationParams(1, 20)

	f.messages.On("ListInbox", mock.Anything, me, page).Return([]*entities.Message{}, int64(0), nil).Once()
	f.messages.On("ListSent", mock.Anything, me, page).Return([]*entities.Message{}, int64(0), nil).Once()
	f.messages.On("CountUnread", mock.Anything, me).Return(int64(3), nil).Once()
	f.messages.On("MarkConversationRead", mock.Anything, me, other).Return(int64(2), nil).Once()
	f.messages.On("DeleteConversation", mock.Anything, me, other).Return(int64(5), nil).Once()
	f.messages.On("Search", mock.Anything, me, "garden").Return([]*entities.Message{}, nil).Once()

	_, _, err := f.uc.Inbox(ctx, me, page)
	require.NoError(t, err)
	_, _, err = f.uc.Sent(ctx, me, page)
	require.NoError(t, err)
	n, err := f.uc.UnreadCount(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = f.uc.MarkConversationRead(ctx, me, other)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = f.uc.DeleteConversation(ctx, me, other)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	_, err = f.uc.Search(ctx, me, " garden ")
	require.NoError(t, err)
	_, err = f.uc.Search(ctx, me, "  ")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.messages.AssertExpectations(t)
}

func TestMessageUsecase_BlockUnblock(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	me, other := uuid.New(), uuid.New()

	assert.ErrorIs(t, f.uc.Block(ctx, me, me), domainerrors.ErrInvalidInput)

	f.users.On("GetByID", mock.Anything, other).Return(&entities.User{ID: other}, nil).Twice()
	f.blocks.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Block) bool {
		return b.BlockerID == me && b.BlockedID == other
	})).Return(nil).Twice()
	require.NoError(t, f.uc.Block(ctx, me, other))
	require.NoError(t, f.uc.Block(ctx, me, other))

	missing := uuid.New()
	f.users.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	assert.ErrorIs(t, f.uc.Block(ctx, me, missing), domainerrors.ErrNotFound)

	f.blocks.On("Delete", mock.Anything, me, other).Return(nil).Twice()
	require.NoError(t, f.uc.Unblock(ctx, me, other))
	require.NoError(t, f.uc.Unblock(ctx, me, other))

	f.blocks.On("ListByBlocker", mock.Anything, me).Return([]*entities.Block{}, nil).Once()
	blocks, err := f.uc.ListBlocks(ctx, me)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
