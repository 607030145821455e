// AngelaMos | 2026
// service_test.go

package messaging

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type fakeRepository struct {
	Repository

	conv       *Conversation
	pairMisses int
	createErr  error
	nextID     int64

	inserted []*Message
	touched  []int64
	marked   []int64
	thread   []Message
}

func (f *fakeRepository) GetByPair(
	_ context.Context,
	user1ID, user2ID int64,
) (*Conversation, error) {
	if f.pairMisses > 0 {
		f.pairMisses--
		return nil, fmt.Errorf("get conversation by pair: %w", core.ErrNotFound)
	}
	if f.conv != nil && f.conv.User1ID == user1ID && f.conv.User2ID == user2ID {
		return f.conv, nil
	}
	return nil, fmt.Errorf("get conversation by pair: %w", core.ErrNotFound)
}

func (f *fakeRepository) Create(_ context.Context, conv *Conversation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	conv.ID = f.nextID
	conv.IsActive = true
	f.conv = conv
	return nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	id int64,
) (*Conversation, error) {
	if f.conv != nil && f.conv.ID == id {
		return f.conv, nil
	}
	return nil, fmt.Errorf("get conversation: %w", core.ErrNotFound)
}

func (f *fakeRepository) Touch(_ context.Context, conversationID int64) error {
	f.touched = append(f.touched, conversationID)
	return nil
}

func (f *fakeRepository) InsertMessage(
	_ context.Context,
	message *Message,
) error {
	f.nextID++
	message.ID = f.nextID
	f.inserted = append(f.inserted, message)
	return nil
}

func (f *fakeRepository) ListMessages(
	_ context.Context,
	_ int64,
) ([]Message, error) {
	return f.thread, nil
}

func (f *fakeRepository) MarkRead(
	_ context.Context,
	_ int64,
	readerID int64,
) error {
	f.marked = append(f.marked, readerID)
	return nil
}

type fakeUserLookup struct {
	active map[int64]bool
}

func (f *fakeUserLookup) EnsureActive(_ context.Context, userID int64) error {
	if !f.active[userID] {
		return fmt.Errorf("ensure active: %w", core.ErrNotFound)
	}
	return nil
}

type notifierCall struct {
	kind        string
	recipientID int64
	senderID    int64
	detail      string
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) MessageReceived(recipientID, senderID int64, preview string) {
	f.calls = append(f.calls, notifierCall{
		kind:        "message",
		recipientID: recipientID,
		senderID:    senderID,
		detail:      preview,
	})
}

func (f *fakeNotifier) EmailDelivery(recipientID int64, subject string) {
	f.calls = append(f.calls, notifierCall{
		kind:        "email",
		recipientID: recipientID,
		detail:      subject,
	})
}

func newTestService(repo *fakeRepository) (*Service, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := &Service{
		repo: repo,
		inTx: func(ctx context.Context, fn func(Repository) error) error {
			return fn(repo)
		},
		users:    &fakeUserLookup{active: map[int64]bool{1: true, 2: true}},
		notifier: notifier,
	}
	return svc, notifier
}

func seedConversation(repo *fakeRepository) *Conversation {
	conv := &Conversation{ID: 10, User1ID: 1, User2ID: 2, IsActive: true}
	repo.conv = conv
	repo.nextID = conv.ID
	return conv
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a conversation for a new pair", func(t *testing.T) {
		repo := &fakeRepository{}
		svc, _ := newTestService(repo)

		conv, created, err := svc.Start(ctx, 2, 1)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(1), conv.User1ID)
		assert.Equal(t, int64(2), conv.User2ID)
	})

	t.Run("returns the existing conversation for the pair", func(t *testing.T) {
		repo := &fakeRepository{}
		existing := seedConversation(repo)
		svc, _ := newTestService(repo)

		conv, created, err := svc.Start(ctx, 2, 1)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, conv.ID)
	})

	t.Run("losing the insert race returns the committed row", func(t *testing.T) {
		repo := &fakeRepository{
			pairMisses: 1,
			createErr:  fmt.Errorf("create conversation: %w", core.ErrDuplicateKey),
		}
		existing := seedConversation(repo)
		svc, _ := newTestService(repo)

		conv, created, err := svc.Start(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, conv.ID)
	})

	t.Run("self conversation is rejected", func(t *testing.T) {
		svc, _ := newTestService(&fakeRepository{})

		_, _, err := svc.Start(ctx, 1, 1)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SELF_CONVERSATION", appErr.Code)
	})

	t.Run("unknown counterpart is not found", func(t *testing.T) {
		svc, _ := newTestService(&fakeRepository{})

		_, _, err := svc.Start(ctx, 1, 99)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("stores, touches and notifies the counterpart", func(t *testing.T) {
		repo := &fakeRepository{}
		seedConversation(repo)
		svc, notifier := newTestService(repo)

		message, err := svc.SendMessage(ctx, 1, 10, "maria", SendMessageRequest{
			Content: "hola, sigue disponible?",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), message.SenderID)

		require.Len(t, repo.inserted, 1)
		assert.Equal(t, []int64{10}, repo.touched)

		require.Len(t, notifier.calls, 2)
		assert.Equal(t, "message", notifier.calls[0].kind)
		assert.Equal(t, int64(2), notifier.calls[0].recipientID)
		assert.Equal(t, "hola, sigue disponible?", notifier.calls[0].detail)
		assert.Equal(t, "email", notifier.calls[1].kind)
		assert.Equal(t, int64(2), notifier.calls[1].recipientID)
		assert.Equal(t, "new message from maria", notifier.calls[1].detail)
	})

	t.Run("non-participant is forbidden and nothing is sent", func(t *testing.T) {
		repo := &fakeRepository{}
		seedConversation(repo)
		svc, notifier := newTestService(repo)

		_, err := svc.SendMessage(ctx, 3, 10, "intruso", SendMessageRequest{
			Content: "hola",
		})
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Empty(t, repo.inserted)
		assert.Empty(t, notifier.calls)
	})

	t.Run("unknown conversation is not found", func(t *testing.T) {
		svc, _ := newTestService(&fakeRepository{})

		_, err := svc.SendMessage(ctx, 1, 404, "maria", SendMessageRequest{
			Content: "hola",
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("lists the thread and marks it read", func(t *testing.T) {
		repo := &fakeRepository{
			thread: []Message{
				{ID: 1, ConversationID: 10, SenderID: 2, Content: "hola"},
				{ID: 2, ConversationID: 10, SenderID: 1, Content: "buenas"},
			},
		}
		seedConversation(repo)
		svc, _ := newTestService(repo)

		messages, err := svc.ListMessages(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, messages, 2)
		assert.Equal(t, []int64{1}, repo.marked)
	})

	t.Run("non-participant is forbidden", func(t *testing.T) {
		repo := &fakeRepository{}
		seedConversation(repo)
		svc, _ := newTestService(repo)

		_, err := svc.ListMessages(ctx, 3, 10)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}
