// AngelaMos | 2026
// service.go

package messaging

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mercadito/internal/core"
)

func selfConversationError() *core.AppError {
	return core.NewAppError(
		core.ErrInvalidInput,
		"you cannot start a conversation with yourself",
		http.StatusBadRequest,
		"SELF_CONVERSATION",
	)
}

// UserLookup confirms the counterpart exists and is active.
type UserLookup interface {
	EnsureActive(ctx context.Context, userID int64) error
}

// Notifier receives message events after the transaction commits.
// Implementations must not block the caller.
type Notifier interface {
	MessageReceived(recipientID, senderID int64, preview string)
	EmailDelivery(recipientID int64, subject string)
}

// txRunner executes fn against a transaction-scoped Repository.
type txRunner func(ctx context.Context, fn func(Repository) error) error

type Service struct {
	repo     Repository
	inTx     txRunner
	users    UserLookup
	notifier Notifier
}

func NewService(
	db *sqlx.DB,
	users UserLookup,
	notifier Notifier,
) *Service {
	return &Service{
		repo: NewRepository(db),
		inTx: func(ctx context.Context, fn func(Repository) error) error {
			return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
				return fn(NewRepository(tx))
			})
		},
		users:    users,
		notifier: notifier,
	}
}

// Start returns the existing conversation for the pair or creates one,
// inside a transaction so two concurrent starts converge on a single
// row. The pair is normalized so argument order never matters.
func (s *Service) Start(
	ctx context.Context,
	userID, otherUserID int64,
) (*Conversation, bool, error) {
	if userID == otherUserID {
		return nil, false, selfConversationError()
	}

	if err := s.users.EnsureActive(ctx, otherUserID); err != nil {
		return nil, false, err
	}

	user1, user2 := NormalizePair(userID, otherUserID)

	var conv *Conversation
	created := false

	err := s.inTx(ctx, func(repo Repository) error {
		existing, err := repo.GetByPair(ctx, user1, user2)
		if err == nil {
			conv = existing
			return nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return err
		}

		conv = &Conversation{User1ID: user1, User2ID: user2}
		if err := repo.Create(ctx, conv); err != nil {
			return err
		}

		created = true
		return nil
	})
	if errors.Is(err, core.ErrDuplicateKey) {
		// Lost the insert race: a concurrent request committed the pair
		// between our lookup and insert. The row exists now, return it.
		existing, getErr := s.repo.GetByPair(ctx, user1, user2)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return conv, created, nil
}

func (s *Service) List(
	ctx context.Context,
	userID int64,
) ([]ConversationSummary, error) {
	return s.repo.ListSummaries(ctx, userID)
}

// Get enforces participant-only access, checking existence first.
func (s *Service) Get(
	ctx context.Context,
	userID, conversationID int64,
) (*Conversation, error) {
	return participantConversation(ctx, s.repo, userID, conversationID)
}

// SendMessage stores the message and bumps the conversation's activity
// timestamp in one transaction, with the participant check inside the
// same transaction, then hands both delivery events to the notifier.
func (s *Service) SendMessage(
	ctx context.Context,
	userID, conversationID int64,
	senderUsername string,
	req SendMessageRequest,
) (*Message, error) {
	message := &Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
	}

	var conv *Conversation

	err := s.inTx(ctx, func(repo Repository) error {
		found, err := participantConversation(ctx, repo, userID, conversationID)
		if err != nil {
			return err
		}
		conv = found

		if err := repo.InsertMessage(ctx, message); err != nil {
			return err
		}

		return repo.Touch(ctx, conversationID)
	})
	if err != nil {
		return nil, err
	}

	recipientID := conv.OtherParticipant(userID)
	s.notifier.MessageReceived(recipientID, userID, previewText(message.Content))
	s.notifier.EmailDelivery(
		recipientID,
		fmt.Sprintf("new message from %s", senderUsername),
	)

	return message, nil
}

// ListMessages returns the full thread in chronological order and
// marks the counterpart's unread messages read in the same transaction.
func (s *Service) ListMessages(
	ctx context.Context,
	userID, conversationID int64,
) ([]Message, error) {
	var messages []Message

	err := s.inTx(ctx, func(repo Repository) error {
		if _, err := participantConversation(ctx, repo, userID, conversationID); err != nil {
			return err
		}

		listed, err := repo.ListMessages(ctx, conversationID)
		if err != nil {
			return err
		}

		if err := repo.MarkRead(ctx, conversationID, userID); err != nil {
			return err
		}

		messages = listed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func participantConversation(
	ctx context.Context,
	repo Repository,
	userID, conversationID int64,
) (*Conversation, error) {
	conv, err := repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conv.HasParticipant(userID) {
		return nil, fmt.Errorf("get conversation: %w", core.ErrForbidden)
	}

	return conv, nil
}
