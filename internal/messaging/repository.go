// AngelaMos | 2026
// repository.go

package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type Repository interface {
	GetByPair(ctx context.Context, user1ID, user2ID int64) (*Conversation, error)
	Create(ctx context.Context, conv *Conversation) error
	GetByID(ctx context.Context, id int64) (*Conversation, error)
	ListSummaries(ctx context.Context, userID int64) ([]ConversationSummary, error)
	Touch(ctx context.Context, conversationID int64) error
	InsertMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context, conversationID int64) ([]Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByPair(
	ctx context.Context,
	user1ID, user2ID int64,
) (*Conversation, error) {
	query := `
		SELECT id, user1_id, user2_id, is_active, created_at, updated_at
		FROM conversations
		WHERE user1_id = $1 AND user2_id = $2 AND is_active = TRUE`

	var conv Conversation
	err := r.db.GetContext(ctx, &conv, query, user1ID, user2ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get conversation by pair: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation by pair: %w", err)
	}

	return &conv, nil
}

func (r *repository) Create(ctx context.Context, conv *Conversation) error {
	query := `
		INSERT INTO conversations (user1_id, user2_id)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at, updated_at`

	err := r.db.GetContext(ctx, conv, query, conv.User1ID, conv.User2ID)
	if err != nil {
		if core.IsUniqueViolation(err, "conversations_user1_id_user2_id_key") {
			return fmt.Errorf("create conversation: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create conversation: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Conversation, error) {
	query := `
		SELECT id, user1_id, user2_id, is_active, created_at, updated_at
		FROM conversations
		WHERE id = $1 AND is_active = TRUE`

	var conv Conversation
	err := r.db.GetContext(ctx, &conv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get conversation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return &conv, nil
}

type summaryRow struct {
	ID             int64      `db:"id"`
	UpdatedAt      time.Time  `db:"updated_at"`
	OtherID        int64      `db:"other_id"`
	OtherUsername  string     `db:"other_username"`
	OtherFirstName string     `db:"other_first_name"`
	OtherLastName  string     `db:"other_last_name"`
	LastContent    *string    `db:"last_content"`
	LastSentAt     *time.Time `db:"last_sent_at"`
	UnreadCount    int        `db:"unread_count"`
}

func (r *repository) ListSummaries(
	ctx context.Context,
	userID int64,
) ([]ConversationSummary, error) {
	query := `
		SELECT c.id, c.updated_at,
		       u.id AS other_id,
		       u.username AS other_username,
		       u.first_name AS other_first_name,
		       u.last_name AS other_last_name,
		       lm.content AS last_content,
		       lm.created_at AS last_sent_at,
		       (SELECT COUNT(*)
		        FROM messages m
		        WHERE m.conversation_id = c.id
		          AND m.sender_id <> $1
		          AND m.is_read = FALSE) AS unread_count
		FROM conversations c
		JOIN users u
		  ON u.id = CASE WHEN c.user1_id = $1 THEN c.user2_id
		                 ELSE c.user1_id END
		LEFT JOIN LATERAL (
			SELECT content, created_at
			FROM messages m
			WHERE m.conversation_id = c.id
			ORDER BY m.created_at DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.is_active = TRUE
		  AND (c.user1_id = $1 OR c.user2_id = $1)
		ORDER BY c.updated_at DESC`

	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summary := ConversationSummary{
			ID: row.ID,
			OtherUser: OtherUserInfo{
				ID:        row.OtherID,
				Username:  row.OtherUsername,
				FirstName: row.OtherFirstName,
				LastName:  row.OtherLastName,
			},
			LastSentAt:  row.LastSentAt,
			UnreadCount: row.UnreadCount,
			UpdatedAt:   row.UpdatedAt,
		}
		if row.LastContent != nil {
			preview := previewText(*row.LastContent)
			summary.LastMessage = &preview
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (r *repository) Touch(
	ctx context.Context,
	conversationID int64,
) error {
	query := `
		UPDATE conversations
		SET updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, conversationID); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}

	return nil
}

func (r *repository) InsertMessage(
	ctx context.Context,
	message *Message,
) error {
	query := `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at`

	err := r.db.GetContext(ctx, message, query,
		message.ConversationID,
		message.SenderID,
		message.Content,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

func (r *repository) ListMessages(
	ctx context.Context,
	conversationID int64,
) ([]Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, is_read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC`

	var messages []Message
	err := r.db.SelectContext(ctx, &messages, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}

func (r *repository) MarkRead(
	ctx context.Context,
	conversationID, readerID int64,
) error {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE conversation_id = $1
		  AND sender_id <> $2
		  AND is_read = FALSE`

	if _, err := r.db.ExecContext(ctx, query, conversationID, readerID); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}

	return nil
}
