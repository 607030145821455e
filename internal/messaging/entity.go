// AngelaMos | 2026
// entity.go

package messaging

import (
	"time"
	"unicode/utf8"
)

type Conversation struct {
	ID        int64     `db:"id"`
	User1ID   int64     `db:"user1_id"`
	User2ID   int64     `db:"user2_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the counterpart of userID. Callers must
// check HasParticipant first.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	SenderID       int64     `db:"sender_id"`
	Content        string    `db:"content"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}

// NormalizePair orders a user pair ascending so one conversation row
// serves both argument orders.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

const previewLength = 50

// previewText truncates message content to the listing preview length,
// counting runes so multi-byte text is never split.
func previewText(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}

	runes := []rune(content)
	return string(runes[:previewLength]) + "..."
}
