package repository

import (
	"time"

	"github.com/noracond/noracond-backend/internal/domain"
	"gorm.io/gorm"
)

// ContactRow aggregate row for the contact directory: the latest message of
// each conversation a user participates in, joined with the counterpart
type ContactRow struct {
	CounterpartID string
	Content       string
	SentAt        time.Time
	Seq           int64
}

// ChatRepository message data access interface
type ChatRepository interface {
	Create(msg *domain.Message) error
	FindByID(id string) (*domain.Message, error)
	FindConversation(key string) ([]*domain.Message, error)
	FindConversationSince(key string, afterSeq int64) ([]*domain.Message, error)
	FindLatestPerContact(userID string) ([]*ContactRow, error)
	CountUnread(senderID, recipientID string) (int64, error)
	CountUnreadBySender(recipientID string) (map[string]int64, error)
	MarkConversationRead(senderID, recipientID string) error
	MarkConversationReadUpTo(senderID, recipientID string, maxSeq int64) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create inserts a new message row
func (r *chatRepository) Create(msg *domain.Message) error {
	return r.db.Create(msg).Error
}

// FindByID finds a message by id
func (r *chatRepository) FindByID(id string) (*domain.Message, error) {
	var msg domain.Message
	if err := r.db.Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindConversation returns the full history of a conversation,
// ascending by sent_at with seq breaking ties
func (r *chatRepository) FindConversation(key string) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Where("conversation_key = ?", key).
		Order("sent_at ASC, seq ASC").
		Find(&messages).Error
	return messages, err
}

// FindConversationSince returns messages strictly after the watermark,
// same ordering as FindConversation
func (r *chatRepository) FindConversationSince(key string, afterSeq int64) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Where("conversation_key = ? AND seq > ?", key, afterSeq).
		Order("sent_at ASC, seq ASC").
		Find(&messages).Error
	return messages, err
}

// FindLatestPerContact returns, in one aggregated query, the most recent
// message of every conversation the user participates in, newest first.
// One round-trip regardless of how many contacts the user has.
func (r *chatRepository) FindLatestPerContact(userID string) ([]*ContactRow, error) {
	var rows []*ContactRow
	err := r.db.Raw(`
		SELECT
			CASE WHEN m.sender_id = ? THEN m.recipient_id ELSE m.sender_id END AS counterpart_id,
			m.content,
			m.sent_at,
			m.seq
		FROM messages m
		JOIN (
			SELECT conversation_key, MAX(seq) AS max_seq
			FROM messages
			WHERE sender_id = ? OR recipient_id = ?
			GROUP BY conversation_key
		) latest ON m.conversation_key = latest.conversation_key AND m.seq = latest.max_seq
		ORDER BY m.sent_at DESC, m.seq DESC`,
		userID, userID, userID).Scan(&rows).Error
	return rows, err
}

// CountUnread counts unread messages sent by senderID to recipientID
func (r *chatRepository) CountUnread(senderID, recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Count(&count).Error
	return count, err
}

// CountUnreadBySender returns unread counts for a recipient grouped by
// sender, in a single query
func (r *chatRepository) CountUnreadBySender(recipientID string) (map[string]int64, error) {
	var rows []struct {
		SenderID string
		Count    int64
	}
	err := r.db.Model(&domain.Message{}).
		Select("sender_id, COUNT(*) AS count").
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.SenderID] = row.Count
	}
	return counts, nil
}

// MarkConversationRead transitions every unread message from senderID to
// recipientID to read. Idempotent: re-running affects zero rows.
func (r *chatRepository) MarkConversationRead(senderID, recipientID string) error {
	return r.db.Model(&domain.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Update("is_read", true).Error
}

// MarkConversationReadUpTo is the seq-bounded variant used by the polling
// path: a message that arrived after the poll's fetch keeps its unread flag.
func (r *chatRepository) MarkConversationReadUpTo(senderID, recipientID string, maxSeq int64) error {
	return r.db.Model(&domain.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ? AND seq <= ?", senderID, recipientID, false, maxSeq).
		Update("is_read", true).Error
}
