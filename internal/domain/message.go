package domain

import "time"

// MaxMessageLength upper bound on message content, matching the UI limit
const MaxMessageLength = 1000

// Message a direct message between two staff members (messages table).
// Rows are append-only: after creation only the read flag ever changes,
// and only from false to true.
//
// Seq is a monotonic insert counter assigned by the database. It breaks
// sent_at ties within a conversation and doubles as the polling watermark.
// It is the physical primary key so both PostgreSQL and the sqlite test
// database auto-increment it; the uuid ID is the identity exposed to clients.
type Message struct {
	Seq             int64     `gorm:"column:seq;primaryKey;autoIncrement" json:"-"`
	ID              string    `gorm:"column:id;type:uuid;uniqueIndex" json:"id"`
	ConversationKey string    `gorm:"column:conversation_key;size:80;index" json:"-"`
	Content         string    `gorm:"column:content;size:1000" json:"content"`
	SentAt          time.Time `gorm:"column:sent_at;index" json:"sent_at"`
	Read            bool      `gorm:"column:is_read;default:false" json:"read"`

	SenderID string `gorm:"column:sender_id;type:uuid;index" json:"sender_id"`
	Sender   *User  `gorm:"foreignKey:SenderID" json:"-"`

	RecipientID string `gorm:"column:recipient_id;type:uuid;index" json:"recipient_id"`
	Recipient   *User  `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// SendMessageRequest represents a send message request
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	SentAt        time.Time `json:"sent_at"`
	Read          bool      `json:"read"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	RecipientID   string    `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
}

// ToResponse converts Message to MessageResponse.
// Sender/recipient names come from the preloaded associations when present.
func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:          m.ID,
		Content:     m.Content,
		SentAt:      m.SentAt,
		Read:        m.Read,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.Name
	}
	if m.Recipient != nil {
		resp.RecipientName = m.Recipient.Name
	}
	return resp
}

// ContactEntry a counterpart derived from message history, with thread state
type ContactEntry struct {
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int64      `json:"unread_count"`
}
