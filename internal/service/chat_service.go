package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/repository"
	"github.com/noracond/noracond-backend/pkg/cache"
	"github.com/noracond/noracond-backend/pkg/logger"
	"gorm.io/gorm"
)

// ChatService business logic for the internal direct-messaging subsystem.
//
// A conversation is the unordered pair of two users; its identity is the
// canonical key computed by domain.ConversationKey, stored on every message
// row. Delivery is client polling: NewMessages with the last seen message id
// as watermark.
type ChatService interface {
	SendMessage(senderID string, req *domain.SendMessageRequest) (*domain.MessageResponse, error)
	GetConversation(callerID, otherUserID string) ([]*domain.MessageResponse, error)
	NewMessages(callerID, otherUserID, sinceMessageID string) ([]*domain.MessageResponse, error)
	GetContacts(callerID string) ([]*domain.ContactEntry, error)
	MarkConversationRead(callerID, otherUserID string) error
	UnreadCount(fromUserID, toUserID string) (int64, error)
}

type chatService struct {
	repo     repository.ChatRepository
	userRepo repository.UserRepository
	cache    cache.Service
}

// NewChatService creates a new ChatService
func NewChatService(repo repository.ChatRepository, userRepo repository.UserRepository, cacheSvc cache.Service) ChatService {
	return &chatService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheSvc,
	}
}

// SendMessage validates and persists a message, returning it with both
// display names resolved so the client can render it immediately
func (s *chatService) SendMessage(senderID string, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	if senderID == req.RecipientID {
		return nil, common.ErrSelfMessage
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.ErrEmptyContent
	}
	if len([]rune(content)) > domain.MaxMessageLength {
		return nil, common.ErrContentTooLong
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.userRepo.FindByID(req.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRecipientAbsent
		}
		return nil, err
	}

	msg := &domain.Message{
		ID:              uuid.New().String(),
		ConversationKey: domain.ConversationKey(senderID, req.RecipientID),
		Content:         content,
		SentAt:          time.Now().UTC(),
		SenderID:        senderID,
		RecipientID:     req.RecipientID,
	}

	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}

	msg.Sender = sender
	msg.Recipient = recipient

	s.invalidateContacts(senderID, req.RecipientID)

	return msg.ToResponse(), nil
}

// GetConversation returns the full ordered history between the caller and
// the other user, and marks the (other -> caller) direction as read:
// opening a chat means the caller has seen it.
// An unknown counterpart yields an empty history, not an error.
func (s *chatService) GetConversation(callerID, otherUserID string) ([]*domain.MessageResponse, error) {
	key := domain.ConversationKey(callerID, otherUserID)
	messages, err := s.repo.FindConversation(key)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkConversationRead(otherUserID, callerID); err != nil {
		// the fetch itself succeeded; the next poll re-attempts marking
		logger.Get().Warn().Err(err).Msg("mark-read on conversation view failed")
	} else {
		s.invalidateContacts(callerID, otherUserID)
	}

	return s.decorate(messages)
}

// NewMessages returns messages after the watermark message id. An absent or
// unknown watermark returns the full history. The returned batch (and only
// that batch) is marked read: a message arriving between the fetch and the
// mark keeps its unread flag for the next poll.
func (s *chatService) NewMessages(callerID, otherUserID, sinceMessageID string) ([]*domain.MessageResponse, error) {
	key := domain.ConversationKey(callerID, otherUserID)

	var afterSeq int64
	if sinceMessageID != "" {
		watermark, err := s.repo.FindByID(sinceMessageID)
		if err == nil {
			afterSeq = watermark.Seq
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var messages []*domain.Message
	var err error
	if afterSeq > 0 {
		messages, err = s.repo.FindConversationSince(key, afterSeq)
	} else {
		messages, err = s.repo.FindConversation(key)
	}
	if err != nil {
		return nil, err
	}

	if len(messages) > 0 {
		maxSeq := messages[len(messages)-1].Seq
		if err := s.repo.MarkConversationReadUpTo(otherUserID, callerID, maxSeq); err != nil {
			logger.Get().Warn().Err(err).Msg("mark-read on poll failed")
		} else {
			s.invalidateContacts(callerID, otherUserID)
		}
	}

	return s.decorate(messages)
}

// GetContacts derives the caller's contact list from message history:
// one entry per counterpart, last message preview, unread count, ordered by
// most recent thread first. Cached briefly when Redis is available.
func (s *chatService) GetContacts(callerID string) ([]*domain.ContactEntry, error) {
	ctx := context.Background()

	var cached []*domain.ContactEntry
	if err := s.cache.GetContacts(ctx, callerID, &cached); err == nil {
		return cached, nil
	}

	rows, err := s.repo.FindLatestPerContact(callerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*domain.ContactEntry{}, nil
	}

	unread, err := s.repo.CountUnreadBySender(callerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.CounterpartID
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	contacts := make([]*domain.ContactEntry, 0, len(rows))
	for _, row := range rows {
		entry := &domain.ContactEntry{
			UserID:      row.CounterpartID,
			LastMessage: row.Content,
			UnreadCount: unread[row.CounterpartID],
		}
		sentAt := row.SentAt
		entry.LastMessageAt = &sentAt
		if u, ok := byID[row.CounterpartID]; ok {
			entry.Name = u.Name
			entry.Email = u.Email
		}
		contacts = append(contacts, entry)
	}

	if err := s.cache.SetContacts(ctx, callerID, contacts); err != nil {
		logger.Get().Warn().Err(err).Msg("contact cache write failed")
	}

	return contacts, nil
}

// MarkConversationRead marks everything the other user sent to the caller
// as read. Idempotent; the opposite direction is untouched.
func (s *chatService) MarkConversationRead(callerID, otherUserID string) error {
	if err := s.repo.MarkConversationRead(otherUserID, callerID); err != nil {
		return err
	}
	s.invalidateContacts(callerID, otherUserID)
	return nil
}

// UnreadCount counts messages from fromUserID to toUserID not yet read
func (s *chatService) UnreadCount(fromUserID, toUserID string) (int64, error) {
	return s.repo.CountUnread(fromUserID, toUserID)
}

// decorate resolves sender/recipient display names for a message batch.
// A conversation involves at most two users, so this is one IN() fetch.
func (s *chatService) decorate(messages []*domain.Message) ([]*domain.MessageResponse, error) {
	responses := make([]*domain.MessageResponse, len(messages))
	if len(messages) == 0 {
		return responses, nil
	}

	idSet := make(map[string]struct{})
	for _, m := range messages {
		idSet[m.SenderID] = struct{}{}
		idSet[m.RecipientID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for i, m := range messages {
		m.Sender = byID[m.SenderID]
		m.Recipient = byID[m.RecipientID]
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// invalidateContacts drops both parties' cached contact lists after any
// event that changes previews or unread counts
func (s *chatService) invalidateContacts(userA, userB string) {
	if err := s.cache.InvalidateContacts(context.Background(), userA, userB); err != nil {
		logger.Get().Warn().Err(err).Msg("contact cache invalidation failed")
	}
}
