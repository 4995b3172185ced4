package service

import (
	"strings"
	"testing"
	"time"

	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/repository"
	"github.com/noracond/noracond-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- Mock ChatRepository ---

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) Create(msg *domain.Message) error {
	return m.Called(msg).Error(0)
}

func (m *mockChatRepo) FindByID(id string) (*domain.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockChatRepo) FindConversation(key string) ([]*domain.Message, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *mockChatRepo) FindConversationSince(key string, afterSeq int64) ([]*domain.Message, error) {
	args := m.Called(key, afterSeq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *mockChatRepo) FindLatestPerContact(userID string) ([]*repository.ContactRow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.ContactRow), args.Error(1)
}

func (m *mockChatRepo) CountUnread(senderID, recipientID string) (int64, error) {
	args := m.Called(senderID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChatRepo) CountUnreadBySender(recipientID string) (map[string]int64, error) {
	args := m.Called(recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockChatRepo) MarkConversationRead(senderID, recipientID string) error {
	return m.Called(senderID, recipientID).Error(0)
}

func (m *mockChatRepo) MarkConversationReadUpTo(senderID, recipientID string, maxSeq int64) error {
	return m.Called(senderID, recipientID, maxSeq).Error(0)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByIDs(ids []string) ([]*domain.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByID(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// --- Tests ---

func newChatTestService(repo *mockChatRepo, users *mockUserRepo) ChatService {
	return NewChatService(repo, users, cache.NewService(nil))
}

func testUser(id, name string) *domain.User {
	return &domain.User{ID: id, Name: name, Email: name + "@office.test"}
}

func TestSendMessage_Success(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	users.On("FindByID", "user-a").Return(testUser("user-a", "Ana"), nil)
	users.On("FindByID", "user-b").Return(testUser("user-b", "Bruno"), nil)
	repo.On("Create", mock.AnythingOfType("*domain.Message")).Return(nil)

	result, err := svc.SendMessage("user-a", &domain.SendMessageRequest{
		RecipientID: "user-b",
		Content:     "  Bom dia  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Bom dia", result.Content)
	assert.Equal(t, "user-a", result.SenderID)
	assert.Equal(t, "Ana", result.SenderName)
	assert.Equal(t, "Bruno", result.RecipientName)
	assert.False(t, result.Read)
	repo.AssertExpectations(t)
}

func TestSendMessage_ToSelf(t *testing.T) {
	svc := newChatTestService(new(mockChatRepo), new(mockUserRepo))

	result, err := svc.SendMessage("user-a", &domain.SendMessageRequest{
		RecipientID: "user-a",
		Content:     "note to self",
	})

	assert.ErrorIs(t, err, common.ErrSelfMessage)
	assert.Nil(t, result)
}

func TestSendMessage_WhitespaceContent(t *testing.T) {
	svc := newChatTestService(new(mockChatRepo), new(mockUserRepo))

	result, err := svc.SendMessage("user-a", &domain.SendMessageRequest{
		RecipientID: "user-b",
		Content:     "   \t\n  ",
	})

	assert.ErrorIs(t, err, common.ErrEmptyContent)
	assert.Nil(t, result)
}

func TestSendMessage_ContentTooLong(t *testing.T) {
	svc := newChatTestService(new(mockChatRepo), new(mockUserRepo))

	result, err := svc.SendMessage("user-a", &domain.SendMessageRequest{
		RecipientID: "user-b",
		Content:     strings.Repeat("x", domain.MaxMessageLength+1),
	})

	assert.ErrorIs(t, err, common.ErrContentTooLong)
	assert.Nil(t, result)
}

func TestSendMessage_UnknownRecipient(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	users.On("FindByID", "user-a").Return(testUser("user-a", "Ana"), nil)
	users.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	result, err := svc.SendMessage("user-a", &domain.SendMessageRequest{
		RecipientID: "ghost",
		Content:     "anyone there?",
	})

	assert.ErrorIs(t, err, common.ErrRecipientAbsent)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGetConversation_MarksIncomingRead(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	key := domain.ConversationKey("user-a", "user-b")
	messages := []*domain.Message{
		{Seq: 1, ID: "m1", ConversationKey: key, Content: "Hello", SenderID: "user-a", RecipientID: "user-b", SentAt: time.Now()},
		{Seq: 2, ID: "m2", ConversationKey: key, Content: "Hi back", SenderID: "user-b", RecipientID: "user-a", SentAt: time.Now()},
	}

	repo.On("FindConversation", key).Return(messages, nil)
	repo.On("MarkConversationRead", "user-b", "user-a").Return(nil)
	users.On("FindByIDs", mock.Anything).Return([]*domain.User{
		testUser("user-a", "Ana"),
		testUser("user-b", "Bruno"),
	}, nil)

	result, err := svc.GetConversation("user-a", "user-b")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "Hello", result[0].Content)
	assert.Equal(t, "Ana", result[0].SenderName)
	assert.Equal(t, "Bruno", result[1].SenderName)
	repo.AssertExpectations(t)
}

func TestGetConversation_UnknownCounterpart(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	key := domain.ConversationKey("user-a", "ghost")
	repo.On("FindConversation", key).Return([]*domain.Message{}, nil)
	repo.On("MarkConversationRead", "ghost", "user-a").Return(nil)

	result, err := svc.GetConversation("user-a", "ghost")

	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestNewMessages_WithWatermark(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	key := domain.ConversationKey("user-a", "user-b")
	newer := []*domain.Message{
		{Seq: 5, ID: "m5", ConversationKey: key, Content: "anything new?", SenderID: "user-b", RecipientID: "user-a", SentAt: time.Now()},
		{Seq: 7, ID: "m7", ConversationKey: key, Content: "yes", SenderID: "user-b", RecipientID: "user-a", SentAt: time.Now()},
	}

	repo.On("FindByID", "m3").Return(&domain.Message{Seq: 3, ID: "m3"}, nil)
	repo.On("FindConversationSince", key, int64(3)).Return(newer, nil)
	repo.On("MarkConversationReadUpTo", "user-b", "user-a", int64(7)).Return(nil)
	users.On("FindByIDs", mock.Anything).Return([]*domain.User{
		testUser("user-a", "Ana"),
		testUser("user-b", "Bruno"),
	}, nil)

	result, err := svc.NewMessages("user-a", "user-b", "m3")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	// only the fetched batch is marked read, bounded at seq 7
	repo.AssertCalled(t, "MarkConversationReadUpTo", "user-b", "user-a", int64(7))
}

func TestNewMessages_UnknownWatermarkReturnsFullHistory(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	key := domain.ConversationKey("user-a", "user-b")
	history := []*domain.Message{
		{Seq: 1, ID: "m1", ConversationKey: key, Content: "Hello", SenderID: "user-a", RecipientID: "user-b", SentAt: time.Now()},
	}

	repo.On("FindByID", "gone").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindConversation", key).Return(history, nil)
	repo.On("MarkConversationReadUpTo", "user-b", "user-a", int64(1)).Return(nil)
	users.On("FindByIDs", mock.Anything).Return([]*domain.User{
		testUser("user-a", "Ana"),
		testUser("user-b", "Bruno"),
	}, nil)

	result, err := svc.NewMessages("user-a", "user-b", "gone")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	repo.AssertCalled(t, "FindConversation", key)
}

func TestNewMessages_EmptyBatchSkipsMarkRead(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	key := domain.ConversationKey("user-a", "user-b")
	repo.On("FindByID", "m9").Return(&domain.Message{Seq: 9, ID: "m9"}, nil)
	repo.On("FindConversationSince", key, int64(9)).Return([]*domain.Message{}, nil)

	result, err := svc.NewMessages("user-a", "user-b", "m9")

	assert.NoError(t, err)
	assert.Empty(t, result)
	repo.AssertNotCalled(t, "MarkConversationReadUpTo", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetContacts(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	now := time.Now().UTC()
	rows := []*repository.ContactRow{
		{CounterpartID: "user-b", Content: "see you tomorrow", SentAt: now, Seq: 12},
		{CounterpartID: "user-c", Content: "contract signed", SentAt: now.Add(-time.Hour), Seq: 8},
	}

	repo.On("FindLatestPerContact", "user-a").Return(rows, nil)
	repo.On("CountUnreadBySender", "user-a").Return(map[string]int64{"user-b": 3}, nil)
	users.On("FindByIDs", []string{"user-b", "user-c"}).Return([]*domain.User{
		testUser("user-b", "Bruno"),
		testUser("user-c", "Clara"),
	}, nil)

	contacts, err := svc.GetContacts("user-a")

	assert.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "Bruno", contacts[0].Name)
	assert.Equal(t, "see you tomorrow", contacts[0].LastMessage)
	assert.Equal(t, int64(3), contacts[0].UnreadCount)
	assert.Equal(t, "Clara", contacts[1].Name)
	assert.Equal(t, int64(0), contacts[1].UnreadCount)
}

func TestGetContacts_NoHistory(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	repo.On("FindLatestPerContact", "loner").Return([]*repository.ContactRow{}, nil)

	contacts, err := svc.GetContacts("loner")

	assert.NoError(t, err)
	assert.Empty(t, contacts)
	users.AssertNotCalled(t, "FindByIDs", mock.Anything)
}

func TestMarkConversationRead_Direction(t *testing.T) {
	repo := new(mockChatRepo)
	users := new(mockUserRepo)
	svc := newChatTestService(repo, users)

	// marks what the other user sent to the caller, never the reverse
	repo.On("MarkConversationRead", "user-b", "user-a").Return(nil)

	err := svc.MarkConversationRead("user-a", "user-b")

	assert.NoError(t, err)
	repo.AssertCalled(t, "MarkConversationRead", "user-b", "user-a")
}
