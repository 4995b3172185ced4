package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Message{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     name + "@noracond.com",
		Role:      "Advogado",
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func sendMessage(t *testing.T, repo ChatRepository, from, to *domain.User, content string, at time.Time) *domain.Message {
	t.Helper()
	msg := &domain.Message{
		ID:              uuid.New().String(),
		ConversationKey: domain.ConversationKey(from.ID, to.ID),
		Content:         content,
		SentAt:          at,
		SenderID:        from.ID,
		RecipientID:     to.ID,
	}
	require.NoError(t, repo.Create(msg))
	return msg
}

func TestFindConversation_OrderingAndSymmetry(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sendMessage(t, repo, a, b, "Hello", t1)
	sendMessage(t, repo, b, a, "Hi back", t1.Add(time.Minute))
	sendMessage(t, repo, a, b, "How are you?", t1.Add(2*time.Minute))

	history, err := repo.FindConversation(domain.ConversationKey(a.ID, b.ID))
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Hello", history[0].Content)
	assert.Equal(t, "Hi back", history[1].Content)
	assert.Equal(t, "How are you?", history[2].Content)

	// querying with the reversed pair yields the identical history
	reversed, err := repo.FindConversation(domain.ConversationKey(b.ID, a.ID))
	require.NoError(t, err)
	require.Len(t, reversed, 3)
	for i := range history {
		assert.Equal(t, history[i].ID, reversed[i].ID)
	}
}

func TestFindConversation_TiesBrokenByInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := sendMessage(t, repo, a, b, "first", at)
	second := sendMessage(t, repo, b, a, "second", at)

	history, err := repo.FindConversation(domain.ConversationKey(a.ID, b.ID))
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
}

func TestFindConversation_EmptyIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)

	history, err := repo.FindConversation(domain.ConversationKey("x", "y"))
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestFindConversationSince_Watermark(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m1 := sendMessage(t, repo, a, b, "one", t1)
	m2 := sendMessage(t, repo, b, a, "two", t1.Add(time.Minute))
	m3 := sendMessage(t, repo, a, b, "three", t1.Add(2*time.Minute))

	key := domain.ConversationKey(a.ID, b.ID)

	batch, err := repo.FindConversationSince(key, m1.Seq)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, m2.ID, batch[0].ID)
	assert.Equal(t, m3.ID, batch[1].ID)

	// watermark at the tip yields an empty batch
	batch, err = repo.FindConversationSince(key, m3.Seq)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestUnreadAccounting(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sendMessage(t, repo, a, b, "x", at)

	count, err := repo.CountUnread(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.MarkConversationRead(a.ID, b.ID))

	count, err = repo.CountUnread(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// idempotent: marking again is a no-op, not an error
	require.NoError(t, repo.MarkConversationRead(a.ID, b.ID))
	count, err = repo.CountUnread(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkConversationRead_Directional(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sendMessage(t, repo, a, b, "to b", at)
	sendMessage(t, repo, b, a, "to a", at.Add(time.Minute))

	require.NoError(t, repo.MarkConversationRead(a.ID, b.ID))

	// the opposite direction keeps its unread message
	count, err := repo.CountUnread(b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkConversationReadUpTo_LeavesLaterMessagesUnread(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m1 := sendMessage(t, repo, a, b, "fetched by the poll", at)
	sendMessage(t, repo, a, b, "arrived after the fetch", at.Add(time.Second))

	require.NoError(t, repo.MarkConversationReadUpTo(a.ID, b.ID, m1.Seq))

	count, err := repo.CountUnread(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindLatestPerContact(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")
	c := seedUser(t, db, "clara")

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sendMessage(t, repo, a, b, "Hello", t1)
	sendMessage(t, repo, b, a, "Hi back", t1.Add(time.Minute))
	sendMessage(t, repo, a, b, "How are you?", t1.Add(2*time.Minute))
	sendMessage(t, repo, c, a, "older thread", t1.Add(time.Minute))

	rows, err := repo.FindLatestPerContact(a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// most recent thread first; only the latest message of each thread
	assert.Equal(t, b.ID, rows[0].CounterpartID)
	assert.Equal(t, "How are you?", rows[0].Content)
	assert.Equal(t, c.ID, rows[1].CounterpartID)
	assert.Equal(t, "older thread", rows[1].Content)

	// bystanders have no contacts
	rows, err = repo.FindLatestPerContact(uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCountUnreadBySender(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	a := seedUser(t, db, "ana")
	b := seedUser(t, db, "bruno")
	c := seedUser(t, db, "clara")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sendMessage(t, repo, b, a, "1", at)
	sendMessage(t, repo, b, a, "2", at.Add(time.Minute))
	sendMessage(t, repo, c, a, "3", at.Add(2*time.Minute))

	counts, err := repo.CountUnreadBySender(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[b.ID])
	assert.Equal(t, int64(1), counts[c.ID])
}
