package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKey_Commutative(t *testing.T) {
	a := "0b6c9a1e-42c1-4f9e-9a31-0f2f1d9e8401"
	b := "f3d2b8a7-11aa-4c90-8a77-6f0e9c51b322"

	assert.Equal(t, ConversationKey(a, b), ConversationKey(b, a))
}

func TestConversationKey_OrdersPair(t *testing.T) {
	assert.Equal(t, "a:b", ConversationKey("b", "a"))
	assert.Equal(t, "a:b", ConversationKey("a", "b"))
}

func TestConversationKey_DistinctPairsDistinctKeys(t *testing.T) {
	assert.NotEqual(t, ConversationKey("a", "b"), ConversationKey("a", "c"))
	assert.NotEqual(t, ConversationKey("a", "b"), ConversationKey("b", "c"))
}
