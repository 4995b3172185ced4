package domain

// ConversationKey returns the canonical, order-independent key for the
// conversation between two users: the smaller id first, joined with ':'.
// ConversationKey(a, b) == ConversationKey(b, a) for any a, b.
func ConversationKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}
