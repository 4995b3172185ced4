package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestManager() *Manager {
	return NewManager("test-secret-key-for-testing-only-32b!", 15)
}

func TestGenerateAndVerifyToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("u-1", "Ana Souza", "ana@noracond.com", "Advogado")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "Ana Souza", claims.Name)
	assert.Equal(t, "ana@noracond.com", claims.Email)
	assert.Equal(t, "Advogado", claims.Role)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("a-completely-different-secret-value!", 15)

	token, err := m.GenerateToken("u-1", "Ana", "ana@noracond.com", "Admin")
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("test-secret-key-for-testing-only-32b!", -1)

	token, err := m.GenerateToken("u-1", "Ana", "ana@noracond.com", "Admin")
	assert.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
