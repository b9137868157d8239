package auth

import (
	"testing"

	"novacommerce/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	password := "password123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	password := "password123"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-password", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := newTestHasher()
	password := "password123"

	first, err := hasher.Hash(password)
	assert.NoError(t, err)
	second, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Same plaintext, different salts, different hashes, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestBcryptHasher_DefaultsToConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 10}}
	hasher := NewBcryptHasher(cfg).(*bcryptHasher)
	assert.Equal(t, 10, hasher.cost)

	// Missing auth section falls back to bcrypt's default cost.
	hasher = NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
