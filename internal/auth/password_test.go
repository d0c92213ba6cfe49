package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, ComparePassword(hash, "correct horse"))
	assert.Error(t, ComparePassword(hash, "battery staple"))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	// An out-of-range cost must not break hashing.
	hash, err := HashPassword("pw", bcrypt.MaxCost+10)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "pw"))

	c, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, c)
}
