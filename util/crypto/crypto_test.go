package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("longpass1")
	require.NoError(t, err)
	assert.NotEqual(t, "longpass1", hash)

	assert.True(t, CheckPasswordHash(hash, "longpass1"))
	assert.False(t, CheckPasswordHash(hash, "wrongpass1"))
	assert.False(t, CheckPasswordHash("not-a-bcrypt-hash", "longpass1"))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPasswordAsBcrypt("longpass1")
	require.NoError(t, err)
	second, err := HashPasswordAsBcrypt("longpass1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
