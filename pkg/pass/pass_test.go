package pass

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, VerifyPassword(hash, "secret"))
	assert.False(t, VerifyPassword(hash, "Secret"))
	assert.False(t, VerifyPassword("not-a-hash", "secret"))

	_, err = HashPassword("")
	assert.Error(t, err)
}
