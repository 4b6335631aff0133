package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesAgainstOriginal(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("samepassword")
	require.NoError(t, err)
	second, err := HashPassword("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "samepassword"))
	assert.True(t, CheckPassword(second, "samepassword"))
}

func TestCheckPassword_MalformedDigestFailsClosed(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-digest", "anything"))
	assert.False(t, CheckPassword("", "anything"))
}
