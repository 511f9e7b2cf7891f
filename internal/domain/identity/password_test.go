package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRunner(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		runner, err := CreateRunner("+5215511112222", "ana", "secret1pass")
		require.NoError(t, err)
		assert.NotEqual(t, "secret1pass", runner.PasswordHash)
		assert.True(t, runner.VerifyPassword("secret1pass"))
		assert.False(t, runner.VerifyPassword("wrong1pass"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := CreateRunner("+5215511112222", "ana", "a1")
		assert.Error(t, err)
	})

	t.Run("rejects password without a number", func(t *testing.T) {
		_, err := CreateRunner("+5215511112222", "ana", "onlyletters")
		assert.Error(t, err)
	})

	t.Run("rejects password without a letter", func(t *testing.T) {
		_, err := CreateRunner("+5215511112222", "ana", "123456789")
		assert.Error(t, err)
	})
}

func TestRunner_SetPassword(t *testing.T) {
	runner, err := CreateRunner("+5215511112222", "ana", "secret1pass")
	require.NoError(t, err)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := runner.SetPassword("wrong1pass", "newsecret2")
		assert.Error(t, err)
		assert.True(t, runner.VerifyPassword("secret1pass"))
	})

	t.Run("replaces the hash", func(t *testing.T) {
		err := runner.SetPassword("secret1pass", "newsecret2")
		require.NoError(t, err)
		assert.True(t, runner.VerifyPassword("newsecret2"))
		assert.False(t, runner.VerifyPassword("secret1pass"))
	})
}

func TestRunner_ResetPassword(t *testing.T) {
	runner, err := CreateRunner("+5215511112222", "ana", "secret1pass")
	require.NoError(t, err)

	err = runner.ResetPassword("recovered3pw")
	require.NoError(t, err)
	assert.True(t, runner.VerifyPassword("recovered3pw"))

	err = runner.ResetPassword("bad")
	assert.Error(t, err)
}
