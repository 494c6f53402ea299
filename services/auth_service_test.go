package services

import (
	"testing"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the auth service reads config.DB directly, mirroring how the handlers
// use it in production.
func useTestDB(t *testing.T) {
	t.Helper()
	config.DB = newTestDB(t)
	t.Cleanup(func() { config.DB = nil })
}

func TestRegisterAndAuthenticate(t *testing.T) {
	useTestDB(t)

	require.NoError(t, RegisterUser("parent@example.com", "s3cret", "Test Parent"))

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := RegisterUser("parent@example.com", "other", "Someone Else")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("correct password", func(t *testing.T) {
		user, err := AuthenticateUser("parent@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "Test Parent", user.FullName)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := AuthenticateUser("parent@example.com", "nope")
		assert.Error(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := AuthenticateUser("ghost@example.com", "s3cret")
		assert.Error(t, err)
	})
}

func TestDisabledAccountCannotLogin(t *testing.T) {
	useTestDB(t)

	require.NoError(t, RegisterUser("parent@example.com", "s3cret", "Test Parent"))
	require.NoError(t, config.DB.Model(&models.User{}).
		Where("email = ?", "parent@example.com").
		Update("disabled", true).Error)

	_, err := AuthenticateUser("parent@example.com", "s3cret")
	assert.Error(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	useTestDB(t)

	require.NoError(t, RegisterUser("parent@example.com", "oldpass", "Test Parent"))
	user, err := FindUserByEmail("parent@example.com")
	require.NoError(t, err)

	code, err := CreatePasswordReset(user.ID)
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.NoError(t, ConsumePasswordReset(code, "newpass"))

	_, err = AuthenticateUser("parent@example.com", "oldpass")
	assert.Error(t, err, "old password no longer works")
	_, err = AuthenticateUser("parent@example.com", "newpass")
	assert.NoError(t, err)

	t.Run("code is single use", func(t *testing.T) {
		err := ConsumePasswordReset(code, "again")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestPasswordResetExpiry(t *testing.T) {
	useTestDB(t)

	require.NoError(t, RegisterUser("parent@example.com", "oldpass", "Test Parent"))
	user, err := FindUserByEmail("parent@example.com")
	require.NoError(t, err)

	code, err := CreatePasswordReset(user.ID)
	require.NoError(t, err)

	require.NoError(t, config.DB.Model(&models.PasswordReset{}).
		Where("code = ?", code).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err = ConsumePasswordReset(code, "newpass")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AuthenticateUser("parent@example.com", "oldpass")
	assert.NoError(t, err, "password unchanged after expired code")
}

func TestGenerateRandomCodeCharset(t *testing.T) {
	code := utils.GenerateRandomCode(8)
	assert.Len(t, code, 8)
	for _, r := range code {
		ok := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
		assert.True(t, ok, "unexpected character %q", r)
	}
}
