package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/model"
)

const testPassword = "correct-horse-battery"

// token reads the outstanding link the auth service just mailed.
func (e *env) token(t *testing.T, userID, tokenType string) string {
	t.Helper()
	var token string
	err := e.conn.Get(&token, `SELECT token FROM tokens WHERE user_id = $1 AND type = $2 AND used_at IS NULL`, userID, tokenType)
	require.NoError(t, err)
	return token
}

func TestRegisterVerifyLogin(t *testing.T) {
	e := newEnv(t)

	user, err := e.auth.Register(" Mina@Example.com ", testPassword, testPassword, "Mina Gurung")
	require.NoError(t, err)
	assert.Equal(t, "mina@example.com", user.Email)

	_, err = e.auth.Login("mina@example.com", testPassword)
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	verified, err := e.auth.VerifyMagicLink(e.token(t, user.ID, model.TokenTypeMagicLink))
	require.NoError(t, err)
	assert.NotNil(t, verified.EmailVerifiedAt)

	loggedIn, err := e.auth.Login("MINA@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = e.auth.Login("mina@example.com", "wrong-password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.auth.Register("mina@example.com", testPassword, testPassword, "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.Register("not-an-email", testPassword, testPassword, "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = e.auth.Register("a@example.com", testPassword, "something-else-1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.auth.Register("a@example.com", "short", "short", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMagicLinkIsSingleUse(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.auth.SendMagicLink("new@example.com"))
	user, err := e.users.ByEmail("new@example.com")
	require.NoError(t, err)
	assert.False(t, user.HasPassword())

	token := e.token(t, user.ID, model.TokenTypeMagicLink)
	_, err = e.auth.VerifyMagicLink(token)
	require.NoError(t, err)
	_, err = e.auth.VerifyMagicLink(token)
	assert.ErrorIs(t, err, ErrInvalidLink)

	needs, err := e.auth.NeedsOnboarding(user.ID)
	require.NoError(t, err)
	assert.True(t, needs)

	require.NoError(t, e.auth.CompleteOnboarding(user.ID, "Ram Bahadur", "Chitwan", "students"))
	needs, err = e.auth.NeedsOnboarding(user.ID)
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestForgotPasswordRemovesPassword(t *testing.T) {
	e := newEnv(t)

	user, err := e.auth.Register("reset@example.com", testPassword, testPassword, "Reset")
	require.NoError(t, err)
	require.NoError(t, e.auth.SendForgotPasswordLink("reset@example.com"))
	// unknown addresses succeed silently
	require.NoError(t, e.auth.SendForgotPasswordLink("nobody@example.com"))

	// a reset token can't be used as a magic link
	token := e.token(t, user.ID, model.TokenTypePasswordReset)
	_, err = e.auth.VerifyMagicLink(token)
	assert.ErrorIs(t, err, ErrInvalidLink)
}

func TestForgotPasswordFlow(t *testing.T) {
	e := newEnv(t)

	user, err := e.auth.Register("flow@example.com", testPassword, testPassword, "Flow")
	require.NoError(t, err)
	require.NoError(t, e.auth.SendForgotPasswordLink("flow@example.com"))

	_, err = e.auth.VerifyForgotPassword(e.token(t, user.ID, model.TokenTypePasswordReset))
	require.NoError(t, err)

	_, err = e.auth.Login("flow@example.com", testPassword)
	assert.ErrorIs(t, err, ErrPasswordlessLogin)

	require.NoError(t, e.auth.SetPassword(user.ID, "another-long-secret", "another-long-secret"))
	_, err = e.auth.Login("flow@example.com", "another-long-secret")
	require.NoError(t, err)
}

func TestJWT(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Token Holder")

	token, expiry, err := e.auth.GenerateJWT(u)
	require.NoError(t, err)
	assert.False(t, expiry.IsZero())

	id, err := e.auth.UserIDFromJWT(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = e.auth.UserIDFromJWT(token + "x")
	assert.Error(t, err)
}
