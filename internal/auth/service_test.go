package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/database"
)

func newTestService(t *testing.T) (*Service, *database.UserRepo, *database.SessionRepo) {
	t.Helper()

	db, err := database.Open(database.Config{DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := database.NewUserRepo(db)
	sessionRepo := database.NewSessionRepo(db, "test-secret")
	settingsRepo := database.NewSettingsRepo(db)

	return NewService(userRepo, sessionRepo, settingsRepo), userRepo, sessionRepo
}

func TestSignupThenLogin(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.Signup("alice", "hunter22")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)

	resp, err := svc.Login(LoginRequest{Username: "alice", Password: "hunter22"}, "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	_, err := svc.Signup("bob", "password1")
	require.NoError(t, err)

	_, err = svc.Signup("bob", "password2")
	require.ErrorIs(t, err, ErrUsernameTaken)

	count, err := userRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSignupMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup("", "password")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Signup("carol", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, sessionRepo := newTestService(t)

	user, err := svc.Signup("dave", "secret99")
	require.NoError(t, err)

	// Wrong password and unknown user are indistinguishable
	_, err = svc.Login(LoginRequest{Username: "dave", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Username: "nobody", Password: "secret99"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// No session was created for either failure
	count, err := sessionRepo.CountByUserID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestValidateToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup("erin", "letmein1")
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Username: "erin", Password: "letmein1"}, "", "")
	require.NoError(t, err)

	user, session, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "erin", user.Username)
	assert.Equal(t, user.ID, session.UserID)

	_, _, err = svc.ValidateToken("not-a-real-token")
	assert.ErrorIs(t, err, database.ErrSessionNotFound)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup("frank", "passw0rd")
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Username: "frank", Password: "passw0rd"}, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(resp.Token))

	_, _, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, database.ErrSessionNotFound)
}
