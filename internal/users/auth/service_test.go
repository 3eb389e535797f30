// Copyright (c) 2026 Novella. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) MarkVerified(_ context.Context, userID string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.IsVerified = true
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*auth.Session)}
}

func (f *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, session := range f.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	if session, ok := f.sessions[sessionID]; ok {
		session.IsRevoked = true
	}
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range f.sessions {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) DeleteExpired(_ context.Context) error {
	for id, session := range f.sessions {
		if !session.ExpiresAt.After(time.Now()) {
			delete(f.sessions, id)
		}
	}
	return nil
}

// fakeTokenStore backs both the reset and verification token repositories.
type fakeTokenStore struct {
	values map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{values: make(map[string]string)}
}

func (f *fakeTokenStore) Set(_ context.Context, token string, userID string, _ time.Duration) error {
	f.values[token] = userID
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.values[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token")
}

func (f *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(f.values, token)
	return nil
}

type fakeTokenProvider struct {
	issued int
}

func (f *fakeTokenProvider) GenerateAccessToken(userID, _ string, _ sec.UserRole, _ time.Duration) (string, error) {
	f.issued++
	return fmt.Sprintf("jwt-%s-%d", userID, f.issued), nil
}

type testHarness struct {
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	resets   *fakeTokenStore
	verifies *fakeTokenStore
	service  *auth.Service
}

func newHarness() *testHarness {
	harness := &testHarness{
		users:    newFakeUserRepository(),
		sessions: newFakeSessionRepository(),
		resets:   newFakeTokenStore(),
		verifies: newFakeTokenStore(),
	}
	harness.service = auth.NewService(
		harness.users, harness.sessions, harness.resets, harness.verifies,
		&fakeTokenProvider{}, slog.New(slog.DiscardHandler),
	)
	return harness
}

func (h *testHarness) register(t *testing.T, username, email, password string) *auth.User {
	t.Helper()
	user, err := h.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// # Tests

/*
TestRegister enrolls a new member with the member role and an unverified
email, and stages a verification token.
*/
func TestRegister(t *testing.T) {
	harness := newHarness()

	user := harness.register(t, "alice", "alice@example.com", "correct horse battery")

	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.Len(t, harness.verifies.values, 1)
}

/*
TestRegister_Conflicts rejects duplicate emails and usernames with CONFLICT.
*/
func TestRegister_Conflicts(t *testing.T) {
	harness := newHarness()
	harness.register(t, "alice", "alice@example.com", "correct horse battery")

	_, err := harness.service.Register(context.Background(), auth.RegisterInput{
		Username: "someone-else", Email: "alice@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CONFLICT"))

	_, err = harness.service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CONFLICT"))
}

/*
TestLogin authenticates by email or username and records a session.
*/
func TestLogin(t *testing.T) {
	harness := newHarness()
	harness.register(t, "alice", "alice@example.com", "correct horse battery")

	session, err := harness.service.Login(context.Background(), auth.LoginInput{
		Login: "alice@example.com", Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, harness.sessions.sessions, 1)

	_, err = harness.service.Login(context.Background(), auth.LoginInput{
		Login: "alice", Password: "correct horse battery",
	})
	require.NoError(t, err)
}

/*
TestLogin_InvalidCredentials answers the same way for a wrong password and
an unknown account.
*/
func TestLogin_InvalidCredentials(t *testing.T) {
	harness := newHarness()
	harness.register(t, "alice", "alice@example.com", "correct horse battery")

	_, wrongPassword := harness.service.Login(context.Background(), auth.LoginInput{
		Login: "alice", Password: "wrong",
	})
	require.Error(t, wrongPassword)

	_, unknownUser := harness.service.Login(context.Background(), auth.LoginInput{
		Login: "nobody", Password: "wrong",
	})
	require.Error(t, unknownUser)

	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.True(t, apperr.IsCode(wrongPassword, "UNAUTHORIZED"))
}

/*
TestRefreshSession_Rotation issues fresh tokens and burns the old refresh
token so it cannot be replayed.
*/
func TestRefreshSession_Rotation(t *testing.T) {
	harness := newHarness()
	harness.register(t, "alice", "alice@example.com", "correct horse battery")

	session, err := harness.service.Login(context.Background(), auth.LoginInput{
		Login: "alice", Password: "correct horse battery",
	})
	require.NoError(t, err)

	rotated, err := harness.service.RefreshSession(context.Background(), session.RefreshToken, "ua", "ip")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replay of the burnt token
	_, err = harness.service.RefreshSession(context.Background(), session.RefreshToken, "ua", "ip")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

/*
TestLogout_Idempotent treats an unknown refresh token as already logged out.
*/
func TestLogout_Idempotent(t *testing.T) {
	harness := newHarness()

	assert.NoError(t, harness.service.Logout(context.Background(), "never-issued"))
}

/*
TestResetPassword updates the hash, burns the token, and revokes every
active session.
*/
func TestResetPassword(t *testing.T) {
	harness := newHarness()
	harness.register(t, "alice", "alice@example.com", "correct horse battery")
	ctx := context.Background()

	preReset, err := harness.service.Login(ctx, auth.LoginInput{Login: "alice", Password: "correct horse battery"})
	require.NoError(t, err)

	token, err := harness.service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, harness.service.ResetPassword(ctx, token, "an entirely new passphrase"))

	_, err = harness.service.Login(ctx, auth.LoginInput{Login: "alice", Password: "correct horse battery"})
	require.Error(t, err)
	_, err = harness.service.Login(ctx, auth.LoginInput{Login: "alice", Password: "an entirely new passphrase"})
	require.NoError(t, err)

	// The token is single-use
	require.Error(t, harness.service.ResetPassword(ctx, token, "yet another passphrase"))

	// Every pre-reset session was revoked
	_, err = harness.service.RefreshSession(ctx, preReset.RefreshToken, "ua", "ip")
	require.Error(t, err)
}

/*
TestRequestPasswordReset_UnknownEmail stays silent so the endpoint cannot be
used for member enumeration.
*/
func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	harness := newHarness()

	token, err := harness.service.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

/*
TestChangePassword verifies the current password first and revokes other
devices on success.
*/
func TestChangePassword(t *testing.T) {
	harness := newHarness()
	user := harness.register(t, "alice", "alice@example.com", "correct horse battery")
	ctx := context.Background()

	current, err := harness.service.Login(ctx, auth.LoginInput{Login: "alice", Password: "correct horse battery"})
	require.NoError(t, err)
	other, err := harness.service.Login(ctx, auth.LoginInput{Login: "alice", Password: "correct horse battery"})
	require.NoError(t, err)

	err = harness.service.ChangePassword(ctx, user.ID, "wrong", "new passphrase here", current.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	require.NoError(t, harness.service.ChangePassword(ctx, user.ID, "correct horse battery", "new passphrase here", current.RefreshToken))

	// The other device's refresh token no longer works; the current one does.
	_, err = harness.service.RefreshSession(ctx, other.RefreshToken, "ua", "ip")
	require.Error(t, err)
	_, err = harness.service.RefreshSession(ctx, current.RefreshToken, "ua", "ip")
	require.NoError(t, err)
}

/*
TestVerifyEmail flips the verified flag and burns the token.
*/
func TestVerifyEmail(t *testing.T) {
	harness := newHarness()
	user := harness.register(t, "alice", "alice@example.com", "correct horse battery")
	ctx := context.Background()

	var token string
	for issued := range harness.verifies.values {
		token = issued
	}
	require.NotEmpty(t, token)

	require.NoError(t, harness.service.VerifyEmail(ctx, token))
	assert.True(t, harness.users.users[user.ID].IsVerified)

	require.Error(t, harness.service.VerifyEmail(ctx, token))
}
