// Copyright (c) 2026 Novella. All rights reserved.

package account

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/internal/users/auth"
)

// # Fakes

type fakeAccountRepository struct {
	users map[string]*auth.User
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{users: make(map[string]*auth.User)}
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeAccountRepository) List(_ context.Context, query string, limit, offset int) ([]*auth.User, int, error) {
	var matched []*auth.User
	for _, user := range f.users {
		if query != "" &&
			!strings.Contains(strings.ToLower(user.Username), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(query)) {
			continue
		}
		clone := *user
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	existing, ok := f.users[user.ID]
	if !ok {
		return apperr.NotFound("Account")
	}
	existing.DisplayName = user.DisplayName
	existing.AvatarURL = user.AvatarURL
	existing.Bio = user.Bio
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAccountRepository) UpdateRole(_ context.Context, userID string, role sec.UserRole) error {
	existing, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	existing.Role = role
	return nil
}

func (f *fakeAccountRepository) SoftDelete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type sessionRecord struct {
	info      SessionInfo
	userID    string
	tokenHash string
	revoked   bool
}

type fakeSessionRepository struct {
	sessions []*sessionRecord
}

func (f *fakeSessionRepository) add(userID, sessionID, tokenHash string, createdAt time.Time) {
	f.sessions = append(f.sessions, &sessionRecord{
		info: SessionInfo{
			ID:        sessionID,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(30 * 24 * time.Hour),
		},
		userID:    userID,
		tokenHash: tokenHash,
	})
}

func (f *fakeSessionRepository) FindActiveByUserID(_ context.Context, userID, currentTokenHash string) ([]SessionInfo, error) {
	var active []SessionInfo
	for _, record := range f.sessions {
		if record.userID != userID || record.revoked {
			continue
		}
		info := record.info
		info.IsCurrent = currentTokenHash != "" && record.tokenHash == currentTokenHash
		active = append(active, info)
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

func (f *fakeSessionRepository) Revoke(_ context.Context, userID, sessionID string) error {
	for _, record := range f.sessions {
		if record.userID == userID && record.info.ID == sessionID {
			record.revoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentTokenHash string) error {
	for _, record := range f.sessions {
		if record.userID == userID && record.tokenHash != currentTokenHash {
			record.revoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, record := range f.sessions {
		if record.userID == userID {
			record.revoked = true
		}
	}
	return nil
}

// # Helpers

type testHarness struct {
	accounts *fakeAccountRepository
	sessions *fakeSessionRepository
	service  *Service
}

func newHarness() *testHarness {
	accounts := newFakeAccountRepository()
	sessions := &fakeSessionRepository{}
	logger := slog.New(slog.DiscardHandler)

	return &testHarness{
		accounts: accounts,
		sessions: sessions,
		service:  NewService(accounts, sessions, logger),
	}
}

func (h *testHarness) seedUser(id, username string, role sec.UserRole, createdAt time.Time) {
	h.accounts.users[id] = &auth.User{
		ID:          id,
		Username:    username,
		Email:       username + "@novella.club",
		DisplayName: username,
		Role:        role,
		CreatedAt:   createdAt,
	}
}

// # Tests

/*
TestUpdateProfile applies a partial update and verifies that absent fields
keep their current values.
*/
func TestUpdateProfile(t *testing.T) {
	harness := newHarness()
	harness.seedUser("u1", "hana", sec.RoleMember, time.Now())
	harness.accounts.users["u1"].Bio = "Reads one novel a week."

	newName := "Hana M."
	updated, err := harness.service.UpdateProfile(context.Background(), "u1", UpdateProfileInput{
		DisplayName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hana M.", updated.DisplayName)
	assert.Equal(t, "Reads one novel a week.", updated.Bio, "untouched field must survive the update")

	stored, err := harness.service.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Hana M.", stored.DisplayName)
}

/*
TestUpdateProfile_UnknownUser verifies the update fails cleanly for a
missing account.
*/
func TestUpdateProfile_UnknownUser(t *testing.T) {
	harness := newHarness()

	name := "Ghost"
	_, err := harness.service.UpdateProfile(context.Background(), "nope", UpdateProfileInput{DisplayName: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestDeleteAccount verifies the account stops resolving and every session is
terminated.
*/
func TestDeleteAccount(t *testing.T) {
	harness := newHarness()
	harness.seedUser("u1", "hana", sec.RoleMember, time.Now())
	harness.sessions.add("u1", "s1", sec.HashToken("token-1"), time.Now())
	harness.sessions.add("u1", "s2", sec.HashToken("token-2"), time.Now())

	err := harness.service.DeleteAccount(context.Background(), "u1")
	require.NoError(t, err)

	_, err = harness.service.GetProfile(context.Background(), "u1")
	assert.True(t, apperr.IsNotFound(err))

	for _, record := range harness.sessions.sessions {
		assert.True(t, record.revoked)
	}
}

/*
TestListSessions verifies ordering and that only the session backing the
supplied refresh token is flagged as current.
*/
func TestListSessions(t *testing.T) {
	harness := newHarness()
	harness.seedUser("u1", "hana", sec.RoleMember, time.Now())

	base := time.Now()
	harness.sessions.add("u1", "older", sec.HashToken("old-token"), base.Add(-time.Hour))
	harness.sessions.add("u1", "newer", sec.HashToken("new-token"), base)
	harness.sessions.add("u2", "foreign", sec.HashToken("other-token"), base)

	sessions, err := harness.service.ListSessions(context.Background(), "u1", "new-token")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "newer", sessions[0].ID)
	assert.True(t, sessions[0].IsCurrent)
	assert.Equal(t, "older", sessions[1].ID)
	assert.False(t, sessions[1].IsCurrent)
}

/*
TestListSessions_NoCookie verifies that no session is flagged current when
the caller cannot present a refresh token.
*/
func TestListSessions_NoCookie(t *testing.T) {
	harness := newHarness()
	harness.seedUser("u1", "hana", sec.RoleMember, time.Now())
	harness.sessions.add("u1", "s1", sec.HashToken("token-1"), time.Now())

	sessions, err := harness.service.ListSessions(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].IsCurrent)
}

/*
TestRevokeSession_Ownership verifies a member cannot revoke another
member's session.
*/
func TestRevokeSession_Ownership(t *testing.T) {
	harness := newHarness()
	harness.sessions.add("u2", "victim", sec.HashToken("other-token"), time.Now())

	err := harness.service.RevokeSession(context.Background(), "u1", "victim")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, harness.service.RevokeSession(context.Background(), "u2", "victim"))
}

/*
TestRevokeOtherSessions verifies that only the session backing the current
refresh token survives.
*/
func TestRevokeOtherSessions(t *testing.T) {
	harness := newHarness()
	harness.sessions.add("u1", "here", sec.HashToken("current-token"), time.Now())
	harness.sessions.add("u1", "phone", sec.HashToken("phone-token"), time.Now())
	harness.sessions.add("u1", "tablet", sec.HashToken("tablet-token"), time.Now())

	err := harness.service.RevokeOtherSessions(context.Background(), "u1", "current-token")
	require.NoError(t, err)

	sessions, err := harness.service.ListSessions(context.Background(), "u1", "current-token")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "here", sessions[0].ID)
}

/*
TestChangeRole promotes a member to admin and verifies the persisted role.
*/
func TestChangeRole(t *testing.T) {
	harness := newHarness()
	harness.seedUser("root", "root", sec.RoleSuperAdmin, time.Now())
	harness.seedUser("u1", "hana", sec.RoleMember, time.Now())

	updated, err := harness.service.ChangeRole(context.Background(), "root", "u1", sec.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.Role)

	stored, err := harness.service.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, stored.Role)
}

/*
TestChangeRole_Rejections covers the invalid role, self-change, and unknown
target cases.
*/
func TestChangeRole_Rejections(t *testing.T) {
	harness := newHarness()
	harness.seedUser("root", "root", sec.RoleSuperAdmin, time.Now())
	harness.seedUser("u1", "hana", sec.RoleMember, time.Now())

	t.Run("unknown role", func(t *testing.T) {
		_, err := harness.service.ChangeRole(context.Background(), "root", "u1", sec.UserRole("emperor"))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "INVALID_ROLE"))
	})

	t.Run("own role", func(t *testing.T) {
		_, err := harness.service.ChangeRole(context.Background(), "root", "root", sec.RoleAdmin)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "SELF_ROLE_CHANGE"))
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := harness.service.ChangeRole(context.Background(), "root", "nobody", sec.RoleAdmin)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	stored, err := harness.service.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleMember, stored.Role, "failed attempts must not change anything")
}

/*
TestListUsers verifies substring filtering and pagination totals.
*/
func TestListUsers(t *testing.T) {
	harness := newHarness()
	base := time.Now()
	harness.seedUser("u1", "hana", sec.RoleMember, base)
	harness.seedUser("u2", "haruto", sec.RoleMember, base.Add(time.Second))
	harness.seedUser("u3", "mei", sec.RoleAdmin, base.Add(2*time.Second))

	users, total, err := harness.service.ListUsers(context.Background(), "ha", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "hana", users[0].Username)
	assert.Equal(t, "haruto", users[1].Username)

	page, total, err := harness.service.ListUsers(context.Background(), "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "mei", page[0].Username)
}
