// Copyright (c) 2026 Novella. All rights reserved.

/*
Package account handles member profile management, session security, and
role administration.

It provides functionality for members to view and update their identity
data and manage their active device sessions, and for super admins to
administer the club's membership roster.

# Architecture

  - Entities: SessionInfo (DTO). The User entity is owned by the auth package.
  - Security: Provides session transparency and revocation mechanisms, and
    the role ladder management surface.
*/
package account

import (
	"context"
	"time"

	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/internal/users/auth"
)

// # Domain Entities

// SessionInfo provides a safety-mapped view of an active member session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID         string    `json:"id"`
	DeviceName string    `json:"device_name"` // e.g. "Chrome on Windows"
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsCurrent  bool      `json:"is_current"` // True if this session belongs to the current request
}

// # Repository Contracts

// AccountRepository defines the persistence contract for member accounts.
type AccountRepository interface {
	// FindByID retrieves a member record by their unique ID.
	FindByID(context context.Context, id string) (*auth.User, error)

	// List returns a page of the membership roster, optionally filtered by a
	// username/email search term, together with the unfiltered total.
	List(context context.Context, query string, limit, offset int) ([]*auth.User, int, error)

	// Update modifies the mutable profile fields of an existing member.
	Update(context context.Context, user *auth.User) error

	// UpdateRole replaces only the member's role on the ladder.
	UpdateRole(context context.Context, userID string, role sec.UserRole) error

	// SoftDelete flags an account as logically deleted.
	SoftDelete(context context.Context, id string) error
}

// SessionRepository defines the visibility and revocation contract for
// member sessions.
//
// The current session is identified by its refresh token hash rather than
// its ID, because the handler only ever sees the raw cookie value.
type SessionRepository interface {
	// FindActiveByUserID lists all valid, non-expired sessions for a member.
	// The session whose token hash equals currentTokenHash is flagged IsCurrent.
	FindActiveByUserID(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error)

	// Revoke marks a specific session as revoked. The userID acts as an
	// ownership constraint so members cannot revoke each other's sessions.
	Revoke(context context.Context, userID, sessionID string) error

	// RevokeOthers revokes all active sessions except the one matching
	// currentTokenHash.
	RevokeOthers(context context.Context, userID, currentTokenHash string) error

	// RevokeAll terminates every session for a member.
	RevokeAll(context context.Context, userID string) error
}

// # Field Identifiers

const (
	FieldDisplayName = "display_name"
	FieldBio         = "bio"
	FieldAvatarURL   = "avatar_url"
	FieldRole        = "role"
)
