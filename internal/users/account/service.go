// Copyright (c) 2026 Novella. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/internal/users/auth"
)

// # Service Definition

// Service implements account management business logic.
type Service struct {
	accountRepo AccountRepository
	sessionRepo SessionRepository
	logger      *slog.Logger
}

// NewService constructs the account [Service] with its dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// # Input Types

// UpdateProfileInput carries the delta for a profile update. Nil fields are
// left untouched.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// # Profile Operations

/*
GetProfile retrieves a member's full profile by ID.

Returns:
  - *auth.User: The hydrated member entity
  - error: apperr.NotFound if the account does not exist
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepo.FindByID(context, userID)
}

/*
UpdateProfile applies a partial update to a member's profile.

Only the fields present in the input are modified. The persisted entity is
re-read first so absent fields keep their current values.
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := service.accountRepo.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	service.logger.Info("profile_updated", "user_id", userID)
	return user, nil
}

/*
DeleteAccount soft deletes a member account and terminates all of their
active sessions.

The account row is retained for referential integrity with suggestions and
votes; it simply stops resolving through the repositories.
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if _, err := service.accountRepo.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.accountRepo.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	if err := service.sessionRepo.RevokeAll(context, userID); err != nil {
		return fmt.Errorf("account_service_revoke_sessions_failed: %w", err)
	}

	service.logger.Warn("account_deleted", "user_id", userID)
	return nil
}

// # Session Security

/*
ListSessions returns all active device sessions for a member.

The session matching currentRefreshToken (if any) is flagged IsCurrent so
clients can render "this device" indicators.
*/
func (service *Service) ListSessions(context context.Context, userID, currentRefreshToken string) ([]SessionInfo, error) {
	currentHash := ""
	if currentRefreshToken != "" {
		currentHash = sec.HashToken(currentRefreshToken)
	}

	sessions, err := service.sessionRepo.FindActiveByUserID(context, userID, currentHash)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	return sessions, nil
}

// RevokeSession terminates a single session owned by the member.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionRepo.Revoke(context, userID, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_session_failed: %w", err)
	}

	service.logger.Info("session_revoked", "user_id", userID, "session_id", sessionID)
	return nil
}

// RevokeOtherSessions terminates every session for the member except the one
// backing the supplied refresh token.
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentRefreshToken string) error {
	currentHash := sec.HashToken(currentRefreshToken)

	if err := service.sessionRepo.RevokeOthers(context, userID, currentHash); err != nil {
		return fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}

	service.logger.Info("other_sessions_revoked", "user_id", userID)
	return nil
}

// # Role Administration

/*
ListUsers returns a page of the membership roster for administration.

The optional query filters by username or email substring.
*/
func (service *Service) ListUsers(context context.Context, query string, limit, offset int) ([]*auth.User, int, error) {
	return service.accountRepo.List(context, query, limit, offset)
}

/*
ChangeRole moves a member to a different rung of the role ladder.

Rules:
  - The target role must be one of the known roles.
  - An administrator cannot change their own role. Demoting the last
    super admin by accident would lock the club out of role management.

Returns the updated member entity.
*/
func (service *Service) ChangeRole(context context.Context, actorID, targetID string, role sec.UserRole) (*auth.User, error) {
	if !role.Valid() {
		return nil, apperr.BadRequest("INVALID_ROLE", fmt.Sprintf("Unknown role: %s", role))
	}

	if actorID == targetID {
		return nil, apperr.BadRequest("SELF_ROLE_CHANGE", "You cannot change your own role")
	}

	target, err := service.accountRepo.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	if err := service.accountRepo.UpdateRole(context, targetID, role); err != nil {
		return nil, fmt.Errorf("account_service_change_role_failed: %w", err)
	}

	service.logger.Info("role_changed",
		"actor_id", actorID,
		"user_id", targetID,
		"from", target.Role,
		"to", role,
	)

	target.Role = role
	return target, nil
}
