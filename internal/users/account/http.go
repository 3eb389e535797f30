// Copyright (c) 2026 Novella. All rights reserved.

/*
Package account provides the HTTP delivery layer for profile, session, and
roster management.

It exposes secured endpoints for members to manage their own identity and
devices, a public profile lookup, and super-admin endpoints for
administering the membership roster.
*/
package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/novellaclub/novella/internal/platform/constants"
	"github.com/novellaclub/novella/internal/platform/middleware"
	requestutil "github.com/novellaclub/novella/internal/platform/request"
	"github.com/novellaclub/novella/internal/platform/respond"
	"github.com/novellaclub/novella/internal/platform/sec"
	"github.com/novellaclub/novella/internal/platform/validate"
	"github.com/novellaclub/novella/internal/users/auth"
	"github.com/novellaclub/novella/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements account-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Own profile and devices
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(sec.OpProfileManage))

		r.Get("/me", handler.getProfile)
		r.Patch("/me", handler.updateProfile)
		r.Delete("/me", handler.deleteAccount)

		// Session Security
		r.Get("/me/sessions", handler.listSessions)
		r.Delete("/me/sessions", handler.revokeOtherSessions)
		r.Delete("/me/sessions/{id}", handler.revokeSession)
	})

	// Public profile lookup
	router.Get("/users/{id}", handler.getPublicProfile)

	// Roster administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(sec.OpUserAdminister))

		r.Get("/users", handler.listUsers)
		r.Patch("/users/{id}/role", handler.changeRole)
	})

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// publicProfile is the safety-mapped view of a member exposed to other members.
type publicProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPublicProfile(user *auth.User) publicProfile {
	return publicProfile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		CreatedAt:   user.CreatedAt,
	}
}

// # Profile Endpoints

/*
getProfile returns the authenticated member's own profile.

GET /api/v1/me

Response:
  - 200: Full member profile
  - 401: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
updateProfile applies a partial update to the member's own profile.

PATCH /api/v1/me

Only the fields present in the body are changed.

Response:
  - 200: Updated member profile
  - 400: Validation failure
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.MinLen(FieldDisplayName, *input.DisplayName, 2).
			MaxLen(FieldDisplayName, *input.DisplayName, 50)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, 500)
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" {
		validator.URL(FieldAvatarURL, *input.AvatarURL)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
deleteAccount soft deletes the member's own account.

DELETE /api/v1/me

All active sessions are terminated as part of the deletion.

Response:
  - 204: Account deleted
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
getPublicProfile returns the public view of any member.

GET /api/v1/users/{id}

Response:
  - 200: Public profile (no email, no verification state)
  - 404: Member does not exist
*/
func (handler *Handler) getPublicProfile(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetProfile(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toPublicProfile(user))
}

// # Session Security Endpoints

/*
listSessions lists the member's active device sessions.

GET /api/v1/me/sessions

Response:
  - 200: []SessionInfo, newest first
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), userID, currentRefreshToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
revokeSession forces a sign-out on a specific device.

DELETE /api/v1/me/sessions/{id}

Response:
  - 204: Session terminated
  - 404: No owned session with that ID
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.ID(request, "id")

	if err := handler.accountService.RevokeSession(request.Context(), userID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
revokeOtherSessions signs the member out everywhere else.

DELETE /api/v1/me/sessions

Response:
  - 204: All other sessions terminated
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeOtherSessions(request.Context(), userID, currentRefreshToken(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Administration Endpoints

/*
listUsers returns a page of the membership roster.

GET /api/v1/users?q=&page=&limit=

Response:
  - 200: Paginated member list
  - 403: Caller is not a super admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query().Get("q")

	users, total, err := handler.accountService.ListUsers(request.Context(), query, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
changeRole moves a member to a different role.

PATCH /api/v1/users/{id}/role

Response:
  - 200: Updated member
  - 400: Unknown role, or attempt to change own role
  - 403: Caller is not a super admin
  - 404: Member does not exist
*/
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRole, input.Role)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	target := requestutil.ID(request, "id")

	user, err := handler.accountService.ChangeRole(request.Context(), claims.UserID, target, sec.UserRole(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Helpers

// currentRefreshToken reads the refresh cookie when the client sends it.
// The cookie is path-scoped to the auth routes, so this is best effort and
// an empty string simply means no session gets the IsCurrent flag.
func currentRefreshToken(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
