// Copyright (c) 2026 Novella. All rights reserved.

package sec

// Operation identifies a protected API capability.
//
// The router never compares roles directly. Every guarded route names an
// Operation, and [MinimumRole] is the single place where the role ladder is
// bound to capabilities.
type Operation string

const (
	// Portal management
	OpPortalView   Operation = "portal:view"
	OpPortalManage Operation = "portal:manage"

	// Suggestions and votes
	OpSuggestionSubmit Operation = "suggestion:submit"
	OpSuggestionView   Operation = "suggestion:view"
	OpSuggestionDelete Operation = "suggestion:delete"
	OpSuggestionSelect Operation = "suggestion:select"
	OpVoteCast         Operation = "vote:cast"

	// Book catalog
	OpBookManage Operation = "book:manage"

	// Meetups
	OpMeetupView   Operation = "meetup:view"
	OpMeetupManage Operation = "meetup:manage"

	// Accounts
	OpProfileManage Operation = "profile:manage"
	OpUserAdminister Operation = "user:administer"
)

// policy is the declarative operation to minimum-role table.
//
// An operation absent from this table is denied for every role, so adding a
// route without classifying it here fails closed.
var policy = map[Operation]UserRole{
	OpPortalView:   RoleMember,
	OpPortalManage: RoleAdmin,

	OpSuggestionSubmit: RoleMember,
	OpSuggestionView:   RoleMember,
	OpSuggestionDelete: RoleAdmin,
	OpSuggestionSelect: RoleAdmin,
	OpVoteCast:         RoleMember,

	OpBookManage: RoleAdmin,

	OpMeetupView:   RoleMember,
	OpMeetupManage: RoleAdmin,

	OpProfileManage:  RoleMember,
	OpUserAdminister: RoleSuperAdmin,
}

// MinimumRole returns the minimum role required for an operation.
// The second return value is false for unknown operations.
func MinimumRole(op Operation) (UserRole, bool) {
	role, ok := policy[op]
	return role, ok
}

// Allowed reports whether a role may perform an operation.
func Allowed(role UserRole, op Operation) bool {
	required, ok := policy[op]
	if !ok {
		return false
	}
	return role.AtLeast(required)
}
