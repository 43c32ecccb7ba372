package auth

import (
	"context"
	"strings"
)

// Role is a coarse permission level carried in tokens
type Role string

const (
	// RoleViewer can read wizards and run validation
	RoleViewer Role = "viewer"
	// RoleBudgetTeam can create, edit and save budget lines
	RoleBudgetTeam Role = "budget_team"
	// RoleSystem is granted to API key callers
	RoleSystem Role = "system"
)

// SystemUserID is the user id of API key callers
const SystemUserID = "system"

// UserContext holds authenticated user information
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Roles       []Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// UserIDFromContext returns the authenticated user id, or fallback when
// the context carries no user.
func UserIDFromContext(ctx context.Context, fallback string) string {
	if user, ok := FromContext(ctx); ok && user.UserID != "" {
		return user.UserID
	}
	return fallback
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles. System users
// pass every check.
func (u *UserContext) HasAnyRole(roles ...Role) bool {
	if u.HasRole(RoleSystem) {
		return true
	}
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// RolesAsStrings returns roles as a slice of strings
func (u *UserContext) RolesAsStrings() []string {
	result := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		result[i] = string(role)
	}
	return result
}

// ParseRoles converts role names, ignoring blanks
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		if n != "" {
			roles = append(roles, Role(n))
		}
	}
	return roles
}
