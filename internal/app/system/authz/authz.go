// Package authz answers "is this user allowed to do that" questions.
// Role checks go through EffectiveRole so the admin allow-list wins over
// whatever role the account record carries.
package authz

import (
	"net/http"

	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Policy holds the static authorization configuration.
type Policy struct {
	adminEmails map[string]struct{}
}

// NewPolicy builds a Policy from the configured admin email allow-list.
// Emails are compared case-insensitively.
func NewPolicy(adminEmails []string) *Policy {
	set := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalize.Email(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return &Policy{adminEmails: set}
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func (p *Policy) IsAdminEmail(email string) bool {
	_, ok := p.adminEmails[normalize.Email(email)]
	return ok
}

// EffectiveRole returns the role a user actually operates with. Allow-listed
// emails are admins regardless of the stored role, so a stale account record
// can never lock an operator out of the console.
func (p *Policy) EffectiveRole(email string, stored models.UserRole) models.UserRole {
	if p.IsAdminEmail(email) {
		return models.RoleAdmin
	}
	if stored == "" {
		return models.RoleStandard
	}
	return stored
}

// UserCtx returns the current user's role, id, and a found flag. Missing or
// anonymous requests fail closed with an empty id.
func UserCtx(r *http.Request) (role models.UserRole, userID string, ok bool) {
	su, ok := auth.CurrentUser(r)
	if !ok || su.ID == "" {
		return "", "", false
	}
	return su.Role, su.ID, true
}

// IsAdmin reports whether the current request's user is an administrator.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// CanPostFunding reports whether the user may create funding opportunities.
// Publishing calls for funding is restricted to premium institutions and
// administrators.
func CanPostFunding(role models.UserRole) bool {
	return role == models.RolePremium || role == models.RoleAdmin
}
