// internal/domain/models/user.go
package models

import "time"

// StakeholderType classifies who a registered account represents.
type StakeholderType string

const (
	StakeholderIndividual   StakeholderType = "Individual"
	StakeholderOrganization StakeholderType = "Organization"
	StakeholderGroup        StakeholderType = "Group"
)

// IsValidStakeholderType checks a stakeholder type against the known set.
func IsValidStakeholderType(t StakeholderType) bool {
	switch t {
	case StakeholderIndividual, StakeholderOrganization, StakeholderGroup:
		return true
	}
	return false
}

// UserRole is the stored account role. The effective role can differ:
// the admin allow-list override is applied at the authorization boundary
// (see system/authz), never baked into the stored value except as a
// best-effort sync after login.
type UserRole string

const (
	RoleStandard UserRole = "Standard"
	RolePremium  UserRole = "Premium"
	RoleAdmin    UserRole = "Admin"
)

// IsValidUserRole checks a role value against the known set.
func IsValidUserRole(r UserRole) bool {
	switch r {
	case RoleStandard, RolePremium, RoleAdmin:
		return true
	}
	return false
}

// User represents an individual, organization, or group account.
//
// NOTE:
//   - PasswordHash is a bcrypt hash; the plaintext credential exists only
//     in the registration/login request.
//   - SavedProjectIDs is the user's bookmark set, mutated only through
//     the store's atomic toggle operation.
type User struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	Email           string          `bson:"email" json:"email"`
	EmailCI         string          `bson:"email_ci" json:"-"` // lowercase, for unique index + lookup
	PasswordHash    string          `bson:"password_hash,omitempty" json:"-"`
	Name            string          `bson:"name" json:"name"`
	NameCI          string          `bson:"name_ci" json:"-"`
	StakeholderType StakeholderType `bson:"stakeholder_type" json:"stakeholderType"`
	Subtype         string          `bson:"subtype,omitempty" json:"subtype,omitempty"`
	Country         string          `bson:"country" json:"country"`
	City            string          `bson:"city,omitempty" json:"city,omitempty"`
	FocusAreas      []string        `bson:"focus_areas,omitempty" json:"focusAreas"`
	About           string          `bson:"about,omitempty" json:"about,omitempty"`
	AvatarURL       string          `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	Role            UserRole        `bson:"role" json:"role"`
	IsVerified      bool            `bson:"is_verified" json:"isVerified"`
	SavedProjectIDs []string        `bson:"saved_project_ids,omitempty" json:"savedProjectIds"`
	JoinedAt        time.Time       `bson:"joined_at" json:"joinedAt"`
}

// HasSaved reports whether the user has bookmarked the given project.
func (u *User) HasSaved(projectID string) bool {
	for _, id := range u.SavedProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}
