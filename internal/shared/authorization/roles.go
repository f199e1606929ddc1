package authorization

type UserRole string

const (
	RoleAdvertiser UserRole = "ADVERTISER"
	RoleBotOwner   UserRole = "BOT_OWNER"
	RoleModerator  UserRole = "MODERATOR"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r UserRole) IsStaff() bool {
	return r.IsAdmin() || r == RoleModerator
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdvertiser, RoleBotOwner, RoleModerator, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ParseUserRole normalizes a role string; unknown values fall back to the
// least privileged role.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleAdvertiser
}

// AllRoles returns every role the platform recognizes.
func AllRoles() []UserRole {
	return []UserRole{RoleAdvertiser, RoleBotOwner, RoleModerator, RoleAdmin, RoleSuperAdmin}
}
