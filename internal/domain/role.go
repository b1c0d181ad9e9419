package domain

// RoleSet is a set of roles permitted to perform a guarded operation.
type RoleSet []Role

// Named role sets used by the route guards.
var (
	UserOnly         = RoleSet{RoleUser}
	AdminOnly        = RoleSet{RoleAdmin}
	HostOnly         = RoleSet{RoleHost}
	ModeratorOnly    = RoleSet{RoleModerator}
	AdminOrModerator = RoleSet{RoleAdmin, RoleModerator}
	AdminOrHost      = RoleSet{RoleAdmin, RoleHost}
	Staff            = RoleSet{RoleAdmin, RoleModerator, RoleHost}
	Anyone           = RoleSet{RoleUser, RoleAdmin, RoleHost, RoleModerator}
)

// Allows reports whether role is a member of the set.
func (s RoleSet) Allows(role Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}
