package identity

// Role is the closed set of authorization roles. The role plus the user's home
// place define the subtree of places the user may act on.
type Role string

const (
	// RoleAdmin may act on every place in the tenant.
	RoleAdmin Role = "admin"
	// RoleRegionAdmin is scoped to the subtree under a root place.
	RoleRegionAdmin Role = "region_admin"
	// RoleCityAdmin is scoped to the subtree under a mid-tier place.
	RoleCityAdmin Role = "city_admin"
	// RoleMosqueAdmin acts only on its own leaf place.
	RoleMosqueAdmin Role = "mosque_admin"
)

// IsValid checks if the role is one of the closed set
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRegionAdmin, RoleCityAdmin, RoleMosqueAdmin:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// IsUnrestricted reports whether the role may reach any place
func (r Role) IsUnrestricted() bool {
	return r == RoleAdmin
}
