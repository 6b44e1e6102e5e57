package catalogkit

// Checker answers role and permission questions for one identity against a
// point-in-time snapshot of the governance state. It is typically created by
// the Service and stored in context for use in handlers; it never touches the
// database after construction.
type Checker struct {
	identity Identity
	state    *GovernanceState
	registry *Registry
}

// NewChecker creates a new Checker for an identity.
func NewChecker(identity Identity, state *GovernanceState, registry *Registry) *Checker {
	return &Checker{
		identity: identity,
		state:    state,
		registry: registry,
	}
}

// Identity returns the identity this checker is for.
func (c *Checker) Identity() Identity {
	return c.identity
}

// Roles returns all role names the identity currently holds.
func (c *Checker) Roles() []string {
	return c.state.RolesOf(c.identity)
}

// HasRole checks if the identity holds a specific role.
//
// Example:
//
//	if checker.HasRole(catalogkit.RoleCurator) {
//	    // identity is a curator
//	}
func (c *Checker) HasRole(role string) bool {
	for _, r := range c.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the identity is the super admin.
func (c *Checker) IsSuperAdmin() bool {
	return c.state.IsSuperAdmin(c.identity)
}

// IsAdmin reports whether the identity is a member of the admin set.
func (c *Checker) IsAdmin() bool {
	return c.state.IsAdmin(c.identity)
}

// IsModerator reports whether the identity is a member of the moderator set.
func (c *Checker) IsModerator() bool {
	return c.state.IsModerator(c.identity)
}

// IsCurator reports whether the identity is a member of the curator set.
func (c *Checker) IsCurator() bool {
	return c.state.IsCurator(c.identity)
}

// HasAdminPrivileges reports whether the identity is the super admin or an admin.
func (c *Checker) HasAdminPrivileges() bool {
	return c.state.HasAdminPrivileges(c.identity)
}

// Can checks if the identity has a specific permission.
// This resolves the identity's roles to their permissions and checks for a match.
//
// Example:
//
//	if checker.Can(catalogkit.PermissionAddBook) {
//	    // identity can add books
//	}
func (c *Checker) Can(permission string) bool {
	patterns := c.patterns()
	if len(patterns) == 0 {
		return false
	}
	return MatchAnyPermission(patterns, permission)
}

// CanAny checks if the identity has any of the specified permissions.
func (c *Checker) CanAny(permissions ...string) bool {
	for _, perm := range permissions {
		if c.Can(perm) {
			return true
		}
	}
	return false
}

// CanAll checks if the identity has all of the specified permissions.
func (c *Checker) CanAll(permissions ...string) bool {
	for _, perm := range permissions {
		if !c.Can(perm) {
			return false
		}
	}
	return true
}

// CanAddBooks reports whether the identity may add catalog entries.
func (c *Checker) CanAddBooks() bool {
	return c.Can(PermissionAddBook)
}

// CanManageRoles reports whether the identity may change role membership.
func (c *Checker) CanManageRoles() bool {
	return c.Can(PermissionManageRoles)
}

// Permissions returns the permission patterns granted by the identity's
// roles. This is the UNION of patterns from all roles.
//
// Example:
//
//	perms := checker.Permissions()
//	// perms might be ["books.add", "books.update"]
func (c *Checker) Permissions() []string {
	return c.patterns()
}

// EffectivePermissions expands the identity's permission patterns against the
// known catalog permissions.
//
// Example:
//
//	perms := checker.EffectivePermissions()
//	// for an admin: ["books.add", "books.update", "books.remove", "roles.manage"]
func (c *Checker) EffectivePermissions() []string {
	return DefaultMatcher.ExpandPermissions(c.patterns(), KnownPermissions)
}

// IsEmpty returns true if the identity holds no roles.
func (c *Checker) IsEmpty() bool {
	return len(c.Roles()) == 0
}

func (c *Checker) patterns() []string {
	roles := c.Roles()
	if len(roles) == 0 {
		return nil
	}

	// Collect all permission patterns from all roles
	permSet := make(map[string]bool)
	for _, role := range roles {
		for _, p := range c.registry.GetPermissions(role) {
			permSet[p] = true
		}
	}

	result := make([]string, 0, len(permSet))
	for p := range permSet {
		result = append(result, p)
	}
	return result
}
