package catalogkit

import (
	"fmt"
	"sync"
)

// Role names used by the governance hierarchy.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
	RoleCurator    = "curator"
)

// Permissions granted by the default registry. Operations check these through
// the Checker; the wildcard grammar of PermissionMatcher applies.
const (
	PermissionAddBook     = "books.add"
	PermissionUpdateBook  = "books.update"
	PermissionRemoveBook  = "books.remove"
	PermissionManageRoles = "roles.manage"
)

// Registry holds all role definitions for the governance hierarchy.
// It is created at startup and should be treated as immutable after initialization.
type Registry struct {
	mu    sync.RWMutex
	roles map[string]*RoleDefinition
}

// RoleDefinition defines a role, its membership capacity, and the
// permissions it grants.
type RoleDefinition struct {
	name        string
	description string
	capacity    int
	permissions []string
	registry    *Registry
}

// NewRegistry creates a new role registry.
func NewRegistry() *Registry {
	return &Registry{
		roles: make(map[string]*RoleDefinition),
	}
}

// DefaultRegistry returns the standard governance hierarchy: a single super
// admin holding every permission, admins managing books and roles, curators
// adding and updating books, and moderators as a reserved placeholder role.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.DefineRole(RoleSuperAdmin).
		Description("single owner of the catalog; every permission plus protocol control").
		Capacity(1).
		Permissions("*").
		Role(RoleAdmin).
		Description("trusted operator; full book and role management").
		Capacity(MaxAdmins).
		Permissions("books.*", "roles.*").
		Role(RoleModerator).
		Description("reserved for future moderation workflows").
		Capacity(MaxModerators).
		Role(RoleCurator).
		Description("may add and update catalog entries").
		Capacity(MaxCurators).
		Permissions(PermissionAddBook, PermissionUpdateBook)
	return r
}

// DefineRole starts defining a new role.
// Returns a RoleDefinition builder for fluent configuration.
//
// Example:
//
//	registry.DefineRole("curator").
//	    Capacity(10).
//	    Permissions("books.add", "books.update")
func (r *Registry) DefineRole(name string) *RoleDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()

	role := &RoleDefinition{
		name:     name,
		registry: r,
	}
	r.roles[name] = role
	return role
}

// GetRole returns the role definition for a name.
// Returns nil if the role is not defined.
func (r *Registry) GetRole(name string) *RoleDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[name]
}

// GetRoles returns all defined role names.
func (r *Registry) GetRoles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.roles))
	for name := range r.roles {
		names = append(names, name)
	}
	return names
}

// ValidateRole checks if a role is defined.
func (r *Registry) ValidateRole(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.roles[name]; !exists {
		return fmt.Errorf("%w: role %q not defined", ErrInvalidRole, name)
	}
	return nil
}

// GetPermissions returns the permissions a role grants.
func (r *Registry) GetPermissions(name string) []string {
	roleDef := r.GetRole(name)
	if roleDef == nil {
		return nil
	}
	return roleDef.permissions
}

// Capacity returns the membership capacity of a role, or 0 when the role is
// not defined.
func (r *Registry) Capacity(name string) int {
	roleDef := r.GetRole(name)
	if roleDef == nil {
		return 0
	}
	return roleDef.capacity
}

// Validate checks every defined role: permission strings must be well formed
// and capacities must be at least 1.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, role := range r.roles {
		if role.capacity < 1 {
			return NewError(ErrInvalidRole, fmt.Sprintf("role %q has no capacity", name)).WithRole(name)
		}
		for _, perm := range role.permissions {
			if err := DefaultMatcher.Validate(perm); err != nil {
				return err
			}
		}
	}
	return nil
}

// Description sets a human-readable description for the role.
func (r *RoleDefinition) Description(d string) *RoleDefinition {
	r.description = d
	return r
}

// Capacity sets the membership capacity for the role.
func (r *RoleDefinition) Capacity(n int) *RoleDefinition {
	r.capacity = n
	return r
}

// Permissions sets the permissions granted by this role.
// Supports wildcards: "*", "resource.*", "*.action"
//
// Example:
//
//	role.Permissions("books.add", "books.update")
func (r *RoleDefinition) Permissions(perms ...string) *RoleDefinition {
	r.permissions = append(r.permissions, perms...)
	return r
}

// Role continues defining roles on the registry (fluent API).
// This allows chaining role definitions.
//
// Example:
//
//	registry.DefineRole("admin").Permissions("*").
//	    Role("curator").Permissions("books.add")  // Continues on registry
func (r *RoleDefinition) Role(name string) *RoleDefinition {
	return r.registry.DefineRole(name)
}

// GetDescription returns the role description.
func (r *RoleDefinition) GetDescription() string {
	return r.description
}

// GetCapacity returns the membership capacity.
func (r *RoleDefinition) GetCapacity() int {
	return r.capacity
}

// GetPermissions returns the permissions for this role.
func (r *RoleDefinition) GetPermissions() []string {
	return r.permissions
}

// Name returns the role name.
func (r *RoleDefinition) Name() string {
	return r.name
}
