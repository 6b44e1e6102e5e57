package catalogkit

import "context"

// ============================================================================
// PERMISSION CHECKING
// ============================================================================

// HasRole checks if an identity currently holds a role.
//
// Example:
//
//	if service.HasRole(ctx, "user-key", catalogkit.RoleCurator) {
//	    // identity curates the catalog
//	}
func (s *Service) HasRole(ctx context.Context, id Identity, role string) bool {
	checker, err := s.GetChecker(ctx, id)
	if err != nil {
		return false
	}
	return checker.HasRole(role)
}

// HasPermission checks if an identity holds a permission through any of its
// roles.
//
// Example:
//
//	if service.HasPermission(ctx, userKey, catalogkit.PermissionAddBook) {
//	    // identity can add catalog entries
//	}
func (s *Service) HasPermission(ctx context.Context, id Identity, permission string) bool {
	checker, err := s.GetChecker(ctx, id)
	if err != nil {
		return false
	}
	return checker.Can(permission)
}

// PermissionsOf returns the effective permissions an identity holds, with
// wildcards expanded against the known catalog permissions.
func (s *Service) PermissionsOf(ctx context.Context, id Identity) ([]string, error) {
	checker, err := s.GetChecker(ctx, id)
	if err != nil {
		return nil, err
	}
	return checker.EffectivePermissions(), nil
}

// CanAddBooks checks if an identity may add or update catalog entries.
func (s *Service) CanAddBooks(ctx context.Context, id Identity) bool {
	checker, err := s.GetChecker(ctx, id)
	if err != nil {
		return false
	}
	return checker.CanAddBooks()
}

// CanManageRoles checks if an identity may change role membership.
func (s *Service) CanManageRoles(ctx context.Context, id Identity) bool {
	checker, err := s.GetChecker(ctx, id)
	if err != nil {
		return false
	}
	return checker.CanManageRoles()
}
