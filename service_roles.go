package catalogkit

import (
	"context"
	"fmt"
)

// ============================================================================
// ROLE MANAGEMENT OPERATIONS
// ============================================================================

// AddAdmin grants the admin role to id. The caller needs role management
// rights, so the super admin or any current admin can add one, subject to the
// admin capacity.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "super-key")
//	err := service.AddAdmin(ctx, "new-admin-key")
func (s *Service) AddAdmin(ctx context.Context, id Identity) error {
	return s.grantRole(ctx, RoleAdmin, id)
}

// RemoveAdmin revokes the admin role from id. Unlike the other removals this
// one is reserved to the super admin, so a single compromised admin cannot
// thin out the admin set that emergency recovery depends on.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "super-key")
//	err := service.RemoveAdmin(ctx, "rogue-admin-key")
func (s *Service) RemoveAdmin(ctx context.Context, id Identity) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if !state.IsSuperAdmin(caller) {
			return NewError(ErrNotSuperAdmin, "removing an admin requires the super admin").
				WithActor(caller).
				WithRole(RoleAdmin)
		}

		if err := state.RemoveAdmin(id); err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionRemoveAdmin, id.String(),
			fmt.Sprintf("%s revoked admin from %s", caller, id), nil)
	})
}

// AddModerator grants the moderator role to id.
func (s *Service) AddModerator(ctx context.Context, id Identity) error {
	return s.grantRole(ctx, RoleModerator, id)
}

// RemoveModerator revokes the moderator role from id.
func (s *Service) RemoveModerator(ctx context.Context, id Identity) error {
	return s.revokeRole(ctx, RoleModerator, id)
}

// AddCurator grants the curator role to id.
//
// Example:
//
//	err := service.AddCurator(ctx, "librarian-key")
func (s *Service) AddCurator(ctx context.Context, id Identity) error {
	return s.grantRole(ctx, RoleCurator, id)
}

// RemoveCurator revokes the curator role from id. Any caller with role
// management rights may do this; curator removal is not reserved to the super
// admin the way admin removal is.
func (s *Service) RemoveCurator(ctx context.Context, id Identity) error {
	return s.revokeRole(ctx, RoleCurator, id)
}

func (s *Service) grantRole(ctx context.Context, role string, id Identity) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if !NewChecker(caller, state, s.registry).CanManageRoles() {
			return NewError(ErrInsufficientPermissions, "managing roles requires admin privileges").
				WithActor(caller).
				WithRole(role)
		}

		var action AuditAction
		switch role {
		case RoleAdmin:
			action = AuditActionAddAdmin
			err = state.AddAdmin(id)
		case RoleModerator:
			action = AuditActionAddModerator
			err = state.AddModerator(id)
		case RoleCurator:
			action = AuditActionAddCurator
			err = state.AddCurator(id)
		default:
			return NewError(ErrInvalidRole, fmt.Sprintf("role %q cannot be granted", role)).WithRole(role)
		}
		if err != nil {
			return err
		}

		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, action, id.String(),
			fmt.Sprintf("%s granted %s to %s", caller, role, id), nil)
	})
}

func (s *Service) revokeRole(ctx context.Context, role string, id Identity) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if !NewChecker(caller, state, s.registry).CanManageRoles() {
			return NewError(ErrInsufficientPermissions, "managing roles requires admin privileges").
				WithActor(caller).
				WithRole(role)
		}

		var action AuditAction
		switch role {
		case RoleModerator:
			action = AuditActionRemoveModerator
			err = state.RemoveModerator(id)
		case RoleCurator:
			action = AuditActionRemoveCurator
			err = state.RemoveCurator(id)
		default:
			return NewError(ErrInvalidRole, fmt.Sprintf("role %q cannot be revoked here", role)).WithRole(role)
		}
		if err != nil {
			return err
		}

		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, action, id.String(),
			fmt.Sprintf("%s revoked %s from %s", caller, role, id), nil)
	})
}
