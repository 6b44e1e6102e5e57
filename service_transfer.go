package catalogkit

import (
	"context"
	"fmt"
)

// ============================================================================
// SUPER ADMIN TRANSFER PROTOCOL
// ============================================================================

// InitiateTransfer starts the two phase super admin hand-off to candidate.
// Only the current super admin may initiate, no other transfer may be in
// flight, and the candidate must pass ValidateSuperAdminCandidate. The
// hand-off cannot be confirmed until the timelock recorded at Initialize has
// elapsed, which gives observers a window to react before it takes effect.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "super-key")
//	err := service.InitiateTransfer(ctx, "successor-key")
func (s *Service) InitiateTransfer(ctx context.Context, candidate Identity) error {
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
			return NewError(ErrNotSuperAdmin, "initiating a transfer requires the super admin").
				WithActor(caller)
		}

		now := s.now()
		if err := state.InitiateTransfer(candidate, now); err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionInitiateTransfer, candidate.String(),
			fmt.Sprintf("%s initiated a super admin transfer to %s", caller, candidate),
			map[string]any{
				"timelock":       state.TransferTimelock.String(),
				"confirmable_at": now.Add(state.TransferTimelock),
			})
	})
}

// ConfirmTransfer completes a pending hand-off once the timelock has elapsed.
// The caller must still be the current super admin; after success the pending
// identity holds that role.
func (s *Service) ConfirmTransfer(ctx context.Context) error {
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
			return NewError(ErrNotSuperAdmin, "confirming a transfer requires the super admin").
				WithActor(caller)
		}

		previous := state.SuperAdmin
		if err := state.ConfirmTransfer(s.now()); err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionConfirmTransfer, state.SuperAdmin.String(),
			fmt.Sprintf("super admin transferred from %s to %s", previous, state.SuperAdmin), nil)
	})
}

// CancelTransfer abandons a pending hand-off before it is confirmed.
func (s *Service) CancelTransfer(ctx context.Context) error {
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
			return NewError(ErrNotSuperAdmin, "cancelling a transfer requires the super admin").
				WithActor(caller)
		}

		cancelled := state.PendingSuperAdmin
		if err := state.CancelTransfer(); err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionCancelTransfer, cancelled.String(),
			fmt.Sprintf("%s cancelled the pending transfer to %s", caller, cancelled), nil)
	})
}
