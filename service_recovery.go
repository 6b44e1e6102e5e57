package catalogkit

import (
	"context"
	"fmt"
)

// ============================================================================
// EMERGENCY RECOVERY PROTOCOL
// ============================================================================

// InitiateRecovery opens an emergency recovery episode that can replace the
// super admin without its cooperation. The caller must be an admin, the admin
// set must be large enough to reach the vote threshold, and candidate must
// pass ValidateSuperAdminCandidate. The initiator's vote is counted
// immediately; executed reports whether that vote alone reached the threshold
// and performed the swap, which only happens with a threshold of one.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "admin-a")
//	executed, err := service.InitiateRecovery(ctx, "replacement-key")
func (s *Service) InitiateRecovery(ctx context.Context, candidate Identity) (executed bool, err error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return false, err
	}

	err = s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if !state.IsAdmin(caller) {
			return NewError(ErrInsufficientPermissions, "initiating recovery requires an admin").
				WithActor(caller)
		}

		executed, err = state.InitiateRecovery(caller, candidate, s.now())
		if err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		summary := fmt.Sprintf("%s initiated emergency recovery naming %s", caller, candidate)
		if executed {
			summary = fmt.Sprintf("%s initiated emergency recovery and %s became super admin", caller, candidate)
		}
		return tx.logAudit(ctx, AuditActionInitiateRecovery, candidate.String(), summary,
			map[string]any{
				"votes":     1,
				"threshold": state.RecoveryThreshold,
				"executed":  executed,
			})
	})
	if err != nil {
		return false, err
	}
	return executed, nil
}

// VoteRecovery casts the caller's vote for the active recovery episode. The
// caller must be an admin and must not have voted in this episode. The vote
// that reaches the threshold executes the swap within the same call, so
// executed true means the named candidate is now the super admin and the
// episode is closed.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "admin-b")
//	executed, err := service.VoteRecovery(ctx)
func (s *Service) VoteRecovery(ctx context.Context) (executed bool, err error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return false, err
	}

	err = s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if !state.IsAdmin(caller) {
			return NewError(ErrInsufficientPermissions, "voting on recovery requires an admin").
				WithActor(caller)
		}

		candidate := state.RecoveryNewAdmin
		executed, err = state.CastRecoveryVote(caller)
		if err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		votes := len(state.RecoveryVotes)
		summary := fmt.Sprintf("%s voted for emergency recovery", caller)
		if executed {
			votes = state.RecoveryThreshold
			summary = fmt.Sprintf("%s cast the deciding vote and %s became super admin", caller, candidate)
		}
		return tx.logAudit(ctx, AuditActionVoteRecovery, candidate.String(), summary,
			map[string]any{
				"votes":     votes,
				"threshold": state.RecoveryThreshold,
				"executed":  executed,
			})
	})
	if err != nil {
		return false, err
	}
	return executed, nil
}

// CancelRecovery abandons the active recovery episode without executing it.
// Only the current super admin may cancel, which is the identity the episode
// exists to replace; see the package documentation for that trade off.
func (s *Service) CancelRecovery(ctx context.Context) error {
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
			return NewError(ErrNotSuperAdmin, "cancelling recovery requires the super admin").
				WithActor(caller)
		}

		cancelled := state.RecoveryNewAdmin
		if err := state.CancelRecovery(); err != nil {
			return err
		}
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionCancelRecovery, cancelled.String(),
			fmt.Sprintf("%s cancelled the recovery naming %s", caller, cancelled), nil)
	})
}
