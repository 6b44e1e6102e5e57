package catalogkit

import (
	"context"
	"fmt"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// GOVERNANCE LIFECYCLE
// ============================================================================

// Initialize creates the singleton governance state with the configured
// bootstrap identity as super admin. Only the bootstrap identity may call it,
// and only once; the transfer timelock and recovery threshold are frozen into
// the state here.
//
// Example:
//
//	service := catalogkit.NewService(db, catalogkit.WithBootstrapIdentity("owner-key"))
//	ctx := catalogkit.WithCaller(context.Background(), "owner-key")
//	err := service.Initialize(ctx)
func (s *Service) Initialize(ctx context.Context) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if s.bootstrap.IsZero() {
		return NewError(ErrNoBootstrapIdentity, "configure WithBootstrapIdentity before initializing")
	}
	if caller != s.bootstrap {
		return NewError(ErrNotSuperAdmin, "only the bootstrap identity may initialize").WithActor(caller)
	}
	if s.recoveryThreshold < 1 {
		return NewError(ErrInvalidThreshold, "recovery threshold must be at least 1")
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		now := s.now()
		state := &GovernanceState{
			ID:                governanceStateID,
			SuperAdmin:        s.bootstrap,
			Admins:            []Identity{},
			Moderators:        []Identity{},
			Curators:          []Identity{},
			TransferTimelock:  s.transferTimelock,
			RecoveryThreshold: s.recoveryThreshold,
			Version:           StateVersion,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		result, err := tx.db.NewInsert().Model(state).Exec(ctx)
		if err != nil {
			if dbkit.IsDuplicate(err) {
				return NewError(ErrAlreadyInitialized, "governance state already exists")
			}
			return dbkit.WithErr(result, err, "CreateGovernanceState").Err()
		}

		return tx.logAudit(ctx, AuditActionInitialize, caller.String(),
			fmt.Sprintf("%s initialized catalog governance", caller),
			map[string]any{
				"transfer_timelock":  s.transferTimelock.String(),
				"recovery_threshold": s.recoveryThreshold,
			})
	})
}

// GetGovernance returns the current governance state. No role is required.
func (s *Service) GetGovernance(ctx context.Context) (*GovernanceState, error) {
	return s.loadState(ctx)
}

// ============================================================================
// PAUSE CONTROL
// ============================================================================

// Pause sets the circuit breaker. While paused, AddBook and UpdateBook are
// rejected; RemoveBook, role management, and both transfer protocols keep
// working, so pausing stops new or altered content without blocking
// administrative control.
func (s *Service) Pause(ctx context.Context) error {
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
			return NewError(ErrNotSuperAdmin, "pausing requires the super admin").WithActor(caller)
		}

		state.Pause()
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionPause, "",
			fmt.Sprintf("%s paused the catalog", caller), nil)
	})
}

// Unpause clears the circuit breaker.
func (s *Service) Unpause(ctx context.Context) error {
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
			return NewError(ErrNotSuperAdmin, "unpausing requires the super admin").WithActor(caller)
		}

		state.Unpause()
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionUnpause, "",
			fmt.Sprintf("%s unpaused the catalog", caller), nil)
	})
}
