package catalogkit

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

// requireCaller extracts the pre-verified caller identity from context.
func requireCaller(ctx context.Context) (Identity, error) {
	caller := GetCaller(ctx)
	if caller.IsZero() {
		return ZeroIdentity, NewError(ErrNoCaller, "set the caller with WithCaller before invoking operations")
	}
	return caller, nil
}

// loadState fetches the governance singleton without locking it.
func (s *Service) loadState(ctx context.Context) (*GovernanceState, error) {
	state := new(GovernanceState)
	err := dbkit.WithErr1(s.db.NewSelect().Model(state).Where("id = ?", governanceStateID).Scan(ctx), "LoadGovernanceState").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrNotInitialized, "governance state has not been created")
		}
		return nil, err
	}
	if err := checkStateVersion(state); err != nil {
		return nil, err
	}
	return state, nil
}

// loadStateForUpdate fetches the governance singleton with a row lock, so the
// surrounding transaction serializes against every competing governance
// operation.
func (s *Service) loadStateForUpdate(ctx context.Context) (*GovernanceState, error) {
	state := new(GovernanceState)
	err := dbkit.WithErr1(s.db.NewSelect().Model(state).Where("id = ?", governanceStateID).For("UPDATE").Scan(ctx), "LockGovernanceState").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrNotInitialized, "governance state has not been created")
		}
		return nil, err
	}
	if err := checkStateVersion(state); err != nil {
		return nil, err
	}
	return state, nil
}

func checkStateVersion(state *GovernanceState) error {
	if state.Version != StateVersion {
		return NewError(ErrUnsupportedStateVersion,
			fmt.Sprintf("stored version is %d, this build supports version %d", state.Version, StateVersion))
	}
	return nil
}

// saveState persists the governance singleton.
func (s *Service) saveState(ctx context.Context, state *GovernanceState) error {
	state.UpdatedAt = s.now()
	result, err := s.db.NewUpdate().Model(state).WherePK().Exec(ctx)
	return dbkit.WithErr(result, err, "SaveGovernanceState").Err()
}

// logAudit writes an audit row describing a successful operation. It runs on
// the same dbkit handle as the operation, so inside a transaction the audit
// row commits or rolls back with the mutation it describes.
func (s *Service) logAudit(ctx context.Context, action AuditAction, subject, summary string, metadata map[string]any) error {
	audit := GetAuditContext(ctx)
	actor := audit.Actor
	if actor.IsZero() {
		actor = SystemIdentity
	}

	entry := &AuditEntry{
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Summary:   summary,
		IPAddress: audit.IPAddress,
		UserAgent: audit.UserAgent,
		RequestID: audit.RequestID,
		Metadata:  metadata,
	}

	model := entry.ToModel()
	model.Timestamp = s.now()

	_, err := s.db.NewInsert().Model(model).Exec(ctx)
	return dbkit.WithErr1(err, "LogAudit").Err()
}

// GetTransactionMetrics returns the current transaction performance metrics.
func (s *Service) GetTransactionMetrics() TransactionMetrics {
	return s.txMonitor.getMetrics()
}

// ResetTransactionMetrics resets all transaction metrics.
func (s *Service) ResetTransactionMetrics() {
	s.txMonitor.reset()
}

// IsTransactionHealthy checks if transaction performance is within acceptable thresholds.
func (s *Service) IsTransactionHealthy() bool {
	metrics := s.txMonitor.getMetrics()

	// If we have very few transactions, consider it healthy
	if metrics.TotalTransactions < 10 {
		return true
	}

	// Check failure rate (should be less than 5%)
	failureRate := float64(metrics.FailedTransactions) / float64(metrics.TotalTransactions)
	if failureRate > 0.05 {
		return false
	}

	// Check average duration (should be less than 1 second)
	if metrics.AverageDuration > time.Second {
		return false
	}

	return true
}
