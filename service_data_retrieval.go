package catalogkit

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// DATA RETRIEVAL
// ============================================================================

// RolesOf returns the role names id currently holds.
func (s *Service) RolesOf(ctx context.Context, id Identity) ([]string, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return state.RolesOf(id), nil
}

// Members returns the identities holding a role. The super admin role always
// has exactly one member.
func (s *Service) Members(ctx context.Context, role string) ([]Identity, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return state.Members(role)
}

// GetChecker creates a Checker for id against the current governance state.
// The checker is a snapshot; it does not observe later role changes.
func (s *Service) GetChecker(ctx context.Context, id Identity) (*Checker, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return NewChecker(id, state, s.registry), nil
}

// GetCheckerFromContext creates a Checker for the caller in context.
func (s *Service) GetCheckerFromContext(ctx context.Context) (*Checker, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetChecker(ctx, caller)
}

// CountBooks returns the number of catalog entries by counting rows, which is
// authoritative where GovernanceState.BookCount is informational.
//
// Example:
//
//	count, err := service.CountBooks(ctx)
func (s *Service) CountBooks(ctx context.Context) (int, error) {
	return dbkit.Count[Book](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

// CountLibraryCards returns the number of issued cards.
func (s *Service) CountLibraryCards(ctx context.Context) (int, error) {
	return dbkit.Count[LibraryCard](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

// HasLibraryCard reports whether owner holds a card. This is cheaper than
// VerifyLibraryCard when the card itself is not needed.
//
// Example:
//
//	if service.HasLibraryCard(ctx, "reader-key") {
//	    log.Println("reader may borrow")
//	}
func (s *Service) HasLibraryCard(ctx context.Context, owner Identity) bool {
	exists, err := dbkit.Exists[LibraryCard](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("owner = ?", owner)
	})
	if err != nil {
		return false
	}
	return exists
}
