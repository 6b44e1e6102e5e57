package catalogkit

import (
	"context"
	"fmt"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// LIBRARY CARD OPERATIONS
// ============================================================================

// IssueLibraryCard issues a reading card to the caller. Any identity may hold
// exactly one card; a second issuance fails ErrAlreadyExists. Cards grant no
// write rights, they only mark read access for host side checks.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "reader-key")
//	card, err := service.IssueLibraryCard(ctx)
func (s *Service) IssueLibraryCard(ctx context.Context) (*LibraryCard, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}

	card := &LibraryCard{
		Owner:    caller,
		IssuedAt: s.now(),
	}

	err = s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		result, err := tx.db.NewInsert().Model(card).Exec(ctx)
		if err != nil {
			if dbkit.IsDuplicate(err) {
				return NewError(ErrAlreadyExists, fmt.Sprintf("%s already holds a library card", caller)).
					WithIdentity(caller)
			}
			return dbkit.WithErr(result, err, "CreateLibraryCard").Err()
		}

		return tx.logAudit(ctx, AuditActionIssueCard, caller.String(),
			fmt.Sprintf("library card issued to %s", caller), nil)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// VerifyLibraryCard returns owner's card, or ErrNotFound when none was
// issued. No role is required; hosts call this to gate read access.
func (s *Service) VerifyLibraryCard(ctx context.Context, owner Identity) (*LibraryCard, error) {
	card := new(LibraryCard)
	err := dbkit.WithErr1(s.db.NewSelect().Model(card).Where("owner = ?", owner).Scan(ctx), "LoadLibraryCard").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrNotFound, fmt.Sprintf("%s holds no library card", owner)).
				WithIdentity(owner)
		}
		return nil, err
	}
	return card, nil
}
