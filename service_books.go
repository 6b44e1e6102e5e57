package catalogkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// CATALOG OPERATIONS
// ============================================================================

// AddBook inserts a catalog entry under a client supplied UUID v4 identifier.
// The caller needs book rights (super admin, admin, or curator), the catalog
// must not be paused, and every field must pass validation. Reusing an
// existing identifier fails ErrAlreadyExists.
//
// Example:
//
//	ctx := catalogkit.WithCaller(context.Background(), "curator-key")
//	err := service.AddBook(ctx, uuid.New(), "Dune", "Frank Herbert",
//	    "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", "science fiction")
func (s *Service) AddBook(ctx context.Context, id uuid.UUID, title, author, contentHash, genre string) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if state.Paused {
			return NewError(ErrPaused, "the catalog is paused; new entries are rejected").WithActor(caller)
		}
		if !NewChecker(caller, state, s.registry).Can(PermissionAddBook) {
			return NewError(ErrInsufficientPermissions, "adding books requires the curator role or above").
				WithActor(caller)
		}

		if err := ValidateBookID(id); err != nil {
			return err
		}
		if err := ValidateText("title", title, TitleMinLen, TitleMaxLen); err != nil {
			return err
		}
		if err := ValidateText("author", author, AuthorMinLen, AuthorMaxLen); err != nil {
			return err
		}
		if err := ValidateText("genre", genre, GenreMinLen, GenreMaxLen); err != nil {
			return err
		}
		if err := ValidateContentHash(contentHash); err != nil {
			return err
		}

		now := s.now()
		book := &Book{
			ID:          id,
			Title:       title,
			Author:      author,
			Genre:       genre,
			ContentHash: contentHash,
			AddedBy:     caller,
			AddedAt:     now,
			UpdatedAt:   now,
		}

		result, err := tx.db.NewInsert().Model(book).Exec(ctx)
		if err != nil {
			if dbkit.IsDuplicate(err) {
				return NewError(ErrAlreadyExists, fmt.Sprintf("book %s is already in the catalog", id)).
					WithBook(id.String())
			}
			return dbkit.WithErr(result, err, "CreateBook").Err()
		}

		state.incrementBookCount()
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionAddBook, id.String(),
			fmt.Sprintf("%s added %q by %s", caller, title, author),
			map[string]any{"genre": genre, "content_hash": contentHash})
	})
}

// UpdateBook applies the provided fields of update to an existing entry,
// validating each one the same way AddBook does. Absent fields are left
// untouched; an update with no fields set verifies the entry exists and does
// nothing else. Same authorization and pause gate as AddBook.
//
// Example:
//
//	genre := "classic science fiction"
//	err := service.UpdateBook(ctx, bookID, catalogkit.BookUpdate{Genre: &genre})
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, update BookUpdate) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadState(ctx)
		if err != nil {
			return err
		}

		if state.Paused {
			return NewError(ErrPaused, "the catalog is paused; updates are rejected").WithActor(caller)
		}
		if !NewChecker(caller, state, s.registry).Can(PermissionUpdateBook) {
			return NewError(ErrInsufficientPermissions, "updating books requires the curator role or above").
				WithActor(caller)
		}

		book, err := tx.lockBook(ctx, id)
		if err != nil {
			return err
		}
		if update.IsEmpty() {
			return nil
		}

		var changed []string
		if update.Title != nil {
			if err := ValidateText("title", *update.Title, TitleMinLen, TitleMaxLen); err != nil {
				return err
			}
			book.Title = *update.Title
			changed = append(changed, "title")
		}
		if update.Author != nil {
			if err := ValidateText("author", *update.Author, AuthorMinLen, AuthorMaxLen); err != nil {
				return err
			}
			book.Author = *update.Author
			changed = append(changed, "author")
		}
		if update.ContentHash != nil {
			if err := ValidateContentHash(*update.ContentHash); err != nil {
				return err
			}
			book.ContentHash = *update.ContentHash
			changed = append(changed, "content_hash")
		}
		if update.Genre != nil {
			if err := ValidateText("genre", *update.Genre, GenreMinLen, GenreMaxLen); err != nil {
				return err
			}
			book.Genre = *update.Genre
			changed = append(changed, "genre")
		}

		book.UpdatedAt = s.now()
		result, err := tx.db.NewUpdate().Model(book).WherePK().Exec(ctx)
		if err := dbkit.WithErr(result, err, "UpdateBook").Err(); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionUpdateBook, id.String(),
			fmt.Sprintf("%s updated %s of %q", caller, strings.Join(changed, ", "), book.Title), nil)
	})
}

// RemoveBook deletes a catalog entry and reclaims its identifier. Reserved to
// admin privileges, and deliberately not gated by pause so cleanup stays
// possible while the catalog is frozen.
func (s *Service) RemoveBook(ctx context.Context, id uuid.UUID) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	return s.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		state, err := tx.loadStateForUpdate(ctx)
		if err != nil {
			return err
		}

		if !NewChecker(caller, state, s.registry).Can(PermissionRemoveBook) {
			return NewError(ErrInsufficientPermissions, "removing books requires admin privileges").
				WithActor(caller)
		}

		result, err := tx.db.NewDelete().Model((*Book)(nil)).Where("id = ?", id).Exec(ctx)
		if err := dbkit.WithErr(result, err, "DeleteBook").Err(); err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return NewError(ErrNotFound, fmt.Sprintf("book %s is not in the catalog", id)).
				WithBook(id.String())
		}

		state.decrementBookCount()
		if err := tx.saveState(ctx, state); err != nil {
			return err
		}

		return tx.logAudit(ctx, AuditActionRemoveBook, id.String(),
			fmt.Sprintf("%s removed book %s", caller, id), nil)
	})
}

// GetBook returns a catalog entry. No role is required.
//
// Example:
//
//	book, err := service.GetBook(ctx, bookID)
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	book := new(Book)
	err := dbkit.WithErr1(s.db.NewSelect().Model(book).Where("id = ?", id).Scan(ctx), "LoadBook").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrNotFound, fmt.Sprintf("book %s is not in the catalog", id)).
				WithBook(id.String())
		}
		return nil, err
	}
	return book, nil
}

// lockBook fetches a catalog entry with a row lock for in-transaction edits.
func (s *Service) lockBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	book := new(Book)
	err := dbkit.WithErr1(s.db.NewSelect().Model(book).Where("id = ?", id).For("UPDATE").Scan(ctx), "LockBook").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrNotFound, fmt.Sprintf("book %s is not in the catalog", id)).
				WithBook(id.String())
		}
		return nil, err
	}
	return book, nil
}
