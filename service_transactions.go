package catalogkit

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Transaction executes a function within a database transaction with automatic
// commit/rollback. The callback receives a Service bound to the transaction;
// operations invoked on it all commit or roll back together. If the function
// returns an error, the transaction is rolled back. Otherwise, it's committed.
//
// Example:
//
//	err := service.Transaction(ctx, func(ctx context.Context, tx *catalogkit.Service) error {
//	    if err := tx.AddAdmin(ctx, "admin-1"); err != nil {
//	        return err // This will cause a rollback
//	    }
//	    if err := tx.AddCurator(ctx, "curator-1"); err != nil {
//	        return err // This will cause a rollback
//	    }
//	    return nil // This will cause a commit
//	})
func (s *Service) Transaction(ctx context.Context, fn func(ctx context.Context, tx *Service) error) error {
	start := time.Now()
	var err error

	switch db := s.db.(type) {
	case *dbkit.Tx:
		// Already in a transaction, nest with a savepoint
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	case *dbkit.DBKit:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	default:
		err = fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}

	// Record transaction metrics
	duration := time.Since(start)
	s.txMonitor.recordTransaction(duration, err == nil)

	return err
}

// TransactionWithOptions executes a function within a database transaction with
// custom options. Supports read-only transactions, isolation levels, and other
// transaction parameters. Nested calls fall back to savepoints, where options
// do not apply.
//
// Example:
//
//	err := service.TransactionWithOptions(ctx, dbkit.SerializableTxOptions(), func(ctx context.Context, tx *catalogkit.Service) error {
//	    return tx.AddBook(ctx, id, title, author, hash, genre)
//	})
func (s *Service) TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context, tx *Service) error) error {
	start := time.Now()
	var err error

	switch db := s.db.(type) {
	case *dbkit.Tx:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	case *dbkit.DBKit:
		err = db.TransactionWithOptions(ctx, opts, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	default:
		err = fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}

	duration := time.Since(start)
	s.txMonitor.recordTransaction(duration, err == nil)

	return err
}

// ReadOnlyTransaction executes a function within a read-only database
// transaction. Useful for reads that must observe a single consistent
// snapshot.
//
// Example:
//
//	err := service.ReadOnlyTransaction(ctx, func(ctx context.Context, tx *catalogkit.Service) error {
//	    state, err := tx.GetGovernance(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = tx.GetBook(ctx, bookID)
//	    return err
//	})
func (s *Service) ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx *Service) error) error {
	return s.TransactionWithOptions(ctx, dbkit.ReadOnlyTxOptions(), fn)
}

// withDB returns a copy of the service bound to another dbkit handle,
// typically a transaction.
func (s *Service) withDB(db dbkit.IDB) *Service {
	clone := *s
	clone.db = db
	return &clone
}
