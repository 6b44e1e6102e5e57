package catalogkit

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Service exposes the catalog governance operations. It owns the singleton
// governance record, the book and library card tables, and the audit log,
// all persisted through dbkit.
//
// Every mutating operation reads the caller identity from context (see
// WithCaller), runs its authorization and validation checks, and applies the
// mutation atomically: the governance row is locked FOR UPDATE inside a
// transaction, so competing callers serialize and a failed check leaves no
// trace. Database failures carry dbkit's error context:
//
//	err := service.AddBook(ctx, id, title, author, hash, genre)
//	if err != nil {
//	    if catalogkit.IsAlreadyExists(err) {
//	        // duplicate identifier
//	    }
//	    var dbErr *dbkit.Error
//	    if errors.As(err, &dbErr) {
//	        fmt.Printf("Operation: %s, Table: %s\n", dbErr.Operation, dbErr.Table)
//	    }
//	}
type Service struct {
	db        dbkit.IDB
	registry  *Registry
	txMonitor *transactionMonitor

	now               func() time.Time
	bootstrap         Identity
	transferTimelock  time.Duration
	recoveryThreshold int
}

// Option configures the Service.
type Option func(*Service)

// NewService creates a new catalog governance service.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := catalogkit.NewService(db,
//	    catalogkit.WithBootstrapIdentity("owner-key"),
//	)
func NewService(db dbkit.IDB, opts ...Option) *Service {
	s := &Service{
		db:                db,
		registry:          DefaultRegistry(),
		txMonitor:         newTransactionMonitor(),
		now:               time.Now,
		transferTimelock:  DefaultTransferTimelock,
		recoveryThreshold: DefaultRecoveryThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithRegistry sets a custom role registry. The default is DefaultRegistry.
func WithRegistry(registry *Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithClock sets the time source. The host owns the clock; tests inject a
// fixed or advancing clock to exercise the transfer timelock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithBootstrapIdentity sets the identity allowed to run Initialize. It
// becomes the first super admin.
func WithBootstrapIdentity(id Identity) Option {
	return func(s *Service) {
		s.bootstrap = id
	}
}

// WithTransferTimelock sets the delay between initiating and confirming a
// super admin transfer. Applied at Initialize and frozen into the state.
func WithTransferTimelock(d time.Duration) Option {
	return func(s *Service) {
		s.transferTimelock = d
	}
}

// WithRecoveryThreshold sets the number of admin votes required to execute an
// emergency recovery. Applied at Initialize and frozen into the state.
func WithRecoveryThreshold(n int) Option {
	return func(s *Service) {
		s.recoveryThreshold = n
	}
}

// Registry returns the role registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// ============================================================================
// AUDIT LOG
// ============================================================================

// GetAuditLog retrieves audit log entries with optional filters.
func (s *Service) GetAuditLog(ctx context.Context, filter AuditLogFilter) ([]CatalogAuditLog, error) {
	var logs []CatalogAuditLog
	q := s.db.NewSelect().Model(&logs)
	if !filter.Actor.IsZero() {
		q = q.Where("actor = ?", filter.Actor)
	}
	if filter.Subject != "" {
		q = q.Where("subject = ?", filter.Subject)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("timestamp <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("timestamp DESC")
	err := dbkit.WithErr1(q.Scan(ctx), "GetAuditLog").Err()
	if err != nil {
		return nil, err
	}

	return logs, nil
}
