package catalogkit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection
type Database interface {
	dbkit.IDB
}

// TransactionManager defines the transaction management interface
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context, tx *Service) error) error
	TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context, tx *Service) error) error
	ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx *Service) error) error
}

// MigrationManager defines the migration management interface
type MigrationManager interface {
	Migrations() []dbkit.Migration
	ValidateMigrations() error
	RunMigrations(ctx context.Context) (*MigrationStatus, error)
}

// HealthMonitor defines the health monitoring interface
type HealthMonitor interface {
	Health(ctx context.Context) dbkit.HealthStatus
	IsHealthy(ctx context.Context) bool
	Ping(ctx context.Context) error
	GetPoolStats() dbkit.PoolStats
	GovernanceHealth(ctx context.Context) GovernanceHealth
}

// PoolManager defines the connection pool management interface
type PoolManager interface {
	ConfigureConnectionPool(config PoolConfig) error
	GetConnectionPoolConfig() (*PoolConfig, error)
	OptimizeConnectionPool() error
	ResetConnectionPool() error
}

// QueryHelper defines the query helper interface
type QueryHelper interface {
	CountBooks(ctx context.Context) (int, error)
	CountLibraryCards(ctx context.Context) (int, error)
	HasLibraryCard(ctx context.Context, owner Identity) bool
}

// AuditLogger defines the audit logging interface
type AuditLogger interface {
	logAudit(ctx context.Context, action AuditAction, subject, summary string, metadata map[string]any) error
}

// TransactionMonitor defines the transaction monitoring interface
type TransactionMonitor interface {
	GetTransactionMetrics() TransactionMetrics
	ResetTransactionMetrics()
	IsTransactionHealthy() bool
}
