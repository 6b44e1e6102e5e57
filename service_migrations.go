package catalogkit

import (
	"context"
	"fmt"

	"github.com/fernandezvara/dbkit"
)

// Migrations returns all database migrations required by catalogkit.
// Run them with db.Migrate(ctx, service.Migrations()) on the dbkit handle,
// or through NewMigrationService(service).RunMigrations(ctx).
func (s *Service) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "catalogkit-001",
			Description: "Create governance_state table",
			SQL: `
                CREATE TABLE IF NOT EXISTS governance_state (
                    id TEXT PRIMARY KEY,
                    super_admin TEXT NOT NULL,
                    admins TEXT[],
                    moderators TEXT[],
                    curators TEXT[],
                    paused BOOLEAN NOT NULL DEFAULT false,
                    book_count BIGINT NOT NULL DEFAULT 0,
                    pending_super_admin TEXT,
                    transfer_initiated_at TIMESTAMPTZ,
                    transfer_timelock BIGINT NOT NULL,
                    recovery_new_admin TEXT,
                    recovery_initiated_at TIMESTAMPTZ,
                    recovery_votes TEXT[],
                    recovery_threshold INTEGER NOT NULL,
                    version INTEGER NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "catalogkit-002",
			Description: "Create books table",
			SQL: `
                CREATE TABLE IF NOT EXISTS books (
                    id UUID PRIMARY KEY,
                    title TEXT NOT NULL,
                    author TEXT NOT NULL,
                    genre TEXT NOT NULL,
                    content_hash TEXT NOT NULL,
                    added_by TEXT NOT NULL,
                    added_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "catalogkit-003",
			Description: "Create library_cards table",
			SQL: `
                CREATE TABLE IF NOT EXISTS library_cards (
                    owner TEXT PRIMARY KEY,
                    issued_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "catalogkit-004",
			Description: "Create catalog_audit_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS catalog_audit_log (
                    id BIGSERIAL PRIMARY KEY,
                    timestamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    actor TEXT NOT NULL,
                    action TEXT NOT NULL,
                    subject TEXT,
                    summary TEXT NOT NULL,
                    ip_address TEXT,
                    user_agent TEXT,
                    request_id TEXT,
                    metadata JSONB
                )`,
		},
		{
			ID:          "catalogkit-005",
			Description: "Index books and catalog_audit_log",
			SQL: `
                CREATE INDEX IF NOT EXISTS idx_books_genre ON books (genre);
                CREATE INDEX IF NOT EXISTS idx_books_added_by ON books (added_by);
                CREATE INDEX IF NOT EXISTS idx_catalog_audit_actor ON catalog_audit_log (actor);
                CREATE INDEX IF NOT EXISTS idx_catalog_audit_action ON catalog_audit_log (action);
                CREATE INDEX IF NOT EXISTS idx_catalog_audit_timestamp ON catalog_audit_log (timestamp)`,
		},
	}
}

// ValidateMigrations checks the migration list for duplicate IDs and empty
// statements. It needs no database connection.
func (s *Service) ValidateMigrations() error {
	seen := make(map[string]bool)
	for _, m := range s.Migrations() {
		if m.ID == "" {
			return fmt.Errorf("catalogkit: migration with empty ID")
		}
		if seen[m.ID] {
			return fmt.Errorf("catalogkit: duplicate migration ID %q", m.ID)
		}
		seen[m.ID] = true
		if m.SQL == "" {
			return fmt.Errorf("catalogkit: migration %s has no SQL", m.ID)
		}
	}
	return nil
}

// MigrationStatus summarizes a migration run.
type MigrationStatus struct {
	Total   int      // migrations known to this build
	Applied []string // IDs applied during this run
}

// MigrationService provides migration management functionality as an
// extension to Service.
type MigrationService struct {
	*Service
}

// NewMigrationService creates a new migration service extension.
func NewMigrationService(service *Service) *MigrationService {
	return &MigrationService{Service: service}
}

// RunMigrations applies pending migrations and reports which ran. The service
// must be backed by a *dbkit.DBKit handle; a transaction scoped service
// cannot migrate.
func (ms *MigrationService) RunMigrations(ctx context.Context) (*MigrationStatus, error) {
	kit, ok := ms.db.(*dbkit.DBKit)
	if !ok {
		return nil, fmt.Errorf("catalogkit: migrations require a *dbkit.DBKit handle")
	}

	migrations := ms.Migrations()
	result, err := kit.Migrate(ctx, migrations)
	if err != nil {
		return nil, dbkit.WithErr1(err, "RunMigrations").Err()
	}

	status := &MigrationStatus{Total: len(migrations)}
	for _, applied := range result.Applied {
		status.Applied = append(status.Applied, applied.ID)
	}
	return status, nil
}
