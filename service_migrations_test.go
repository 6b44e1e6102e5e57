package catalogkit

import (
	"strings"
	"testing"
)

// TestMigrations tests that migrations are properly defined
func TestMigrations(t *testing.T) {
	service := &Service{}
	migrations := service.Migrations()

	if len(migrations) == 0 {
		t.Error("Expected at least one migration")
	}

	seen := make(map[string]bool)
	allSQL := ""
	for _, m := range migrations {
		if m.ID == "" {
			t.Error("Migration ID should not be empty")
		}
		if m.Description == "" {
			t.Error("Migration description should not be empty")
		}
		if m.SQL == "" {
			t.Error("Migration SQL should not be empty")
		}
		if seen[m.ID] {
			t.Errorf("Migration ID %s is duplicated", m.ID)
		}
		seen[m.ID] = true
		allSQL += m.SQL
	}

	// Every table the models bind to must be created somewhere
	for _, table := range []string{"governance_state", "books", "library_cards", "catalog_audit_log"} {
		if !strings.Contains(allSQL, table) {
			t.Errorf("No migration creates table %s", table)
		}
	}
}

// TestValidateMigrations tests the migration sanity check
func TestValidateMigrations(t *testing.T) {
	service := &Service{}
	if err := service.ValidateMigrations(); err != nil {
		t.Errorf("ValidateMigrations failed: %v", err)
	}
}
