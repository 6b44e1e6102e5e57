package catalogkit

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// TestDataHelper provides utilities for setting up a governed catalog in
// tests. Each helper owns a freshly initialized governance state whose super
// admin is unique to the test.
type TestDataHelper struct {
	service *Service
	ctx     context.Context
	t       *testing.T

	// Super is the bootstrap super admin of this fixture.
	Super Identity
}

// NewTestDataHelper creates a new test data helper with database setup and an
// initialized governance state.
func NewTestDataHelper(t *testing.T) *TestDataHelper {
	if !RequireDatabase(t) {
		return nil
	}

	ctx := context.Background()
	super := Identity(fmt.Sprintf("super-%d", time.Now().UnixNano()))

	service, err := SetupTestDatabase(ctx, WithBootstrapIdentity(super))
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}

	if err := service.Initialize(WithCaller(ctx, super)); err != nil {
		t.Fatalf("Failed to initialize governance: %v", err)
	}

	return &TestDataHelper{
		service: service,
		ctx:     ctx,
		t:       t,
		Super:   super,
	}
}

// CreateTestIdentity creates a test identity unique to this process run.
func (h *TestDataHelper) CreateTestIdentity(prefix string) Identity {
	return Identity(prefix + "-" + fmt.Sprintf("%d", time.Now().UnixNano()))
}

// SuperCtx returns a context calling as the fixture's super admin.
func (h *TestDataHelper) SuperCtx() context.Context {
	return WithCaller(h.ctx, h.Super)
}

// As returns a context calling as id.
func (h *TestDataHelper) As(id Identity) context.Context {
	return WithCaller(h.ctx, id)
}

// SetupAdmin grants the admin role to a fresh identity and returns it.
func (h *TestDataHelper) SetupAdmin(prefix string) Identity {
	id := h.CreateTestIdentity(prefix)
	if err := h.service.AddAdmin(h.SuperCtx(), id); err != nil {
		h.t.Fatalf("Failed to add admin %s: %v", id, err)
	}
	return id
}

// SetupModerator grants the moderator role to a fresh identity and returns it.
func (h *TestDataHelper) SetupModerator(prefix string) Identity {
	id := h.CreateTestIdentity(prefix)
	if err := h.service.AddModerator(h.SuperCtx(), id); err != nil {
		h.t.Fatalf("Failed to add moderator %s: %v", id, err)
	}
	return id
}

// SetupCurator grants the curator role to a fresh identity and returns it.
func (h *TestDataHelper) SetupCurator(prefix string) Identity {
	id := h.CreateTestIdentity(prefix)
	if err := h.service.AddCurator(h.SuperCtx(), id); err != nil {
		h.t.Fatalf("Failed to add curator %s: %v", id, err)
	}
	return id
}

// SetupCardHolder issues a library card to a fresh identity and returns it.
func (h *TestDataHelper) SetupCardHolder(prefix string) Identity {
	id := h.CreateTestIdentity(prefix)
	if _, err := h.service.IssueLibraryCard(h.As(id)); err != nil {
		h.t.Fatalf("Failed to issue library card to %s: %v", id, err)
	}
	return id
}

// CleanupTestData empties every catalogkit table.
func (h *TestDataHelper) CleanupTestData() error {
	return resetTestTables(h.ctx, h.service)
}

// AssertHasRole verifies an identity holds a role.
func (h *TestDataHelper) AssertHasRole(id Identity, role string) {
	if !h.service.HasRole(h.ctx, id, role) {
		h.t.Errorf("Identity %s should have role %s", id, role)
	}
}

// AssertNotHasRole verifies an identity does not hold a role.
func (h *TestDataHelper) AssertNotHasRole(id Identity, role string) {
	if h.service.HasRole(h.ctx, id, role) {
		h.t.Errorf("Identity %s should not have role %s", id, role)
	}
}

// AssertPermissionGranted verifies a permission is granted.
func (h *TestDataHelper) AssertPermissionGranted(id Identity, permission string) {
	if !h.service.HasPermission(h.ctx, id, permission) {
		h.t.Errorf("Identity %s should have permission %s", id, permission)
	}
}

// AssertPermissionDenied verifies a permission is denied.
func (h *TestDataHelper) AssertPermissionDenied(id Identity, permission string) {
	if h.service.HasPermission(h.ctx, id, permission) {
		h.t.Errorf("Identity %s should not have permission %s", id, permission)
	}
}

// AssertAuditAction verifies at least one audit row carries the action.
func (h *TestDataHelper) AssertAuditAction(action AuditAction) {
	entries, err := h.service.GetAuditLog(h.ctx, NewAuditLogFilter().WithAction(action))
	if err != nil {
		h.t.Fatalf("Failed to read audit log: %v", err)
	}
	if len(entries) == 0 {
		h.t.Errorf("Expected an audit entry with action %s", action)
	}
}

// GetService returns the service instance
func (h *TestDataHelper) GetService() *Service {
	return h.service
}

// GetContext returns the context instance
func (h *TestDataHelper) GetContext() context.Context {
	return h.ctx
}

// GetT returns the testing.T instance
func (h *TestDataHelper) GetT() *testing.T {
	return h.t
}
