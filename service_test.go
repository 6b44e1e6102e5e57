package catalogkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewService tests service construction.
func TestNewService(t *testing.T) {
	service := NewService(nil)

	assert.NotNil(t, service)
	assert.NotNil(t, service.Registry())
	assert.NotNil(t, service.txMonitor)
	assert.Equal(t, DefaultTransferTimelock, service.transferTimelock)
	assert.Equal(t, DefaultRecoveryThreshold, service.recoveryThreshold)
}

// TestNewServiceOptions tests service options.
func TestNewServiceOptions(t *testing.T) {
	t.Run("WithRegistry", func(t *testing.T) {
		registry := NewRegistry()
		registry.DefineRole("archivist").Capacity(2).Permissions("books.*")

		service := NewService(nil, WithRegistry(registry))
		assert.Same(t, registry, service.Registry())
	})

	t.Run("WithBootstrapIdentity", func(t *testing.T) {
		service := NewService(nil, WithBootstrapIdentity("owner"))
		assert.Equal(t, Identity("owner"), service.bootstrap)
	})

	t.Run("WithClock", func(t *testing.T) {
		frozen := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
		service := NewService(nil, WithClock(func() time.Time { return frozen }))
		assert.Equal(t, frozen, service.now())
	})

	t.Run("WithTransferTimelock", func(t *testing.T) {
		service := NewService(nil, WithTransferTimelock(time.Minute))
		assert.Equal(t, time.Minute, service.transferTimelock)
	})

	t.Run("WithRecoveryThreshold", func(t *testing.T) {
		service := NewService(nil, WithRecoveryThreshold(3))
		assert.Equal(t, 3, service.recoveryThreshold)
	})
}

// TestServiceDefaultRegistry tests that the default registry carries the hierarchy.
func TestServiceDefaultRegistry(t *testing.T) {
	service := NewService(nil)

	registry := service.Registry()
	assert.NotNil(t, registry.GetRole(RoleSuperAdmin))
	assert.NotNil(t, registry.GetRole(RoleAdmin))
	assert.NotNil(t, registry.GetRole(RoleModerator))
	assert.NotNil(t, registry.GetRole(RoleCurator))
}

// TestServiceGetAuditLogNilDB verifies panic behavior when db is nil.
func TestServiceGetAuditLogNilDB(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	assert.Panics(t, func() {
		_, _ = service.GetAuditLog(ctx, NewAuditLogFilter())
	})
}

// TestServiceGetAuditLogFiltersNilDB checks filters still panic when db is nil.
func TestServiceGetAuditLogFiltersNilDB(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	filter := NewAuditLogFilter().
		WithActor("actor123").
		WithSubject("book456").
		WithAction(AuditActionAddBook).
		WithLimit(10).
		WithOffset(5)

	assert.Panics(t, func() {
		_, _ = service.GetAuditLog(ctx, filter)
	})
}
