package catalogkit

import (
	"context"
	"errors"

	"github.com/fernandezvara/dbkit"
)

// HealthService provides health monitoring functionality as an extension to
// Service.
type HealthService struct {
	*Service
}

// NewHealthService creates a new health service extension.
func NewHealthService(service *Service) *HealthService {
	return &HealthService{Service: service}
}

// Health performs a comprehensive health check of the database connection,
// including latency and connection pool statistics.
func (hs *HealthService) Health(ctx context.Context) dbkit.HealthStatus {
	if db, ok := hs.db.(*dbkit.DBKit); ok {
		return db.Health(ctx)
	}

	// Transaction scoped handles only support a basic reachability probe.
	return dbkit.HealthStatus{
		Healthy: hs.IsHealthy(ctx),
		Error:   "Limited health check - not a DBKit instance",
	}
}

// IsHealthy reports whether the database is reachable.
func (hs *HealthService) IsHealthy(ctx context.Context) bool {
	if db, ok := hs.db.(*dbkit.DBKit); ok {
		return db.IsHealthy(ctx)
	}

	var count int
	err := hs.db.NewSelect().Model((*struct{})(nil)).ColumnExpr("1").Limit(1).Scan(ctx, &count)
	return err == nil
}

// Ping performs a basic connectivity test to the database.
func (hs *HealthService) Ping(ctx context.Context) error {
	var result int
	return hs.db.NewSelect().Model((*struct{})(nil)).ColumnExpr("1").Limit(1).Scan(ctx, &result)
}

// GovernanceHealth reports database health together with the governance
// singleton's condition.
type GovernanceHealth struct {
	Database    dbkit.HealthStatus
	Initialized bool
	Version     int
	Paused      bool
	BookCount   int64
	Error       string
}

// GovernanceHealth extends Health with a governance probe: whether the
// singleton exists, carries a supported version, and is paused.
func (hs *HealthService) GovernanceHealth(ctx context.Context) GovernanceHealth {
	gh := GovernanceHealth{Database: hs.Health(ctx)}

	state, err := hs.loadState(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotInitialized):
			gh.Error = "governance state not initialized"
		case errors.Is(err, ErrUnsupportedStateVersion):
			gh.Initialized = true
			gh.Error = err.Error()
		default:
			gh.Error = err.Error()
		}
		return gh
	}

	gh.Initialized = true
	gh.Version = state.Version
	gh.Paused = state.Paused
	gh.BookCount = state.BookCount
	return gh
}
