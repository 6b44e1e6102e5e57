package catalogkit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandezvara/dbkit"
)

// TestTransactionRequiresDatabase tests that transactions reject unsupported handles
func TestTransactionRequiresDatabase(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	err := service.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		t.Error("Callback should not run without a database")
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction support requires")

	err = service.TransactionWithOptions(ctx, dbkit.SerializableTxOptions(), func(ctx context.Context, tx *Service) error {
		t.Error("Callback should not run without a database")
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction support requires")

	err = service.ReadOnlyTransaction(ctx, func(ctx context.Context, tx *Service) error {
		t.Error("Callback should not run without a database")
		return nil
	})
	require.Error(t, err)
}

// TestTransactionMetricsRecording tests that every attempt lands in the metrics
func TestTransactionMetricsRecording(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	service.ResetTransactionMetrics()

	// Each rejected attempt still counts as a failed transaction
	for i := 0; i < 3; i++ {
		_ = service.Transaction(ctx, func(ctx context.Context, tx *Service) error {
			return nil
		})
	}

	metrics := service.GetTransactionMetrics()
	assert.Equal(t, int64(3), metrics.TotalTransactions)
	assert.Equal(t, int64(0), metrics.SuccessfulTransactions)
	assert.Equal(t, int64(3), metrics.FailedTransactions)

	// Reset clears the counters
	service.ResetTransactionMetrics()
	metrics = service.GetTransactionMetrics()
	assert.Equal(t, int64(0), metrics.TotalTransactions)
	assert.Equal(t, int64(0), metrics.FailedTransactions)
	assert.Equal(t, time.Duration(0), metrics.AverageDuration)
}

// TestTransactionHealthThresholds tests the transaction health verdict
func TestTransactionHealthThresholds(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	t.Run("Healthy with no traffic", func(t *testing.T) {
		service.ResetTransactionMetrics()
		assert.True(t, service.IsTransactionHealthy())
	})

	t.Run("Grace period below ten transactions", func(t *testing.T) {
		service.ResetTransactionMetrics()
		for i := 0; i < 9; i++ {
			_ = service.Transaction(ctx, func(ctx context.Context, tx *Service) error {
				return nil
			})
		}
		assert.True(t, service.IsTransactionHealthy(), "Few transactions should not trip the health check")
	})

	t.Run("Unhealthy on sustained failures", func(t *testing.T) {
		service.ResetTransactionMetrics()
		for i := 0; i < 10; i++ {
			_ = service.Transaction(ctx, func(ctx context.Context, tx *Service) error {
				return nil
			})
		}
		assert.False(t, service.IsTransactionHealthy(), "A total failure rate should trip the health check")
	})
}

// TestTransactionMonitorConcurrency tests metric recording under concurrent use
func TestTransactionMonitorConcurrency(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	service.ResetTransactionMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = service.Transaction(ctx, func(ctx context.Context, tx *Service) error {
				return nil
			})
		}()
	}
	wg.Wait()

	metrics := service.GetTransactionMetrics()
	assert.Equal(t, int64(10), metrics.TotalTransactions)
}

// TestTransactionClonesShareMetrics tests that transaction scoped services feed one monitor
func TestTransactionClonesShareMetrics(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	service.ResetTransactionMetrics()

	clone := service.withDB(nil)
	_ = clone.Transaction(ctx, func(ctx context.Context, tx *Service) error {
		return nil
	})

	metrics := service.GetTransactionMetrics()
	assert.Equal(t, int64(1), metrics.TotalTransactions, "Clones record into the parent monitor")
}

// TestTransactionMethodsAvailable tests that all transaction methods are available
func TestTransactionMethodsAvailable(t *testing.T) {
	service := NewService(nil)

	// Test that all transaction methods exist and are callable
	assert.NotNil(t, service.Transaction)
	assert.NotNil(t, service.TransactionWithOptions)
	assert.NotNil(t, service.ReadOnlyTransaction)
	assert.NotNil(t, service.GetTransactionMetrics)
	assert.NotNil(t, service.ResetTransactionMetrics)
	assert.NotNil(t, service.IsTransactionHealthy)
}
