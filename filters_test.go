package catalogkit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestNewAuditLogFilter tests creating a new audit log filter
func TestNewAuditLogFilter(t *testing.T) {
	filter := NewAuditLogFilter()

	assert.Equal(t, 100, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, ZeroIdentity, filter.Actor)
	assert.Equal(t, "", filter.Subject)
	assert.Equal(t, "", filter.Action)
	assert.True(t, filter.Since.IsZero())
	assert.True(t, filter.Until.IsZero())
}

// TestAuditLogFilterWithActor tests setting actor filter
func TestAuditLogFilterWithActor(t *testing.T) {
	filter := NewAuditLogFilter()

	result := filter.WithActor("head")

	assert.Equal(t, Identity("head"), result.Actor)
	assert.Equal(t, 100, result.Limit) // Other fields unchanged
	assert.Equal(t, 0, result.Offset)
}

// TestAuditLogFilterWithSubject tests setting subject filter
func TestAuditLogFilterWithSubject(t *testing.T) {
	filter := NewAuditLogFilter()

	result := filter.WithSubject("alice")

	assert.Equal(t, "alice", result.Subject)
	assert.Equal(t, 100, result.Limit) // Other fields unchanged
}

// TestAuditLogFilterWithBook tests the book convenience filter
func TestAuditLogFilterWithBook(t *testing.T) {
	id := uuid.New()

	result := NewAuditLogFilter().WithBook(id)

	assert.Equal(t, id.String(), result.Subject)
}

// TestAuditLogFilterWithIdentity tests the identity convenience filter
func TestAuditLogFilterWithIdentity(t *testing.T) {
	result := NewAuditLogFilter().WithIdentity("curator-casey")

	assert.Equal(t, "curator-casey", result.Subject)
}

// TestAuditLogFilterWithAction tests setting action filter
func TestAuditLogFilterWithAction(t *testing.T) {
	filter := NewAuditLogFilter()

	result := filter.WithAction(AuditActionAddBook)

	assert.Equal(t, "add_book", result.Action)
	assert.Equal(t, 100, result.Limit) // Other fields unchanged
}

// TestAuditLogFilterWithTimeRange tests setting time range filter
func TestAuditLogFilterWithTimeRange(t *testing.T) {
	filter := NewAuditLogFilter()

	since := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)

	result := filter.WithTimeRange(since, until)

	assert.Equal(t, since, result.Since)
	assert.Equal(t, until, result.Until)
	assert.Equal(t, 100, result.Limit) // Other fields unchanged
}

// TestAuditLogFilterWithSince tests setting start time filter
func TestAuditLogFilterWithSince(t *testing.T) {
	filter := NewAuditLogFilter()

	since := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	result := filter.WithSince(since)

	assert.Equal(t, since, result.Since)
	assert.True(t, result.Until.IsZero()) // Until unchanged
}

// TestAuditLogFilterWithUntil tests setting end time filter
func TestAuditLogFilterWithUntil(t *testing.T) {
	filter := NewAuditLogFilter()

	until := time.Date(2023, 6, 30, 23, 59, 59, 0, time.UTC)

	result := filter.WithUntil(until)

	assert.True(t, result.Since.IsZero()) // Since unchanged
	assert.Equal(t, until, result.Until)
}

// TestAuditLogFilterWithLimit tests setting limit
func TestAuditLogFilterWithLimit(t *testing.T) {
	filter := NewAuditLogFilter()

	result := filter.WithLimit(50)

	assert.Equal(t, 50, result.Limit)
	assert.Equal(t, 0, result.Offset) // Other fields unchanged
}

// TestAuditLogFilterWithOffset tests setting offset
func TestAuditLogFilterWithOffset(t *testing.T) {
	filter := NewAuditLogFilter()

	result := filter.WithOffset(10)

	assert.Equal(t, 10, result.Offset)
	assert.Equal(t, 100, result.Limit) // Other fields unchanged
}

// TestAuditLogFilterWithPagination tests setting both limit and offset
func TestAuditLogFilterWithPagination(t *testing.T) {
	filter := NewAuditLogFilter()

	result := filter.WithPagination(25, 50)

	assert.Equal(t, 25, result.Limit)
	assert.Equal(t, 50, result.Offset)
}

// TestAuditLogFilterChaining tests method chaining
func TestAuditLogFilterChaining(t *testing.T) {
	since := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)

	filter := NewAuditLogFilter().
		WithActor("head").
		WithSubject("alice").
		WithAction(AuditActionAddAdmin).
		WithTimeRange(since, until).
		WithLimit(50).
		WithOffset(10)

	assert.Equal(t, Identity("head"), filter.Actor)
	assert.Equal(t, "alice", filter.Subject)
	assert.Equal(t, "add_admin", filter.Action)
	assert.Equal(t, since, filter.Since)
	assert.Equal(t, until, filter.Until)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 10, filter.Offset)
}

// TestAuditLogFilterEdgeCases tests edge cases and special values
func TestAuditLogFilterEdgeCases(t *testing.T) {
	t.Run("Empty values", func(t *testing.T) {
		filter := NewAuditLogFilter()

		result := filter.WithActor(ZeroIdentity)
		assert.Equal(t, ZeroIdentity, result.Actor)

		result2 := filter.WithSubject("")
		assert.Equal(t, "", result2.Subject)
	})

	t.Run("Zero values", func(t *testing.T) {
		filter := NewAuditLogFilter()

		result := filter.WithLimit(0)
		assert.Equal(t, 0, result.Limit)

		result2 := filter.WithPagination(0, 0)
		assert.Equal(t, 0, result2.Limit)
		assert.Equal(t, 0, result2.Offset)
	})

	t.Run("Zero time", func(t *testing.T) {
		filter := NewAuditLogFilter()

		zero := time.Time{}

		result := filter.WithTimeRange(zero, zero)
		assert.True(t, result.Since.IsZero())
		assert.True(t, result.Until.IsZero())
	})

	t.Run("Unix epoch time", func(t *testing.T) {
		filter := NewAuditLogFilter()

		epoch := time.Unix(0, 0)

		result := filter.WithSince(epoch)
		assert.Equal(t, epoch, result.Since)
		assert.False(t, result.Since.IsZero()) // Unix epoch is not zero
	})
}

// TestAuditLogFilterImmutability tests that methods return new instances
func TestAuditLogFilterImmutability(t *testing.T) {
	original := NewAuditLogFilter()

	modified := original.WithActor("head")

	// Original should be unchanged (value receiver)
	assert.Equal(t, ZeroIdentity, original.Actor)
	assert.Equal(t, Identity("head"), modified.Actor)

	modified2 := modified.WithSubject("alice")

	assert.Equal(t, Identity("head"), modified.Actor)
	assert.Equal(t, "", modified.Subject)
	assert.Equal(t, "alice", modified2.Subject)
}

// TestAuditLogFilterActionConversion tests action string conversion
func TestAuditLogFilterActionConversion(t *testing.T) {
	filter := NewAuditLogFilter()

	result1 := filter.WithAction(AuditActionConfirmTransfer)
	assert.Equal(t, "confirm_transfer", result1.Action)

	result2 := filter.WithAction(AuditActionVoteRecovery)
	assert.Equal(t, "vote_recovery", result2.Action)

	result3 := filter.WithAction("custom_action")
	assert.Equal(t, "custom_action", result3.Action)
}
