package catalogkit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogFilter provides options for filtering audit log queries.
type AuditLogFilter struct {
	// Filter by actor who performed the action
	Actor Identity

	// Filter by subject of the action (a target identity or book id)
	Subject string

	// Filter by action type (e.g. "add_book", "initiate_transfer")
	Action string

	// Filter by time range
	Since time.Time
	Until time.Time

	// Pagination
	Limit  int
	Offset int
}

// NewAuditLogFilter creates a new AuditLogFilter with default values.
func NewAuditLogFilter() AuditLogFilter {
	return AuditLogFilter{
		Limit: 100,
	}
}

// WithActor sets the actor filter.
func (f AuditLogFilter) WithActor(actor Identity) AuditLogFilter {
	f.Actor = actor
	return f
}

// WithSubject sets the subject filter.
func (f AuditLogFilter) WithSubject(subject string) AuditLogFilter {
	f.Subject = subject
	return f
}

// WithBook filters to entries about one catalog entry.
func (f AuditLogFilter) WithBook(id uuid.UUID) AuditLogFilter {
	f.Subject = id.String()
	return f
}

// WithIdentity filters to entries about one identity, such as role grants
// or card issuance.
func (f AuditLogFilter) WithIdentity(id Identity) AuditLogFilter {
	f.Subject = string(id)
	return f
}

// WithAction sets the action filter.
func (f AuditLogFilter) WithAction(action AuditAction) AuditLogFilter {
	f.Action = string(action)
	return f
}

// WithTimeRange sets the time range filter.
func (f AuditLogFilter) WithTimeRange(since, until time.Time) AuditLogFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithSince sets the start time filter.
func (f AuditLogFilter) WithSince(since time.Time) AuditLogFilter {
	f.Since = since
	return f
}

// WithUntil sets the end time filter.
func (f AuditLogFilter) WithUntil(until time.Time) AuditLogFilter {
	f.Until = until
	return f
}

// WithLimit sets the limit for results.
func (f AuditLogFilter) WithLimit(limit int) AuditLogFilter {
	f.Limit = limit
	return f
}

// WithOffset sets the offset for pagination.
func (f AuditLogFilter) WithOffset(offset int) AuditLogFilter {
	f.Offset = offset
	return f
}

// WithPagination sets both limit and offset.
func (f AuditLogFilter) WithPagination(limit, offset int) AuditLogFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
