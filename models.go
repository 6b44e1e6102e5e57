package catalogkit

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// governanceStateID is the fixed well-known key of the singleton governance row.
const governanceStateID = "governance"

// StateVersion is the schema version of the governance record this build
// reads and writes. Rows carrying any other version are rejected with
// ErrUnsupportedStateVersion; there is no in-place upgrade path.
const StateVersion = 2

// Role set capacities. Fixed limits, not configuration.
const (
	MaxAdmins     = 3
	MaxModerators = 5
	MaxCurators   = 10
)

// Defaults applied at Initialize unless overridden with service options.
const (
	DefaultTransferTimelock  = 7 * 24 * time.Hour
	DefaultRecoveryThreshold = 2
)

// GovernanceState is the singleton governance record. It is created once by
// Initialize, mutated in place by every governance operation, and never
// deleted. All mutating operations load it FOR UPDATE so competing callers
// serialize on the row.
type GovernanceState struct {
	bun.BaseModel `bun:"table:governance_state,alias:gs"`

	ID         string     `bun:"id,pk"`
	SuperAdmin Identity   `bun:"super_admin,notnull"`
	Admins     []Identity `bun:"admins,array"`
	Moderators []Identity `bun:"moderators,array"`
	Curators   []Identity `bun:"curators,array"`
	Paused     bool       `bun:"paused,notnull,default:false"`

	// BookCount tracks additions minus removals. Informational, not a strict
	// inventory count.
	BookCount int64 `bun:"book_count,notnull,default:0"`

	// Transfer protocol fields. Present only while a hand-off is in flight.
	PendingSuperAdmin   Identity      `bun:"pending_super_admin,nullzero"`
	TransferInitiatedAt time.Time     `bun:"transfer_initiated_at,nullzero"`
	TransferTimelock    time.Duration `bun:"transfer_timelock,notnull"`

	// Recovery protocol fields. Present only while an episode is active.
	RecoveryNewAdmin    Identity   `bun:"recovery_new_admin,nullzero"`
	RecoveryInitiatedAt time.Time  `bun:"recovery_initiated_at,nullzero"`
	RecoveryVotes       []Identity `bun:"recovery_votes,array"`
	RecoveryThreshold   int        `bun:"recovery_threshold,notnull"`

	Version   int       `bun:"version,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Clone returns a deep copy of the state. Useful for before/after comparison
// around an attempted transition.
func (g *GovernanceState) Clone() *GovernanceState {
	clone := *g
	clone.Admins = append([]Identity(nil), g.Admins...)
	clone.Moderators = append([]Identity(nil), g.Moderators...)
	clone.Curators = append([]Identity(nil), g.Curators...)
	clone.RecoveryVotes = append([]Identity(nil), g.RecoveryVotes...)
	return &clone
}

// Book is a catalog entry. The identifier is client-supplied and validated as
// a v4 UUID; the primary key is the deterministic storage address, so a
// duplicate insert is rejected by the database rather than by an existence
// scan.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Title       string    `bun:"title,notnull"`
	Author      string    `bun:"author,notnull"`
	Genre       string    `bun:"genre,notnull"`
	ContentHash string    `bun:"content_hash,notnull"`
	AddedBy     Identity  `bun:"added_by,notnull"`
	AddedAt     time.Time `bun:"added_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// BookUpdate carries the fields to replace on a book. Nil fields are left
// untouched; each provided field is re-validated independently.
type BookUpdate struct {
	Title       *string
	Author      *string
	Genre       *string
	ContentHash *string
}

// IsEmpty reports whether the update changes nothing.
func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Genre == nil && u.ContentHash == nil
}

// LibraryCard is a per-identity access token. The owner is the primary key,
// so each identity holds at most one card; cards are never mutated or
// destroyed once issued.
type LibraryCard struct {
	bun.BaseModel `bun:"table:library_cards,alias:lc"`

	Owner    Identity  `bun:"owner,pk"`
	IssuedAt time.Time `bun:"issued_at,notnull"`
}

// CatalogAuditLog records every successful mutating operation for compliance
// and debugging. Rows are written in the same transaction as the mutation
// they describe.
type CatalogAuditLog struct {
	bun.BaseModel `bun:"table:catalog_audit_log,alias:cal"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp"`

	// Who performed the action
	Actor Identity `bun:"actor,notnull"`

	// What action was performed
	Action string `bun:"action,notnull"`

	// Subject of the action: a target identity, a book id, or empty
	Subject string `bun:"subject"`

	// Summary is the human-readable audit line returned to operators
	Summary string `bun:"summary,notnull"`

	// Request metadata for forensics
	IPAddress string `bun:"ip_address"`
	UserAgent string `bun:"user_agent"`
	RequestID string `bun:"request_id"`

	// Additional context (JSON)
	Metadata map[string]any `bun:"metadata,type:jsonb"`
}

// AuditAction represents the type of action in the audit log.
type AuditAction string

const (
	AuditActionInitialize       AuditAction = "initialize"
	AuditActionAddAdmin         AuditAction = "add_admin"
	AuditActionRemoveAdmin      AuditAction = "remove_admin"
	AuditActionAddModerator     AuditAction = "add_moderator"
	AuditActionRemoveModerator  AuditAction = "remove_moderator"
	AuditActionAddCurator       AuditAction = "add_curator"
	AuditActionRemoveCurator    AuditAction = "remove_curator"
	AuditActionInitiateTransfer AuditAction = "initiate_transfer"
	AuditActionConfirmTransfer  AuditAction = "confirm_transfer"
	AuditActionCancelTransfer   AuditAction = "cancel_transfer"
	AuditActionInitiateRecovery AuditAction = "initiate_recovery"
	AuditActionVoteRecovery     AuditAction = "vote_recovery"
	AuditActionCancelRecovery   AuditAction = "cancel_recovery"
	AuditActionPause            AuditAction = "pause"
	AuditActionUnpause          AuditAction = "unpause"
	AuditActionAddBook          AuditAction = "add_book"
	AuditActionUpdateBook       AuditAction = "update_book"
	AuditActionRemoveBook       AuditAction = "remove_book"
	AuditActionIssueCard        AuditAction = "issue_card"
)

// AuditEntry is used to create new audit log entries.
type AuditEntry struct {
	Actor     Identity
	Action    AuditAction
	Subject   string
	Summary   string
	IPAddress string
	UserAgent string
	RequestID string
	Metadata  map[string]any
}

// ToModel converts an AuditEntry to a CatalogAuditLog model.
func (e *AuditEntry) ToModel() *CatalogAuditLog {
	return &CatalogAuditLog{
		Actor:     e.Actor,
		Action:    string(e.Action),
		Subject:   e.Subject,
		Summary:   e.Summary,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		RequestID: e.RequestID,
		Metadata:  e.Metadata,
		Timestamp: time.Now(),
	}
}
