package catalogkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog governance operations.
var (
	// ErrNotSuperAdmin is returned when an operation reserved for the
	// super-admin is attempted by anyone else.
	ErrNotSuperAdmin = errors.New("catalogkit: caller is not the super admin")

	// ErrInsufficientPermissions is returned when the caller's roles do not
	// grant the permission an operation requires.
	ErrInsufficientPermissions = errors.New("catalogkit: insufficient permissions")

	// ErrFieldTooShort is returned when a text field is below its minimum length.
	ErrFieldTooShort = errors.New("catalogkit: field too short")

	// ErrFieldTooLong is returned when a text field exceeds its maximum length.
	ErrFieldTooLong = errors.New("catalogkit: field too long")

	// ErrInvalidInput is returned when a text field contains non-printable
	// characters or a banned pattern.
	ErrInvalidInput = errors.New("catalogkit: invalid input")

	// ErrInvalidContentHash is returned when a content hash has an
	// unrecognized prefix, length, or alphabet.
	ErrInvalidContentHash = errors.New("catalogkit: invalid content hash")

	// ErrInvalidBookID is returned when a book identifier is not a valid v4 UUID.
	ErrInvalidBookID = errors.New("catalogkit: invalid book id")

	// ErrInvalidSuperAdmin is returned when a super-admin candidate is the
	// zero identity, an existing admin, or a reserved identity.
	ErrInvalidSuperAdmin = errors.New("catalogkit: invalid super admin candidate")

	// ErrSelfTransferNotAllowed is returned when the super-admin tries to
	// transfer ownership to itself.
	ErrSelfTransferNotAllowed = errors.New("catalogkit: self transfer not allowed")

	// ErrTransferAlreadyPending is returned when a transfer is initiated
	// while another is in flight.
	ErrTransferAlreadyPending = errors.New("catalogkit: transfer already pending")

	// ErrNoPendingTransfer is returned when confirming or cancelling a
	// transfer that was never initiated.
	ErrNoPendingTransfer = errors.New("catalogkit: no pending transfer")

	// ErrTimelockNotExpired is returned when a transfer is confirmed before
	// its timelock has elapsed.
	ErrTimelockNotExpired = errors.New("catalogkit: timelock not expired")

	// ErrRecoveryInProgress is returned when a recovery is initiated while
	// another episode is active.
	ErrRecoveryInProgress = errors.New("catalogkit: emergency recovery already in progress")

	// ErrNoRecoveryInProgress is returned when voting on or cancelling a
	// recovery that is not active.
	ErrNoRecoveryInProgress = errors.New("catalogkit: no emergency recovery in progress")

	// ErrAlreadyVoted is returned when an admin votes twice in the same
	// recovery episode.
	ErrAlreadyVoted = errors.New("catalogkit: already voted for recovery")

	// ErrInsufficientAdminsForRecovery is returned when recovery is initiated
	// with fewer admins than the vote threshold.
	ErrInsufficientAdminsForRecovery = errors.New("catalogkit: insufficient admins for recovery")

	// ErrLimitReached is returned when a role set is at capacity.
	ErrLimitReached = errors.New("catalogkit: role limit reached")

	// ErrAlreadyExists is returned when inserting a role member, book, or
	// library card that already exists.
	ErrAlreadyExists = errors.New("catalogkit: already exists")

	// ErrNotFound is returned when a role member, book, or library card is absent.
	ErrNotFound = errors.New("catalogkit: not found")

	// ErrPaused is returned when a pause-gated operation runs while the
	// catalog is paused.
	ErrPaused = errors.New("catalogkit: catalog is paused")

	// ErrNotInitialized is returned when the governance state has not been
	// created yet.
	ErrNotInitialized = errors.New("catalogkit: governance not initialized")

	// ErrAlreadyInitialized is returned when Initialize runs twice.
	ErrAlreadyInitialized = errors.New("catalogkit: governance already initialized")

	// ErrNoBootstrapIdentity is returned when Initialize runs without a
	// configured bootstrap identity.
	ErrNoBootstrapIdentity = errors.New("catalogkit: no bootstrap identity configured")

	// ErrUnsupportedStateVersion is returned when the stored governance state
	// has a schema version this build does not understand.
	ErrUnsupportedStateVersion = errors.New("catalogkit: unsupported governance state version")

	// ErrNoCaller is returned when the caller identity is missing from context.
	ErrNoCaller = errors.New("catalogkit: no caller identity in context")

	// ErrInvalidRole is returned when a role name is not defined in the registry.
	ErrInvalidRole = errors.New("catalogkit: invalid role")

	// ErrInvalidThreshold is returned when a recovery threshold below 1 is configured.
	ErrInvalidThreshold = errors.New("catalogkit: invalid recovery threshold")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err      error    // Underlying sentinel error
	Message  string   // Additional context
	Field    string   // Text field involved (if applicable)
	Role     string   // Role involved (if applicable)
	Identity Identity // Identity the operation targeted (if applicable)
	Actor    Identity // Caller that triggered the error (if applicable)
	Book     string   // Book identifier involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithField adds the offending text field name to the error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// WithIdentity adds the target identity to the error.
func (e *Error) WithIdentity(id Identity) *Error {
	e.Identity = id
	return e
}

// WithActor adds the caller identity to the error.
func (e *Error) WithActor(actor Identity) *Error {
	e.Actor = actor
	return e
}

// WithBook adds the book identifier to the error.
func (e *Error) WithBook(id string) *Error {
	e.Book = id
	return e
}

// IsAuthorizationError checks if an error is an authorization failure.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrNotSuperAdmin) || errors.Is(err, ErrInsufficientPermissions)
}

// IsValidationError checks if an error is an input validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrFieldTooShort) ||
		errors.Is(err, ErrFieldTooLong) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidContentHash) ||
		errors.Is(err, ErrInvalidBookID) ||
		errors.Is(err, ErrInvalidSuperAdmin) ||
		errors.Is(err, ErrSelfTransferNotAllowed)
}

// IsStateConflict checks if an error is a governance state-machine conflict.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrTransferAlreadyPending) ||
		errors.Is(err, ErrNoPendingTransfer) ||
		errors.Is(err, ErrTimelockNotExpired) ||
		errors.Is(err, ErrRecoveryInProgress) ||
		errors.Is(err, ErrNoRecoveryInProgress) ||
		errors.Is(err, ErrAlreadyVoted) ||
		errors.Is(err, ErrInsufficientAdminsForRecovery)
}

// IsNotFound checks if an error reports a missing record or role member.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error reports a duplicate record or role member.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsLimitReached checks if an error reports a full role set.
func IsLimitReached(err error) bool {
	return errors.Is(err, ErrLimitReached)
}

// IsPaused checks if an error reports the pause circuit breaker.
func IsPaused(err error) bool {
	return errors.Is(err, ErrPaused)
}
