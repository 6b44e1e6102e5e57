package catalogkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelErrors tests that all sentinel errors are properly defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotSuperAdmin", ErrNotSuperAdmin, "catalogkit: caller is not the super admin"},
		{"ErrInsufficientPermissions", ErrInsufficientPermissions, "catalogkit: insufficient permissions"},
		{"ErrFieldTooShort", ErrFieldTooShort, "catalogkit: field too short"},
		{"ErrFieldTooLong", ErrFieldTooLong, "catalogkit: field too long"},
		{"ErrInvalidInput", ErrInvalidInput, "catalogkit: invalid input"},
		{"ErrInvalidContentHash", ErrInvalidContentHash, "catalogkit: invalid content hash"},
		{"ErrInvalidBookID", ErrInvalidBookID, "catalogkit: invalid book id"},
		{"ErrInvalidSuperAdmin", ErrInvalidSuperAdmin, "catalogkit: invalid super admin candidate"},
		{"ErrSelfTransferNotAllowed", ErrSelfTransferNotAllowed, "catalogkit: self transfer not allowed"},
		{"ErrTransferAlreadyPending", ErrTransferAlreadyPending, "catalogkit: transfer already pending"},
		{"ErrNoPendingTransfer", ErrNoPendingTransfer, "catalogkit: no pending transfer"},
		{"ErrTimelockNotExpired", ErrTimelockNotExpired, "catalogkit: timelock not expired"},
		{"ErrRecoveryInProgress", ErrRecoveryInProgress, "catalogkit: emergency recovery already in progress"},
		{"ErrNoRecoveryInProgress", ErrNoRecoveryInProgress, "catalogkit: no emergency recovery in progress"},
		{"ErrAlreadyVoted", ErrAlreadyVoted, "catalogkit: already voted for recovery"},
		{"ErrInsufficientAdminsForRecovery", ErrInsufficientAdminsForRecovery, "catalogkit: insufficient admins for recovery"},
		{"ErrLimitReached", ErrLimitReached, "catalogkit: role limit reached"},
		{"ErrAlreadyExists", ErrAlreadyExists, "catalogkit: already exists"},
		{"ErrNotFound", ErrNotFound, "catalogkit: not found"},
		{"ErrPaused", ErrPaused, "catalogkit: catalog is paused"},
		{"ErrNotInitialized", ErrNotInitialized, "catalogkit: governance not initialized"},
		{"ErrAlreadyInitialized", ErrAlreadyInitialized, "catalogkit: governance already initialized"},
		{"ErrNoBootstrapIdentity", ErrNoBootstrapIdentity, "catalogkit: no bootstrap identity configured"},
		{"ErrUnsupportedStateVersion", ErrUnsupportedStateVersion, "catalogkit: unsupported governance state version"},
		{"ErrNoCaller", ErrNoCaller, "catalogkit: no caller identity in context"},
		{"ErrInvalidRole", ErrInvalidRole, "catalogkit: invalid role"},
		{"ErrInvalidThreshold", ErrInvalidThreshold, "catalogkit: invalid recovery threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.NotNil(t, tt.err)
		})
	}
}

// TestError_Error tests the Error method of Error struct
func TestError_Error(t *testing.T) {
	t.Run("With message", func(t *testing.T) {
		err := &Error{
			Err:     ErrInvalidRole,
			Message: "role 'archivist' not defined",
		}
		expected := "catalogkit: invalid role: role 'archivist' not defined"
		assert.Equal(t, expected, err.Error())
	})

	t.Run("Without message", func(t *testing.T) {
		err := &Error{
			Err: ErrInvalidRole,
		}
		assert.Equal(t, "catalogkit: invalid role", err.Error())
	})
}

// TestError_Unwrap tests the Unwrap method
func TestError_Unwrap(t *testing.T) {
	err := &Error{
		Err:     ErrInvalidRole,
		Message: "test message",
	}

	assert.Equal(t, ErrInvalidRole, err.Unwrap())
}

// TestError_Is tests the Is method
func TestError_Is(t *testing.T) {
	err := &Error{
		Err:     ErrInvalidRole,
		Message: "test message",
	}

	assert.True(t, err.Is(ErrInvalidRole))
	assert.False(t, err.Is(ErrNotSuperAdmin))
	assert.False(t, err.Is(errors.New("some other error")))
}

// TestNewError tests creating new Error instances
func TestNewError(t *testing.T) {
	err := NewError(ErrInvalidRole, "role not defined")

	assert.Equal(t, ErrInvalidRole, err.Err)
	assert.Equal(t, "role not defined", err.Message)
	assert.Equal(t, "catalogkit: invalid role: role not defined", err.Error())
}

// TestError_WithMethods tests the context-attaching builder methods
func TestError_WithMethods(t *testing.T) {
	t.Run("WithField", func(t *testing.T) {
		err := NewError(ErrFieldTooLong, "title exceeds 200 characters")
		result := err.WithField("title")

		// Should return the same instance (method receiver is a pointer)
		assert.Same(t, err, result)
		assert.Equal(t, "title", result.Field)
	})

	t.Run("WithRole", func(t *testing.T) {
		err := NewError(ErrLimitReached, "admin set is full")
		result := err.WithRole(RoleAdmin)

		assert.Same(t, err, result)
		assert.Equal(t, RoleAdmin, result.Role)
	})

	t.Run("WithIdentity", func(t *testing.T) {
		err := NewError(ErrAlreadyExists, "already an admin")
		result := err.WithIdentity("alice")

		assert.Same(t, err, result)
		assert.Equal(t, Identity("alice"), result.Identity)
	})

	t.Run("WithActor", func(t *testing.T) {
		err := NewError(ErrNotSuperAdmin, "pause requires the super admin")
		result := err.WithActor("mallory")

		assert.Same(t, err, result)
		assert.Equal(t, Identity("mallory"), result.Actor)
	})

	t.Run("WithBook", func(t *testing.T) {
		err := NewError(ErrNotFound, "book does not exist")
		result := err.WithBook("3c2e7f4a-9a1b-4f7c-a771-0123456789ab")

		assert.Same(t, err, result)
		assert.Equal(t, "3c2e7f4a-9a1b-4f7c-a771-0123456789ab", result.Book)
	})
}

// TestError_Chaining tests chaining multiple With methods
func TestError_Chaining(t *testing.T) {
	err := NewError(ErrLimitReached, "admin set is full").
		WithRole(RoleAdmin).
		WithIdentity("dora").
		WithActor("head")

	assert.Equal(t, ErrLimitReached, err.Err)
	assert.Equal(t, "admin set is full", err.Message)
	assert.Equal(t, RoleAdmin, err.Role)
	assert.Equal(t, Identity("dora"), err.Identity)
	assert.Equal(t, Identity("head"), err.Actor)
}

// TestIsAuthorizationError tests the authorization error class
func TestIsAuthorizationError(t *testing.T) {
	t.Run("Direct sentinel errors", func(t *testing.T) {
		assert.True(t, IsAuthorizationError(ErrNotSuperAdmin))
		assert.True(t, IsAuthorizationError(ErrInsufficientPermissions))
		assert.False(t, IsAuthorizationError(ErrInvalidInput))
	})

	t.Run("Wrapped error", func(t *testing.T) {
		err := NewError(ErrNotSuperAdmin, "pause requires the super admin")
		assert.True(t, IsAuthorizationError(err))
		assert.False(t, IsAuthorizationError(NewError(ErrNotFound, "missing")))
	})

	t.Run("Nil error", func(t *testing.T) {
		assert.False(t, IsAuthorizationError(nil))
	})
}

// TestIsValidationError tests the validation error class
func TestIsValidationError(t *testing.T) {
	validationSentinels := []error{
		ErrFieldTooShort,
		ErrFieldTooLong,
		ErrInvalidInput,
		ErrInvalidContentHash,
		ErrInvalidBookID,
		ErrInvalidSuperAdmin,
		ErrSelfTransferNotAllowed,
	}

	for _, sentinel := range validationSentinels {
		assert.True(t, IsValidationError(sentinel), "expected %v to be a validation error", sentinel)
		assert.True(t, IsValidationError(NewError(sentinel, "wrapped")))
	}

	assert.False(t, IsValidationError(ErrNotSuperAdmin))
	assert.False(t, IsValidationError(ErrPaused))
	assert.False(t, IsValidationError(nil))
}

// TestIsStateConflict tests the governance state-machine conflict class
func TestIsStateConflict(t *testing.T) {
	conflictSentinels := []error{
		ErrTransferAlreadyPending,
		ErrNoPendingTransfer,
		ErrTimelockNotExpired,
		ErrRecoveryInProgress,
		ErrNoRecoveryInProgress,
		ErrAlreadyVoted,
		ErrInsufficientAdminsForRecovery,
	}

	for _, sentinel := range conflictSentinels {
		assert.True(t, IsStateConflict(sentinel), "expected %v to be a state conflict", sentinel)
		assert.True(t, IsStateConflict(NewError(sentinel, "wrapped")))
	}

	assert.False(t, IsStateConflict(ErrNotFound))
	assert.False(t, IsStateConflict(nil))
}

// TestSingleSentinelClasses tests the single-sentinel error predicates
func TestSingleSentinelClasses(t *testing.T) {
	t.Run("IsNotFound", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrNotFound))
		assert.True(t, IsNotFound(NewError(ErrNotFound, "no such book")))
		assert.False(t, IsNotFound(ErrAlreadyExists))
		assert.False(t, IsNotFound(nil))
	})

	t.Run("IsAlreadyExists", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrAlreadyExists))
		assert.True(t, IsAlreadyExists(NewError(ErrAlreadyExists, "duplicate card")))
		assert.False(t, IsAlreadyExists(ErrNotFound))
		assert.False(t, IsAlreadyExists(nil))
	})

	t.Run("IsLimitReached", func(t *testing.T) {
		assert.True(t, IsLimitReached(ErrLimitReached))
		assert.True(t, IsLimitReached(NewError(ErrLimitReached, "admin set is full").WithRole(RoleAdmin)))
		assert.False(t, IsLimitReached(ErrAlreadyExists))
		assert.False(t, IsLimitReached(nil))
	})

	t.Run("IsPaused", func(t *testing.T) {
		assert.True(t, IsPaused(ErrPaused))
		assert.True(t, IsPaused(NewError(ErrPaused, "writes are frozen")))
		assert.False(t, IsPaused(ErrNotInitialized))
		assert.False(t, IsPaused(nil))
	})
}

// TestError_CompatibilityWithStandardErrors tests compatibility with Go's error handling
func TestError_CompatibilityWithStandardErrors(t *testing.T) {
	err := NewError(ErrInvalidRole, "test message")

	// Test with errors.Is
	assert.True(t, errors.Is(err, ErrInvalidRole))
	assert.False(t, errors.Is(err, ErrNotSuperAdmin))

	// Test with errors.As
	var target *Error
	assert.True(t, errors.As(err, &target))
	assert.Same(t, err, target)

	// Test with custom error
	customErr := errors.New("custom error")
	assert.False(t, errors.As(customErr, &target))
}

// TestError_ImmutabilityOfOtherInstances tests that modifying one error doesn't affect others
func TestError_ImmutabilityOfOtherInstances(t *testing.T) {
	err1 := NewError(ErrInvalidRole, "test1")
	err2 := NewError(ErrLimitReached, "test2")

	err1.WithRole(RoleAdmin).WithIdentity("alice")

	assert.Equal(t, "", err2.Role)
	assert.Equal(t, ZeroIdentity, err2.Identity)
}

// TestError_AllSentinelErrors tests that every sentinel can be wrapped and unwrapped
func TestError_AllSentinelErrors(t *testing.T) {
	sentinelErrors := []error{
		ErrNotSuperAdmin,
		ErrInsufficientPermissions,
		ErrFieldTooShort,
		ErrFieldTooLong,
		ErrInvalidInput,
		ErrInvalidContentHash,
		ErrInvalidBookID,
		ErrInvalidSuperAdmin,
		ErrSelfTransferNotAllowed,
		ErrTransferAlreadyPending,
		ErrNoPendingTransfer,
		ErrTimelockNotExpired,
		ErrRecoveryInProgress,
		ErrNoRecoveryInProgress,
		ErrAlreadyVoted,
		ErrInsufficientAdminsForRecovery,
		ErrLimitReached,
		ErrAlreadyExists,
		ErrNotFound,
		ErrPaused,
		ErrNotInitialized,
		ErrAlreadyInitialized,
		ErrNoBootstrapIdentity,
		ErrUnsupportedStateVersion,
		ErrNoCaller,
		ErrInvalidRole,
		ErrInvalidThreshold,
	}

	for _, sentinel := range sentinelErrors {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := NewError(sentinel, "test message")

			assert.Equal(t, sentinel, wrapped.Err)
			assert.Equal(t, "test message", wrapped.Message)
			assert.True(t, errors.Is(wrapped, sentinel))
			assert.Equal(t, sentinel, errors.Unwrap(wrapped))
		})
	}
}
