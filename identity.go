package catalogkit

// Identity is an opaque caller key. The host verifies that the presented
// identity cryptographically authorized the request before any operation runs;
// this package only compares identities, it never authenticates them.
type Identity string

const (
	// ZeroIdentity is the absent identity. It never holds a role and is
	// rejected as a super-admin candidate.
	ZeroIdentity Identity = ""

	// SystemIdentity is reserved for the system itself. It is used as the
	// audit actor when no caller is available and is rejected as a
	// super-admin candidate.
	SystemIdentity Identity = "system"
)

// IsZero reports whether the identity is absent.
func (i Identity) IsZero() bool {
	return i == ZeroIdentity
}

// String returns the identity as a plain string.
func (i Identity) String() string {
	return string(i)
}

// containsIdentity reports whether id is a member of set. Role sets are small
// and bounded, so a linear scan is the whole story.
func containsIdentity(set []Identity, id Identity) bool {
	for _, member := range set {
		if member == id {
			return true
		}
	}
	return false
}
