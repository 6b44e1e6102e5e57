package catalogkit

import (
	"fmt"
	"time"
)

// ============================================================================
// ROLE PREDICATES
// ============================================================================

// IsSuperAdmin reports whether id is the current super admin.
func (g *GovernanceState) IsSuperAdmin(id Identity) bool {
	return !id.IsZero() && g.SuperAdmin == id
}

// IsAdmin reports whether id is a member of the admin set. The super admin is
// not implicitly an admin.
func (g *GovernanceState) IsAdmin(id Identity) bool {
	return containsIdentity(g.Admins, id)
}

// IsModerator reports whether id is a member of the moderator set.
func (g *GovernanceState) IsModerator(id Identity) bool {
	return containsIdentity(g.Moderators, id)
}

// IsCurator reports whether id is a member of the curator set.
func (g *GovernanceState) IsCurator(id Identity) bool {
	return containsIdentity(g.Curators, id)
}

// HasAdminPrivileges reports whether id is the super admin or an admin.
func (g *GovernanceState) HasAdminPrivileges(id Identity) bool {
	return g.IsSuperAdmin(id) || g.IsAdmin(id)
}

// CanAddBooks reports whether id may add or update catalog entries.
func (g *GovernanceState) CanAddBooks(id Identity) bool {
	return g.HasAdminPrivileges(id) || g.IsCurator(id)
}

// CanManageRoles reports whether id may change role set membership.
func (g *GovernanceState) CanManageRoles(id Identity) bool {
	return g.HasAdminPrivileges(id)
}

// RolesOf returns the role names id currently holds.
func (g *GovernanceState) RolesOf(id Identity) []string {
	var roles []string
	if g.IsSuperAdmin(id) {
		roles = append(roles, RoleSuperAdmin)
	}
	if g.IsAdmin(id) {
		roles = append(roles, RoleAdmin)
	}
	if g.IsModerator(id) {
		roles = append(roles, RoleModerator)
	}
	if g.IsCurator(id) {
		roles = append(roles, RoleCurator)
	}
	return roles
}

// Members returns the identities holding a role.
func (g *GovernanceState) Members(role string) ([]Identity, error) {
	switch role {
	case RoleSuperAdmin:
		return []Identity{g.SuperAdmin}, nil
	case RoleAdmin:
		return append([]Identity(nil), g.Admins...), nil
	case RoleModerator:
		return append([]Identity(nil), g.Moderators...), nil
	case RoleCurator:
		return append([]Identity(nil), g.Curators...), nil
	default:
		return nil, NewError(ErrInvalidRole, fmt.Sprintf("role %q not defined", role)).WithRole(role)
	}
}

// ============================================================================
// ROLE SET TRANSITIONS
// ============================================================================

// AddAdmin inserts id into the admin set. The capacity check runs before the
// duplicate check, so a full set fails ErrLimitReached even for an existing
// member.
func (g *GovernanceState) AddAdmin(id Identity) error {
	return addMember(&g.Admins, id, MaxAdmins, RoleAdmin)
}

// RemoveAdmin removes id from the admin set.
func (g *GovernanceState) RemoveAdmin(id Identity) error {
	return removeMember(&g.Admins, id, RoleAdmin)
}

// AddModerator inserts id into the moderator set.
func (g *GovernanceState) AddModerator(id Identity) error {
	return addMember(&g.Moderators, id, MaxModerators, RoleModerator)
}

// RemoveModerator removes id from the moderator set.
func (g *GovernanceState) RemoveModerator(id Identity) error {
	return removeMember(&g.Moderators, id, RoleModerator)
}

// AddCurator inserts id into the curator set.
func (g *GovernanceState) AddCurator(id Identity) error {
	return addMember(&g.Curators, id, MaxCurators, RoleCurator)
}

// RemoveCurator removes id from the curator set.
func (g *GovernanceState) RemoveCurator(id Identity) error {
	return removeMember(&g.Curators, id, RoleCurator)
}

func addMember(set *[]Identity, id Identity, capacity int, role string) error {
	if len(*set) >= capacity {
		return NewError(ErrLimitReached, fmt.Sprintf("the %s set is limited to %d members", role, capacity)).
			WithRole(role).
			WithIdentity(id)
	}
	if containsIdentity(*set, id) {
		return NewError(ErrAlreadyExists, fmt.Sprintf("%s already holds the %s role", id, role)).
			WithRole(role).
			WithIdentity(id)
	}
	*set = append(*set, id)
	return nil
}

func removeMember(set *[]Identity, id Identity, role string) error {
	for i, member := range *set {
		if member == id {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return nil
		}
	}
	return NewError(ErrNotFound, fmt.Sprintf("%s does not hold the %s role", id, role)).
		WithRole(role).
		WithIdentity(id)
}

// ============================================================================
// SUPER ADMIN TRANSFER
// ============================================================================

// ValidateSuperAdminCandidate checks whether id may become the super admin:
// it must not be the zero identity, the current super admin, an existing
// admin, or the reserved system identity.
func (g *GovernanceState) ValidateSuperAdminCandidate(id Identity) error {
	if id.IsZero() {
		return NewError(ErrInvalidSuperAdmin, "candidate is the zero identity")
	}
	if id == g.SuperAdmin {
		return NewError(ErrSelfTransferNotAllowed, "candidate is already the super admin").WithIdentity(id)
	}
	if containsIdentity(g.Admins, id) {
		return NewError(ErrInvalidSuperAdmin, fmt.Sprintf("%s is already an admin", id)).WithIdentity(id)
	}
	if id == SystemIdentity {
		return NewError(ErrInvalidSuperAdmin, "candidate is a reserved identity").WithIdentity(id)
	}
	return nil
}

// TransferPending reports whether a super admin hand-off is in flight.
func (g *GovernanceState) TransferPending() bool {
	return !g.PendingSuperAdmin.IsZero()
}

// InitiateTransfer records candidate as the pending super admin. The hand-off
// becomes confirmable once the timelock has elapsed from now.
func (g *GovernanceState) InitiateTransfer(candidate Identity, now time.Time) error {
	if err := g.ValidateSuperAdminCandidate(candidate); err != nil {
		return err
	}
	if g.TransferPending() {
		return NewError(ErrTransferAlreadyPending, fmt.Sprintf("a transfer to %s is already pending", g.PendingSuperAdmin)).
			WithIdentity(candidate)
	}
	g.PendingSuperAdmin = candidate
	g.TransferInitiatedAt = now
	return nil
}

// ConfirmTransfer completes a pending hand-off: the pending identity becomes
// the super admin and the pending fields are cleared. Fails until the
// timelock has elapsed.
func (g *GovernanceState) ConfirmTransfer(now time.Time) error {
	if !g.TransferPending() {
		return NewError(ErrNoPendingTransfer, "no transfer to confirm")
	}
	elapsed := now.Sub(g.TransferInitiatedAt)
	if elapsed < g.TransferTimelock {
		return NewError(ErrTimelockNotExpired, fmt.Sprintf("timelock expires in %s", g.TransferTimelock-elapsed))
	}
	g.SuperAdmin = g.PendingSuperAdmin
	g.clearTransfer()
	return nil
}

// CancelTransfer abandons a pending hand-off.
func (g *GovernanceState) CancelTransfer() error {
	if !g.TransferPending() {
		return NewError(ErrNoPendingTransfer, "no transfer to cancel")
	}
	g.clearTransfer()
	return nil
}

func (g *GovernanceState) clearTransfer() {
	g.PendingSuperAdmin = ZeroIdentity
	g.TransferInitiatedAt = time.Time{}
}

// ============================================================================
// EMERGENCY RECOVERY
// ============================================================================

// RecoveryInProgress reports whether a recovery episode is active.
func (g *GovernanceState) RecoveryInProgress() bool {
	return !g.RecoveryNewAdmin.IsZero()
}

// InitiateRecovery opens a recovery episode naming candidate as the
// replacement super admin, with the initiator's vote already counted. The
// admin set must be able to reach the threshold, otherwise the episode could
// never complete. When the threshold is 1, the seeded vote already decides
// and the swap executes here; executed reports whether that happened.
func (g *GovernanceState) InitiateRecovery(initiator, candidate Identity, now time.Time) (executed bool, err error) {
	if len(g.Admins) < g.RecoveryThreshold {
		return false, NewError(ErrInsufficientAdminsForRecovery,
			fmt.Sprintf("%d admins cannot reach a threshold of %d", len(g.Admins), g.RecoveryThreshold))
	}
	if err := g.ValidateSuperAdminCandidate(candidate); err != nil {
		return false, err
	}
	if g.RecoveryInProgress() {
		return false, NewError(ErrRecoveryInProgress, fmt.Sprintf("a recovery naming %s is already in progress", g.RecoveryNewAdmin)).
			WithIdentity(candidate)
	}
	g.RecoveryNewAdmin = candidate
	g.RecoveryInitiatedAt = now
	g.RecoveryVotes = []Identity{initiator}
	if len(g.RecoveryVotes) >= g.RecoveryThreshold {
		g.executeRecovery()
		return true, nil
	}
	return false, nil
}

// CastRecoveryVote records voter's vote for the active episode. The vote that
// reaches the threshold executes the swap in the same call: the named
// candidate becomes the super admin and every recovery field is cleared, so
// the vote count is never observed at or above the threshold.
func (g *GovernanceState) CastRecoveryVote(voter Identity) (executed bool, err error) {
	if !g.RecoveryInProgress() {
		return false, NewError(ErrNoRecoveryInProgress, "no recovery episode to vote on")
	}
	if containsIdentity(g.RecoveryVotes, voter) {
		return false, NewError(ErrAlreadyVoted, fmt.Sprintf("%s already voted in this episode", voter)).
			WithIdentity(voter)
	}
	g.RecoveryVotes = append(g.RecoveryVotes, voter)
	if len(g.RecoveryVotes) < g.RecoveryThreshold {
		return false, nil
	}
	g.executeRecovery()
	return true, nil
}

// CancelRecovery abandons the active episode without executing it.
func (g *GovernanceState) CancelRecovery() error {
	if !g.RecoveryInProgress() {
		return NewError(ErrNoRecoveryInProgress, "no recovery episode to cancel")
	}
	g.clearRecovery()
	return nil
}

func (g *GovernanceState) executeRecovery() {
	g.SuperAdmin = g.RecoveryNewAdmin
	g.clearRecovery()
}

func (g *GovernanceState) clearRecovery() {
	g.RecoveryNewAdmin = ZeroIdentity
	g.RecoveryInitiatedAt = time.Time{}
	g.RecoveryVotes = nil
}

// ============================================================================
// PAUSE AND BOOK COUNT
// ============================================================================

// Pause sets the circuit breaker. Idempotent.
func (g *GovernanceState) Pause() {
	g.Paused = true
}

// Unpause clears the circuit breaker. Idempotent.
func (g *GovernanceState) Unpause() {
	g.Paused = false
}

func (g *GovernanceState) incrementBookCount() {
	g.BookCount++
}

// decrementBookCount saturates at zero rather than underflowing.
func (g *GovernanceState) decrementBookCount() {
	if g.BookCount > 0 {
		g.BookCount--
	}
}
