package models

type UserRole string
type SubscriptionStatus string
type PaymentStatus string
type Difficulty string
type AssignmentStatus string
type ProvisionState string

const (
	UserRoleSuperAdmin UserRole = "super_admin"
	UserRoleGymAdmin   UserRole = "gym_admin"
	UserRoleTrainer    UserRole = "trainer"
	UserRoleClient     UserRole = "client"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"

	AssignmentStatusActive AssignmentStatus = "active"
	AssignmentStatusEnded  AssignmentStatus = "ended"

	ProvisionStatePending    ProvisionState = "pending"
	ProvisionStateCompleted  ProvisionState = "completed"
	ProvisionStateFailed     ProvisionState = "failed"
	ProvisionStateReconciled ProvisionState = "reconciled"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case UserRoleSuperAdmin, UserRoleGymAdmin, UserRoleTrainer, UserRoleClient:
		return true
	default:
		return false
	}
}

// CanAssignRoles reports whether a caller with role r may set roles on
// other profiles.
func (r UserRole) CanAssignRoles() bool {
	return r == UserRoleSuperAdmin || r == UserRoleGymAdmin
}
