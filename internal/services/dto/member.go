package dto

import "time"

// CreateMemberRequest is the member-create command. Empty strings on
// optional fields mean "absent" (omitempty skips their rules).
type CreateMemberRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"firstName" validate:"required,max=75"`
	LastName    string `json:"lastName" validate:"required,max=75"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Gender      string `json:"gender" validate:"omitempty,is-gender"`
	FitnessGoal string `json:"fitnessGoal" validate:"omitempty,max=500"`
	// Applied only when the caller may assign roles; otherwise silently
	// ignored and the default role (client) is used.
	Role string `json:"role" validate:"omitempty,is-user-role"`
}

type UpdateMemberRequest struct {
	FirstName   string `json:"firstName" validate:"omitempty,max=75"`
	LastName    string `json:"lastName" validate:"omitempty,max=75"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Gender      string `json:"gender" validate:"omitempty,is-gender"`
	FitnessGoal string `json:"fitnessGoal" validate:"omitempty,max=500"`
	Role        string `json:"role" validate:"omitempty,is-user-role"`
}

type CreateMemberResponse struct {
	IdentityID string `json:"identityId"`
	ProfileID  string `json:"profileId"`
	ClientID   string `json:"clientId"`
}

// MemberRow is the denormalized member list view.
type MemberRow struct {
	ID                 string    `json:"id"`
	ProfileID          string    `json:"profileId"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	AvatarURL          string    `json:"avatarUrl,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	FitnessGoal        string    `json:"fitnessGoal,omitempty"`
	IsActive           bool      `json:"isActive"`
	Role               string    `json:"role"`
	JoinedAt           time.Time `json:"joinedAt"`
	SubscriptionStatus string    `json:"subscriptionStatus,omitempty"`
	PlanName           string    `json:"planName,omitempty"`
}

type ToggleStatusResponse struct {
	IsActive bool `json:"isActive"`
}
