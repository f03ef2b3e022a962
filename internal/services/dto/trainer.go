package dto

import "time"

type CreateTrainerRequest struct {
	Email           string   `json:"email" validate:"required,email"`
	FirstName       string   `json:"firstName" validate:"required,max=75"`
	LastName        string   `json:"lastName" validate:"required,max=75"`
	Phone           string   `json:"phone" validate:"omitempty,max=50"`
	Bio             string   `json:"bio" validate:"omitempty,max=1000"`
	ExperienceYears *int     `json:"experienceYears" validate:"omitempty,min=0,max=50"`
	Specializations []string `json:"specializations" validate:"required,min=1,max=10,dive,min=1,max=100"`
}

type UpdateTrainerRequest struct {
	FirstName       string   `json:"firstName" validate:"required,max=75"`
	LastName        string   `json:"lastName" validate:"required,max=75"`
	Phone           string   `json:"phone" validate:"omitempty,max=50"`
	Bio             string   `json:"bio" validate:"omitempty,max=1000"`
	ExperienceYears *int     `json:"experienceYears" validate:"omitempty,min=0,max=50"`
	Specializations []string `json:"specializations" validate:"required,min=1,max=10,dive,min=1,max=100"`
}

type CreateTrainerResponse struct {
	IdentityID      string   `json:"identityId"`
	ProfileID       string   `json:"profileId"`
	TrainerID       string   `json:"trainerId"`
	Specializations []string `json:"specializations"`
}

// TrainerRow is the denormalized trainer list view.
type TrainerRow struct {
	ID              string    `json:"id"`
	ProfileID       string    `json:"profileId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	IsActive        bool      `json:"isActive"`
	Specializations []string  `json:"specializations"`
	ActiveClients   int       `json:"activeClients"`
	CreatedAt       time.Time `json:"createdAt"`
}

type DeleteSpecializationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
