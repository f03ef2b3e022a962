package models

import (
	"gorm.io/datatypes"
)

// Profile is the canonical person record within a tenant, linked 1:1 to an
// external identity record by IdentityID. A profile without a live identity
// record is an orphan (see ProvisionAttempt).
type Profile struct {
	BaseModelWithDeleted
	TenantID   string   `gorm:"type:uuid;not null;index"`
	IdentityID string   `gorm:"uniqueIndex;not null"`
	Email      string   `gorm:"not null;index"`
	FullName   string   `gorm:"not null"`
	Phone      string
	AvatarURL  string
	Role       UserRole `gorm:"type:varchar(20);not null;default:'client'"`
	IsActive   bool     `gorm:"default:true"`

	Tenant  *Tenant  `gorm:"foreignKey:TenantID"`
	Client  *Client  `gorm:"foreignKey:ProfileID"`
	Trainer *Trainer `gorm:"foreignKey:ProfileID"`
}

// Client is the member subtype, created only alongside a Profile with
// role = client.
type Client struct {
	BaseModelWithDeleted
	TenantID    string `gorm:"type:uuid;not null;index"`
	ProfileID   string `gorm:"type:uuid;uniqueIndex;not null"`
	Gender      string
	FitnessGoal string
	// Free-text intake fields (medical notes, emergency contact, ...)
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	Profile       *Profile        `gorm:"foreignKey:ProfileID"`
	Subscriptions []Subscription  `gorm:"foreignKey:ClientID"`
	Trainers      []ClientTrainer `gorm:"foreignKey:ClientID"`
}

// Trainer is the staff subtype. Deleting a trainer hard-deletes its
// specialization and assignment rows.
type Trainer struct {
	BaseModel
	TenantID        string `gorm:"type:uuid;not null;index"`
	ProfileID       string `gorm:"type:uuid;uniqueIndex;not null"`
	Bio             string
	ExperienceYears *int

	Profile         *Profile                `gorm:"foreignKey:ProfileID"`
	Specializations []TrainerSpecialization `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE"`
	Clients         []ClientTrainer         `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE"`
}

// TrainerSpecialization is one tag held by one trainer. The tenant-wide
// catalog is the distinct set of names over these rows.
type TrainerSpecialization struct {
	BaseModel
	TenantID  string `gorm:"type:uuid;not null;index"`
	TrainerID string `gorm:"type:uuid;not null;index"`
	Name      string `gorm:"not null;index"`
}

// ClientTrainer links a client to a trainer for coaching.
type ClientTrainer struct {
	BaseModel
	TenantID  string           `gorm:"type:uuid;not null;index"`
	ClientID  string           `gorm:"type:uuid;not null;index"`
	TrainerID string           `gorm:"type:uuid;not null;index"`
	Status    AssignmentStatus `gorm:"type:varchar(20);default:'active'"`
}
