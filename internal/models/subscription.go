package models

import "time"

type MembershipPlan struct {
	BaseModelWithDeleted
	TenantID      string  `gorm:"type:uuid;not null;index"`
	Name          string  `gorm:"not null"`
	Price         float64 `gorm:"not null"`
	DurationDays  int     `gorm:"not null"`
	SessionsLimit *int
}

// Subscription links a client to a membership plan for a date range.
type Subscription struct {
	BaseModel
	TenantID          string             `gorm:"type:uuid;not null;index"`
	ClientID          string             `gorm:"type:uuid;not null;index"`
	PlanID            string             `gorm:"type:uuid;not null;index"`
	Status            SubscriptionStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	StartDate         time.Time          `gorm:"not null"`
	EndDate           time.Time          `gorm:"not null"`
	RemainingSessions *int
	ReminderSentAt    *time.Time

	Client   *Client         `gorm:"foreignKey:ClientID"`
	Plan     *MembershipPlan `gorm:"foreignKey:PlanID"`
	Payments []Payment       `gorm:"foreignKey:SubscriptionID"`
}

type Payment struct {
	BaseModel
	TenantID       string        `gorm:"type:uuid;not null;index"`
	SubscriptionID string        `gorm:"type:uuid;not null;index"`
	Amount         float64       `gorm:"not null"`
	Status         PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod  string        `gorm:"not null"`
	PaidAt         *time.Time
}
