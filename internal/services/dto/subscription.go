package dto

import "time"

type CreateSubscriptionRequest struct {
	ClientID  string    `json:"clientId" validate:"required,uuid"`
	PlanID    string    `json:"planId" validate:"required,uuid"`
	StartDate time.Time `json:"startDate" validate:"required"`
	Status    string    `json:"status" validate:"omitempty,is-subscription-status"`
}

type CreatePlanRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Price         float64 `json:"price" validate:"required,min=0"`
	DurationDays  int     `json:"durationDays" validate:"required,min=1"`
	SessionsLimit *int    `json:"sessionsLimit" validate:"omitempty,min=1"`
}

type PaymentRow struct {
	ID            string     `json:"id"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

type PlanRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	DurationDays  int     `json:"durationDays"`
	SessionsLimit *int    `json:"sessionsLimit,omitempty"`
}

// SubscriptionRow is the denormalized subscription list view.
type SubscriptionRow struct {
	ID                string       `json:"id"`
	Status            string       `json:"status"`
	StartDate         time.Time    `json:"startDate"`
	EndDate           time.Time    `json:"endDate"`
	RemainingSessions *int         `json:"remainingSessions,omitempty"`
	ClientID          string       `json:"clientId"`
	ClientName        string       `json:"clientName"`
	ClientEmail       string       `json:"clientEmail"`
	Plan              PlanRow      `json:"plan"`
	Payments          []PaymentRow `json:"payments"`
	CreatedAt         time.Time    `json:"createdAt"`
}
