package dto

import "time"

type ProvisionRow struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	State      string    `json:"state"`
	IdentityID string    `json:"identityId,omitempty"`
	ProfileID  string    `json:"profileId,omitempty"`
	LastError  string    `json:"lastError,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReconcileResponse summarizes one reconciliation sweep.
type ReconcileResponse struct {
	Checked           int `json:"checked"`
	IdentitiesDeleted int `json:"identitiesDeleted"`
	MarkedReconciled  int `json:"markedReconciled"`
}
