package models

// ProvisionAttempt is the saga marker for identity+profile provisioning.
// It is written before the identity-provider call; the identity id is stamped
// on it as soon as the provider returns, and the attempt is completed after
// the subtype row is written. Attempts stuck in pending/failed point at
// orphaned identities and are picked up by reconciliation.
type ProvisionAttempt struct {
	BaseModel
	TenantID   string         `gorm:"type:uuid;not null;index"`
	Email      string         `gorm:"not null;index"`
	Role       UserRole       `gorm:"type:varchar(20);not null"`
	State      ProvisionState `gorm:"type:varchar(20);not null;default:'pending';index"`
	IdentityID string
	ProfileID  string
	LastError  string
}
