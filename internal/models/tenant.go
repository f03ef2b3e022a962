package models

// Tenant is the isolation boundary: one gym/organization. Every other row
// carries a tenant reference and no query ever crosses it.
type Tenant struct {
	BaseModel
	Name     string `gorm:"not null"`
	IsActive bool   `gorm:"default:true"`

	Profiles []Profile `gorm:"foreignKey:TenantID"`
}
