package models

import "time"

// User is a member of staff who can sign in to the POS.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"type:varchar(254);uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	Phone        string    `gorm:"type:varchar(15)" json:"phone"`
	RoleID       Role      `gorm:"not null;index" json:"role_id"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedByID  *uint     `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
