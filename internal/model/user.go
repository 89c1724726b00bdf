package model

import "time"

// Roles recognized by the system. Stored as plain text on the user row.
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

// User represents an operator account.
//
// PasswordHash holds a bcrypt hash, never a plaintext secret. LastLoginAt is
// nil until the first successful authentication (bootstrap sets it at
// creation time, matching the legacy schema).
type User struct {
	ID                 int64      `gorm:"primaryKey"`
	Login              string     `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash       string     `gorm:"size:256;not null"`
	Role               string     `gorm:"size:32;not null"`
	IsBlocked          bool       `gorm:"not null;default:false"`
	FailedAttempts     int        `gorm:"not null;default:0"`
	LastLoginAt        *time.Time `gorm:"column:last_login"`
	MustChangePassword bool       `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
