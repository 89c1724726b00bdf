package model

import "time"

// Vehicle statuses.
const (
	VehicleAvailable   = "Available"
	VehicleInUse       = "InUse"
	VehicleUnderRepair = "UnderRepair"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID        int64  `gorm:"primaryKey"`
	Plate     string `gorm:"uniqueIndex;size:32;not null"`
	Model     string `gorm:"size:128;not null"`
	Category  string `gorm:"size:64;index"`
	Status    string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UsageRecord represents one usage interval of a vehicle. EndedAt is nil
// while the vehicle is still out; consumers treat nil as "now".
type UsageRecord struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	VehicleID int64      `gorm:"index;not null"`
	StartedAt time.Time  `gorm:"not null;index"`
	EndedAt   *time.Time `gorm:"index"`
	CreatedAt time.Time

	// Associations
	Vehicle Vehicle `gorm:"constraint:OnDelete:CASCADE"`
}
