package model

import "time"

// Room statuses used by the front desk and housekeeping. Stored as free text
// so operators can extend the vocabulary without a migration.
const (
	RoomStatusClean               = "Clean"
	RoomStatusDirty               = "Dirty"
	RoomStatusOccupied            = "Occupied"
	RoomStatusAssignedForCleaning = "AssignedForCleaning"
	RoomStatusUnderRepair         = "UnderRepair"
	RoomStatusAvailable           = "Available"
)

// RoomCategory represents a room class (Standard, Suite, ...).
type RoomCategory struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"uniqueIndex;size:128;not null"`
	Description string  `gorm:"size:512"`
	BasePrice   float64 `gorm:""`
	Capacity    int     `gorm:""`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	Rooms []Room `gorm:"foreignKey:CategoryID"`
}

// Room represents a single hotel room.
type Room struct {
	ID         int64  `gorm:"primaryKey"`
	Number     string `gorm:"uniqueIndex;size:32;not null"`
	Floor      string `gorm:"size:16;index"`
	Status     string `gorm:"size:64;not null"`
	CategoryID int64  `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Associations
	Category RoomCategory `gorm:"foreignKey:CategoryID"`
}

// CleaningTask statuses.
const (
	CleaningPending    = "Pending"
	CleaningInProgress = "InProgress"
	CleaningDone       = "Done"
)

// CleaningTask records a housekeeping assignment for a room.
type CleaningTask struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	RoomID     int64     `gorm:"index;not null"`
	AssignedAt time.Time `gorm:"not null"`
	Status     string    `gorm:"size:32;not null"`
	Employee   string    `gorm:"size:256"`

	// Associations
	Room Room `gorm:"constraint:OnDelete:CASCADE"`
}
