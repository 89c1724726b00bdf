package model

import "time"

// Booking statuses.
const (
	BookingActive    = "Active"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

// Guest represents a hotel guest.
type Guest struct {
	ID           int64  `gorm:"primaryKey"`
	FullName     string `gorm:"size:256;not null"`
	ContactInfo  string `gorm:"size:256"`
	PassportInfo string `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Booking represents a room reservation over [CheckIn, CheckOut].
type Booking struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CheckIn   time.Time `gorm:"not null;index"`
	CheckOut  time.Time `gorm:"not null;index"`
	Status    string    `gorm:"size:32;not null"`
	GuestID   int64     `gorm:"index;not null"`
	RoomID    int64     `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Guest Guest `gorm:"constraint:OnDelete:CASCADE"`
	Room  Room  `gorm:"constraint:OnDelete:CASCADE"`
}
