package store

import (
	"context"
	"fmt"
	"time"

	"innkeeper-backend/internal/model"
)

// StayRow is one booking interval joined with the room attributes the
// occupancy report groups by.
type StayRow struct {
	CheckIn  time.Time
	CheckOut time.Time
	RoomID   int64
	Category string
	Floor    string
}

func (s *gormStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking for room %d: %w", booking.RoomID, err)
	}
	return nil
}

// StaysOverlapping returns every booking interval that overlaps the period.
// The boundaries are strict: a stay ending exactly at the period start or
// starting exactly at the period end is excluded.
func (s *gormStore) StaysOverlapping(ctx context.Context, start, end time.Time) ([]StayRow, error) {
	var rows []StayRow
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Select("bookings.check_in, bookings.check_out, bookings.room_id, room_categories.name as category, rooms.floor").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN room_categories ON room_categories.id = rooms.category_id").
		Where("bookings.check_in < ? AND bookings.check_out > ?", end, start).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stays overlapping [%s, %s]: %w",
			start.Format(time.DateOnly), end.Format(time.DateOnly), err)
	}
	return rows, nil
}
