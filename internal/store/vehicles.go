package store

import (
	"context"
	"fmt"
	"time"

	"innkeeper-backend/internal/model"
)

// UsageRow is one vehicle usage interval. EndedAt is nil while the vehicle
// is still out.
type UsageRow struct {
	StartedAt time.Time
	EndedAt   *time.Time
	VehicleID int64
	Plate     string
	Category  string
}

func (s *gormStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := s.db.WithContext(ctx).Order("plate").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *gormStore) UpdateVehicleStatus(ctx context.Context, vehicleID int64, status string) error {
	res := s.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ?", vehicleID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of vehicle %d: %w", vehicleID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CountVehicles(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Vehicle{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}

func (s *gormStore) CountVehiclesByCategory(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := s.db.WithContext(ctx).Model(&model.Vehicle{}).
		Select("category as key, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count vehicles by category: %w", err)
	}
	return rows, nil
}

// UsageOverlapping returns usage intervals overlapping the period. An open
// interval (null ended_at) always reaches the period end.
func (s *gormStore) UsageOverlapping(ctx context.Context, start, end time.Time) ([]UsageRow, error) {
	var rows []UsageRow
	err := s.db.WithContext(ctx).Model(&model.UsageRecord{}).
		Select("usage_records.started_at, usage_records.ended_at, usage_records.vehicle_id, vehicles.plate, vehicles.category").
		Joins("JOIN vehicles ON vehicles.id = usage_records.vehicle_id").
		Where("usage_records.started_at < ? AND (usage_records.ended_at IS NULL OR usage_records.ended_at > ?)", end, start).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle usage overlapping [%s, %s]: %w",
			start.Format(time.DateOnly), end.Format(time.DateOnly), err)
	}
	return rows, nil
}
