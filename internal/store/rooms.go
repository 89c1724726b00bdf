package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"innkeeper-backend/internal/model"
)

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Preload("Category").
		Order("floor, number").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, roomID int64) (model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Preload("Category").First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Room{}, ErrNotFound
	}
	if err != nil {
		return model.Room{}, fmt.Errorf("failed to fetch room %d: %w", roomID, err)
	}
	return room, nil
}

func (s *gormStore) UpdateRoomStatus(ctx context.Context, roomID int64, status string) error {
	res := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of room %d: %w", roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CountRooms(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

func (s *gormStore) CountRoomsByCategory(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Select("room_categories.name as key, COUNT(*) as count").
		Joins("JOIN room_categories ON room_categories.id = rooms.category_id").
		Group("room_categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms by category: %w", err)
	}
	return rows, nil
}

func (s *gormStore) CountRoomsByFloor(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Select("floor as key, COUNT(*) as count").
		Group("floor").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms by floor: %w", err)
	}
	return rows, nil
}

// AssignCleaning sets the room status and records the housekeeping task in
// one transaction.
func (s *gormStore) AssignCleaning(ctx context.Context, roomID int64, employee string, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Room{}).
			Where("id = ?", roomID).
			Update("status", model.RoomStatusAssignedForCleaning)
		if res.Error != nil {
			return fmt.Errorf("failed to mark room %d for cleaning: %w", roomID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		task := model.CleaningTask{
			RoomID:     roomID,
			AssignedAt: at,
			Status:     model.CleaningPending,
			Employee:   employee,
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("failed to create cleaning task for room %d: %w", roomID, err)
		}
		return nil
	})
}
