package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"innkeeper-backend/internal/model"
)

// UpsertSubscription creates or replaces a push subscription and rebinds it
// to the given rooms.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription, roomIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		var rooms []model.Room
		if len(roomIDs) > 0 {
			if err := tx.Find(&rooms, roomIDs).Error; err != nil {
				return fmt.Errorf("failed to resolve subscribed rooms: %w", err)
			}
		}

		if err := tx.Model(sub).Association("Rooms").Replace(&rooms); err != nil {
			return fmt.Errorf("failed to replace room associations: %w", err)
		}
		return nil
	})
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Preload("Rooms").First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PushSubscription{}, ErrNotFound
	}
	if err != nil {
		return model.PushSubscription{}, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	return sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *gormStore) SubscribersForRoom(ctx context.Context, roomID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_room_mapping srm ON srm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("srm.room_id = ?", roomID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscribers for room %d: %w", roomID, err)
	}
	return subs, nil
}
