package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"innkeeper-backend/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store defines the interface for all database operations.
type Store interface {
	// DB exposes the underlying handle for read-only report queries.
	DB() *gorm.DB

	// Users
	GetUserByLogin(ctx context.Context, login string) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserFields(ctx context.Context, id int64, fields map[string]any) error
	ListUsers(ctx context.Context) ([]model.User, error)

	// Rooms
	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoom(ctx context.Context, roomID int64) (model.Room, error)
	UpdateRoomStatus(ctx context.Context, roomID int64, status string) error
	CountRooms(ctx context.Context) (int64, error)
	CountRoomsByCategory(ctx context.Context) ([]GroupCount, error)
	CountRoomsByFloor(ctx context.Context) ([]GroupCount, error)
	AssignCleaning(ctx context.Context, roomID int64, employee string, at time.Time) error

	// Bookings
	CreateBooking(ctx context.Context, booking *model.Booking) error
	StaysOverlapping(ctx context.Context, start, end time.Time) ([]StayRow, error)

	// Vehicles
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, vehicleID int64, status string) error
	CountVehicles(ctx context.Context) (int64, error)
	CountVehiclesByCategory(ctx context.Context) ([]GroupCount, error)
	UsageOverlapping(ctx context.Context, start, end time.Time) ([]UsageRow, error)

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription, roomIDs []int64) error
	GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscribersForRoom(ctx context.Context, roomID int64) ([]model.PushSubscription, error)
}

// GroupCount is one row of an aggregate count grouped by a text key.
type GroupCount struct {
	Key   string
	Count int64
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetUserByLogin(ctx context.Context, login string) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to fetch user by login: %w", err)
	}
	return user, nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return user, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Login, err)
	}
	return nil
}

// UpdateUserFields applies a partial update to a single user row. All fields
// land in one UPDATE statement, so the counter increment and a possible
// lockout transition commit together.
func (s *gormStore) UpdateUserFields(ctx context.Context, id int64, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("login").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
