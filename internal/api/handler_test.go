package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"innkeeper-backend/internal/guard"
	"innkeeper-backend/internal/model"
	"innkeeper-backend/internal/store"
	"innkeeper-backend/internal/token"
)

type testEnv struct {
	router *gin.Engine
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.RoomCategory{},
		&model.Room{},
		&model.Guest{},
		&model.Booking{},
		&model.CleaningTask{},
		&model.Vehicle{},
		&model.UsageRecord{},
		&model.PushSubscription{},
	))

	s := store.NewGormStore(db)
	g := guard.New(s, guard.Config{BcryptCost: bcrypt.MinCost})
	tokens := token.NewService("test-secret", time.Hour)

	handler := NewHandler(s, g, tokens, nil, nil)
	router := NewRouter(handler, RouterConfig{
		// High enough that a test never trips the per-IP limiter.
		RateLimitPerSec: 10000,
		CacheTTL:        time.Minute,
	})
	return &testEnv{router: router, store: s}
}

func (e *testEnv) seedUser(t *testing.T, login, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, e.store.DB().Create(&model.User{
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
		LastLoginAt:  &now,
	}).Error)
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, login, password string) (loginResponse, *httptest.ResponseRecorder) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"login": login, "password": password})
	var resp loginResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

func TestLoginIssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "clerk", "hunter2", model.RoleUser)

	resp, w := env.login(t, "clerk", "hunter2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clerk", resp.Login)
	assert.Equal(t, model.RoleUser, resp.Role)
	assert.False(t, resp.MustChangePassword)
	require.NotEmpty(t, resp.AccessToken)

	w = env.do(t, http.MethodGet, "/api/rooms", resp.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// No token, no rooms.
	w = env.do(t, http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLockoutAndUnblock(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "clerk", "hunter2", model.RoleUser)
	env.seedUser(t, "boss", "s3cret", model.RoleAdministrator)

	_, w := env.login(t, "clerk", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, w = env.login(t, "clerk", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, w = env.login(t, "clerk", "wrong")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Blocked even with the right password.
	_, w = env.login(t, "clerk", "hunter2")
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, w := env.login(t, "boss", "s3cret")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/users/clerk/unblock", admin.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, w = env.login(t, "clerk", "hunter2")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserManagementRequiresAdministrator(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "clerk", "hunter2", model.RoleUser)
	env.seedUser(t, "boss", "s3cret", model.RoleAdministrator)

	clerk, w := env.login(t, "clerk", "hunter2")
	require.Equal(t, http.StatusOK, w.Code)
	admin, w := env.login(t, "boss", "s3cret")
	require.Equal(t, http.StatusOK, w.Code)

	newUser := gin.H{"login": "porter", "password": "pass", "role": model.RoleUser}

	w = env.do(t, http.MethodPost, "/api/users", clerk.AccessToken, newUser)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/users", admin.AccessToken, newUser)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/users", admin.AccessToken, newUser)
	assert.Equal(t, http.StatusConflict, w.Code)

	// A fresh account must rotate its password on first login.
	porter, w := env.login(t, "porter", "pass")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, porter.MustChangePassword)

	w = env.do(t, http.MethodGet, "/api/users", clerk.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodGet, "/api/users", admin.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "clerk", "hunter2", model.RoleUser)

	clerk, w := env.login(t, "clerk", "hunter2")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/password", clerk.AccessToken,
		gin.H{"old_password": "wrong", "new_password": "new-pass", "confirm_password": "new-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/password", clerk.AccessToken,
		gin.H{"old_password": "hunter2", "new_password": "new-pass", "confirm_password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/password", clerk.AccessToken,
		gin.H{"old_password": "hunter2", "new_password": "abc", "confirm_password": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/password", clerk.AccessToken,
		gin.H{"old_password": "hunter2", "new_password": "new-pass", "confirm_password": "new-pass"})
	assert.Equal(t, http.StatusOK, w.Code)

	_, w = env.login(t, "clerk", "hunter2")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, w = env.login(t, "clerk", "new-pass")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOccupancyReportEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", "s3cret", model.RoleAdministrator)
	db := env.store.DB()

	standard := model.RoomCategory{Name: "Standard"}
	require.NoError(t, db.Create(&standard).Error)
	rooms := []model.Room{
		{Number: "101", Floor: "1", Status: model.RoomStatusClean, CategoryID: standard.ID},
		{Number: "201", Floor: "2", Status: model.RoomStatusClean, CategoryID: standard.ID},
	}
	for i := range rooms {
		require.NoError(t, db.Create(&rooms[i]).Error)
	}
	guest := model.Guest{FullName: "Ivan Ivanov"}
	require.NoError(t, db.Create(&guest).Error)
	require.NoError(t, db.Create(&model.Booking{
		CheckIn:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:   model.BookingCompleted,
		GuestID:  guest.ID,
		RoomID:   rooms[0].ID,
	}).Error)

	admin, w := env.login(t, "boss", "s3cret")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/reports/occupancy?from=2025-03-01&to=2025-03-31", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report occupancyReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "2025-03-01", report.From)
	assert.Equal(t, "2025-03-31", report.To)
	// One 4-day stay across 2 rooms and 31 days.
	assert.InDelta(t, 4.0/(2*31)*100, report.Total, 1e-9)
	assert.InDelta(t, 4.0/(2*31)*100, report.ByCategory["Standard"], 1e-9)
	assert.InDelta(t, 4.0/31*100, report.ByFloor["1"], 1e-9)
	assert.Equal(t, 0.0, report.ByFloor["2"])
}

func TestReportRejectsBadPeriod(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "boss", "s3cret", model.RoleAdministrator)
	admin, w := env.login(t, "boss", "s3cret")
	require.Equal(t, http.StatusOK, w.Code)

	for _, query := range []string{
		"from=2025-03-01",
		"to=2025-03-31",
		"from=march&to=2025-03-31",
		"from=2025-03-31&to=2025-03-01",
	} {
		w = env.do(t, http.MethodGet, fmt.Sprintf("/api/reports/occupancy?%s", query), admin.AccessToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestRoomStatusUpdateEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "clerk", "hunter2", model.RoleUser)
	db := env.store.DB()

	standard := model.RoomCategory{Name: "Standard"}
	require.NoError(t, db.Create(&standard).Error)
	room := model.Room{Number: "101", Floor: "1", Status: model.RoomStatusOccupied, CategoryID: standard.ID}
	require.NoError(t, db.Create(&room).Error)

	clerk, w := env.login(t, "clerk", "hunter2")
	require.Equal(t, http.StatusOK, w.Code)

	path := fmt.Sprintf("/api/rooms/%d/status", room.ID)
	w = env.do(t, http.MethodPatch, path, clerk.AccessToken,
		gin.H{"status": model.RoomStatusAssignedForCleaning, "employee": "I. Petrova"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, model.RoomStatusAssignedForCleaning, updated.Status)

	var tasks []model.CleaningTask
	require.NoError(t, db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "I. Petrova", tasks[0].Employee)

	w = env.do(t, http.MethodPatch, "/api/rooms/999/status", clerk.AccessToken,
		gin.H{"status": model.RoomStatusClean})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
