package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"innkeeper-backend/internal/model"
	"innkeeper-backend/internal/mw"
)

// RouterConfig holds the middleware knobs of the HTTP surface.
type RouterConfig struct {
	RateLimitPerSec float64
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = 10
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), 5)

	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	authed := mw.RequireAuth(h.tokens)
	adminOnly := mw.RequireRole(model.RoleAdministrator)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", h.Login)
		api.POST("/auth/password", authed, h.ChangePassword)

		api.POST("/users", authed, adminOnly, h.AddUser)
		api.GET("/users", authed, adminOnly, h.ListUsers)
		api.POST("/users/:login/unblock", authed, adminOnly, h.UnblockUser)

		api.GET("/rooms", authed, h.ListRooms)
		api.PATCH("/rooms/:room_id/status", authed, h.UpdateRoomStatus)

		api.GET("/vehicles", authed, h.ListVehicles)
		api.PATCH("/vehicles/:vehicle_id/status", authed, h.UpdateVehicleStatus)

		api.GET("/reports/occupancy", authed, caching, h.OccupancyReport)
		api.GET("/reports/vehicle-usage", authed, caching, h.VehicleUsageReport)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
