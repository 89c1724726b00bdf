package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/internal/model"
	"innkeeper-backend/internal/store"
)

type roomResponse struct {
	ID       int64  `json:"id"`
	Number   string `json:"number"`
	Floor    string `json:"floor"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve rooms"})
		return
	}

	response := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		response = append(response, roomResponse{
			ID:       r.ID,
			Number:   r.Number,
			Floor:    r.Floor,
			Category: r.Category.Name,
			Status:   r.Status,
		})
	}
	c.JSON(http.StatusOK, response)
}

type updateStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Employee string `json:"employee"`
}

// UpdateRoomStatus handles PATCH /api/rooms/:room_id/status. Setting the
// status to AssignedForCleaning also records a cleaning task and notifies
// the room's subscribers.
func (h *Handler) UpdateRoomStatus(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ctx := c.Request.Context()
	if req.Status == model.RoomStatusAssignedForCleaning {
		err = h.store.AssignCleaning(ctx, roomID, req.Employee, time.Now())
	} else {
		err = h.store.UpdateRoomStatus(ctx, roomID, req.Status)
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room status"})
		return
	}

	if req.Status == model.RoomStatusAssignedForCleaning && h.workers != nil {
		h.workers.Dispatch(roomID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "room status updated"})
}

type vehicleResponse struct {
	ID       int64  `json:"id"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// ListVehicles handles GET /api/vehicles.
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.store.ListVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve vehicles"})
		return
	}

	response := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, vehicleResponse{
			ID:       v.ID,
			Plate:    v.Plate,
			Model:    v.Model,
			Category: v.Category,
			Status:   v.Status,
		})
	}
	c.JSON(http.StatusOK, response)
}

// UpdateVehicleStatus handles PATCH /api/vehicles/:vehicle_id/status.
func (h *Handler) UpdateVehicleStatus(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("vehicle_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	err = h.store.UpdateVehicleStatus(c.Request.Context(), vehicleID, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update vehicle status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle status updated"})
}
