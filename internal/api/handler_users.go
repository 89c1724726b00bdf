package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type addUserRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// AddUser handles POST /api/users (administrators only).
func (h *Handler) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login, password and role are required"})
		return
	}

	user, err := h.guard.AddAccount(c.Request.Context(), req.Login, req.Password, req.Role)
	if err != nil {
		c.JSON(guardErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "login": user.Login, "role": user.Role})
}

type userResponse struct {
	ID                 int64      `json:"id"`
	Login              string     `json:"login"`
	Role               string     `json:"role"`
	IsBlocked          bool       `json:"is_blocked"`
	FailedAttempts     int        `json:"failed_attempts"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	MustChangePassword bool       `json:"must_change_password"`
}

// ListUsers handles GET /api/users (administrators only).
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve users"})
		return
	}

	response := make([]userResponse, 0, len(users))
	for _, u := range users {
		response = append(response, userResponse{
			ID:                 u.ID,
			Login:              u.Login,
			Role:               u.Role,
			IsBlocked:          u.IsBlocked,
			FailedAttempts:     u.FailedAttempts,
			LastLoginAt:        u.LastLoginAt,
			MustChangePassword: u.MustChangePassword,
		})
	}
	c.JSON(http.StatusOK, response)
}

// UnblockUser handles POST /api/users/:login/unblock (administrators only).
func (h *Handler) UnblockUser(c *gin.Context) {
	login := c.Param("login")
	if err := h.guard.Unblock(c.Request.Context(), login); err != nil {
		c.JSON(guardErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account unblocked"})
}
