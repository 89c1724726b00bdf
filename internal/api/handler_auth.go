package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/internal/guard"
	"innkeeper-backend/internal/mw"
	"innkeeper-backend/internal/token"
)

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	UserID             int64  `json:"user_id"`
	Login              string `json:"login"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
	AccessToken        string `json:"access_token"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and password are required"})
		return
	}

	result, err := h.guard.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		status := guardErrorStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.tokens.Issue(token.Claims{
		UserID: result.UserID,
		Login:  result.Login,
		Role:   result.Role,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue access token"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		UserID:             result.UserID,
		Login:              result.Login,
		Role:               result.Role,
		MustChangePassword: result.MustChangePassword,
		AccessToken:        accessToken,
	})
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ChangePassword handles POST /api/auth/password for the authenticated user.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := mw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old, new and confirmation passwords are required"})
		return
	}

	err := h.guard.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		c.JSON(guardErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// guardErrorStatus maps the guard error taxonomy onto HTTP statuses. Every
// failure except a store outage keeps its distinct, displayable message.
func guardErrorStatus(err error) int {
	switch {
	case errors.Is(err, guard.ErrInvalidCredentials),
		errors.Is(err, guard.ErrWrongCurrentPassword):
		return http.StatusUnauthorized
	case errors.Is(err, guard.ErrAccountBlocked),
		errors.Is(err, guard.ErrInactivityLockout),
		errors.Is(err, guard.ErrLockedAfterRetries):
		return http.StatusForbidden
	case errors.Is(err, guard.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, guard.ErrDuplicateLogin):
		return http.StatusConflict
	case errors.Is(err, guard.ErrConfirmationMismatch),
		errors.Is(err, guard.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, guard.ErrStoreUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
