package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"innkeeper-backend/internal/guard"
	"innkeeper-backend/internal/notification"
	"innkeeper-backend/internal/store"
	"innkeeper-backend/internal/token"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	guard   *guard.Guard
	tokens  *token.Service
	workers *notification.WorkerPool
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, g *guard.Guard, tokens *token.Service, workers *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		guard:   g,
		tokens:  tokens,
		workers: workers,
		webpush: webpushOptions,
	}
}
