package handler

import (
	"context"
	"time"

	"career-studio/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache pinger
}

func NewHealthHandler(db pinger, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Handle)
}

func (h *HealthHandler) Handle(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := componentStatus(ctx, h.db)
	cacheStatus := componentStatus(ctx, h.cache)

	status := "ok"
	if dbStatus != "ok" {
		status = "degraded"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"status":   status,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}

func componentStatus(ctx context.Context, p pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}
