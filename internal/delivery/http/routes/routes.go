package routes

import (
	"career-studio/internal/config"
	"career-studio/internal/delivery/http/handler"
	"career-studio/internal/usecase"
	"career-studio/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg      config.Config
	health   *handler.HealthHandler
	analyses usecase.AnalysisUsecase
	wsHandle *ws.Handler
}

func NewRegistry(cfg config.Config, health *handler.HealthHandler, analyses usecase.AnalysisUsecase, wsHandle *ws.Handler) *Registry {
	return &Registry{cfg: cfg, health: health, analyses: analyses, wsHandle: wsHandle}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.analyses)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.wsHandle == nil {
		return
	}
	app.Get("/ws/analyses", r.wsHandle.HandleAnalysesWS)
}
