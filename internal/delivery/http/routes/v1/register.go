package v1

import (
	"career-studio/internal/config"
	"career-studio/internal/delivery/http/handler"
	"career-studio/internal/delivery/http/middleware"
	"career-studio/internal/pkg/jwt"
	"career-studio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, analyses usecase.AnalysisUsecase) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	analysisHandler := handler.NewAnalysisHandler(analyses)

	protected := r.Group("", authMw.Middleware())

	analysesGroup := protected.Group("/analyses")
	analysisHandler.RegisterRoutes(analysesGroup)
}
