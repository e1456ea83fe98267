package routes

import (
	"career-studio/internal/config"
	v1 "career-studio/internal/delivery/http/routes/v1"
	"career-studio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, analyses usecase.AnalysisUsecase) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, analyses)
}
