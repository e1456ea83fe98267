package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"career-studio/internal/config"
	"career-studio/internal/delivery/http/handler"
	"career-studio/internal/delivery/http/middleware"
	"career-studio/internal/delivery/http/routes"
	"career-studio/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(
		cfg,
		handler.NewHealthHandler(c.DB, c.Cache),
		c.Analyses,
		ws.NewHandler(c.Hub, logger),
	)
	registry.Register(f)

	go c.Hub.Run()

	if err := c.Sweeper.Start(context.Background()); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
