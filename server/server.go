package server

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/prepwise/prepwise_api/configs"
	"github.com/prepwise/prepwise_api/database"
	"github.com/prepwise/prepwise_api/handlers"
	"github.com/prepwise/prepwise_api/middleware"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/routes"
	"github.com/prepwise/prepwise_api/services"
	"github.com/prepwise/prepwise_api/storage"
	live "github.com/prepwise/prepwise_api/websocket"
)

const version = "1.0.0"

// Deps are the resources the API runs on.
type Deps struct {
	Repos   repository.Repositories
	Files   storage.FileStore
	Monitor *database.Monitor
	Hub     *live.Hub

	// UploadRoot is served under /uploads when set.
	UploadRoot string
	// Quiet disables the request logger.
	Quiet bool
}

func New(cfg *config.AppConfig, deps Deps) (*fiber.App, error) {
	hub := deps.Hub
	if hub == nil {
		hub = live.NewHub()
	}
	tokens, err := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		return nil, err
	}
	auth := services.NewAuthService(deps.Repos, tokens, cfg.EmailDomain)
	h := handlers.New(handlers.Services{
		Auth:      auth,
		Notes:     services.NewNoteService(deps.Repos, deps.Files, cfg.BaseURL),
		Quizzes:   services.NewQuizService(deps.Repos, hub),
		Analytics: services.NewAnalyticsService(deps.Repos),
		Hub:       hub,
	})

	app := fiber.New(fiber.Config{
		AppName:      "PrepWise API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    int(cfg.MaxUploadSize) + 1024*1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction()),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowCredentials: cfg.ClientURL != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
	}))
	if !deps.Quiet {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	if deps.UploadRoot != "" {
		app.Static("/"+storage.URLPrefix, deps.UploadRoot)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "PrepWise API is running",
			"version": version,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		state := "connected"
		if deps.Monitor != nil && !deps.Monitor.Connected() {
			state = "disconnected"
		}
		return c.JSON(fiber.Map{"success": true, "status": "ok", "database": state})
	})

	protected := middleware.Protected(auth)
	routes.AuthRoutes(app, h, protected, middleware.AuthLimiter(cfg.AuthRateLimit))
	routes.NoteRoutes(app, h, protected, cfg.MaxUploadSize)
	routes.QuizRoutes(app, h, protected, middleware.SocketProtected(auth))

	app.Use(middleware.NotFound)
	return app, nil
}
