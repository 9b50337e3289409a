package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/services"
	live "github.com/prepwise/prepwise_api/websocket"
)

// Handler serves every /api route.
type Handler struct {
	auth      *services.AuthService
	notes     *services.NoteService
	quizzes   *services.QuizService
	analytics *services.AnalyticsService
	hub       *live.Hub
}

type Services struct {
	Auth      *services.AuthService
	Notes     *services.NoteService
	Quizzes   *services.QuizService
	Analytics *services.AnalyticsService
	Hub       *live.Hub
}

func New(s Services) *Handler {
	return &Handler{
		auth:      s.Auth,
		notes:     s.Notes,
		quizzes:   s.Quizzes,
		analytics: s.Analytics,
		hub:       s.Hub,
	}
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return services.BadRequest("Invalid request body")
	}
	return nil
}

// paramID parses the :id route parameter. A malformed id reads as missing.
func paramID(c *fiber.Ctx, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, services.NotFound(notFound)
	}
	return id, nil
}

func list(c *fiber.Ctx, key string, items interface{}, count int) error {
	return c.JSON(fiber.Map{"success": true, "count": count, key: items})
}
