package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/middleware"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/services"
	"github.com/rs/zerolog/log"
)

const liveTeacherKey = "liveTeacher"

// LiveUpgrade admits teachers to the submission feed.
func (h *Handler) LiveUpgrade(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Only teachers can follow live submissions")
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(liveTeacherKey, teacher)
	return c.Next()
}

// LiveSubmissions holds the connection open until the client goes away.
// Events arrive through the hub; anything the client sends is discarded.
func (h *Handler) LiveSubmissions() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		teacher, ok := conn.Locals(liveTeacherKey).(*models.Teacher)
		if !ok {
			conn.Close()
			return
		}
		h.hub.Register(teacher.ID, conn)
		defer h.hub.Unregister(teacher.ID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Debug().Err(err).Str("teacher", teacher.ID.String()).Msg("live client disconnected")
				return
			}
		}
	})
}
