package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/handlers"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler, protected, limit fiber.Handler) {
	auth := app.Group("/api/auth")
	auth.Post("/register/teacher", limit, h.RegisterTeacher)
	auth.Post("/register/student", limit, h.RegisterStudent)
	auth.Post("/login", limit, h.Login)
	auth.Get("/my-students", protected, h.MyStudents)
}
