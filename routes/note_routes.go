package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/handlers"
	"github.com/prepwise/prepwise_api/middleware"
)

func NoteRoutes(app *fiber.App, h *handlers.Handler, protected fiber.Handler, maxUpload int64) {
	notes := app.Group("/api/notes", protected)
	notes.Get("", h.GetNotes)
	notes.Post("", middleware.TeacherRequired(), middleware.UploadPDF(maxUpload), h.CreateNote)
	notes.Delete("/:id", middleware.TeacherRequired(), h.DeleteNote)
}
