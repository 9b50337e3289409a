package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/middleware"
	"github.com/prepwise/prepwise_api/services"
)

func (h *Handler) GetNotes(c *fiber.Ctx) error {
	notes, err := h.notes.List(c.UserContext(), middleware.CurrentPrincipal(c), services.NoteQuery{
		Subject: c.Query("subject"),
		Unit:    c.QueryInt("unit"),
	})
	if err != nil {
		return err
	}
	return list(c, "notes", notes, len(notes))
}

func (h *Handler) CreateNote(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Access denied. Only teacher can access this.")
	}

	input := services.CreateNoteInput{
		Title:   c.FormValue("title"),
		Subject: c.FormValue("subject"),
		Unit:    c.FormValue("unit"),
	}
	if fh := middleware.UploadedFile(c); fh != nil {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		input.File = &services.Upload{FileName: fh.Filename, Content: f}
	}

	note, err := h.notes.Create(c.UserContext(), teacher, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Note uploaded successfully",
		"note":    note,
	})
}

func (h *Handler) DeleteNote(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Access denied. Only teacher can access this.")
	}
	id, err := paramID(c, "Note not found or unauthorized")
	if err != nil {
		return err
	}
	if err := h.notes.Delete(c.UserContext(), teacher, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Note deleted successfully"})
}
