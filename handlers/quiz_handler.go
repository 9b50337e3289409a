package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/middleware"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/services"
)

func (h *Handler) CreateQuiz(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Only teachers can create quizzes")
	}
	var req services.CreateQuizInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	quiz, err := h.quizzes.Create(c.UserContext(), teacher, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": quiz})
}

// GetQuizzes lists a teacher's own quizzes, or the quizzes of a student's batch.
func (h *Handler) GetQuizzes(c *fiber.Ctx) error {
	switch p := middleware.CurrentPrincipal(c).(type) {
	case *models.Teacher:
		quizzes, err := h.quizzes.ListForTeacher(c.UserContext(), p)
		if err != nil {
			return err
		}
		return list(c, "data", quizzes, len(quizzes))
	case *models.Student:
		quizzes, err := h.quizzes.ListForStudent(c.UserContext(), p)
		if err != nil {
			return err
		}
		return list(c, "data", quizzes, len(quizzes))
	default:
		return services.Forbidden("Unauthorized access")
	}
}

func (h *Handler) GetQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "Quiz not found")
	if err != nil {
		return err
	}

	var data interface{}
	switch p := middleware.CurrentPrincipal(c).(type) {
	case *models.Teacher:
		data, err = h.quizzes.GetForTeacher(c.UserContext(), p, id)
	case *models.Student:
		data, err = h.quizzes.GetForStudent(c.UserContext(), p, id)
	default:
		err = services.Forbidden("Unauthorized access")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *Handler) SubmitQuiz(c *fiber.Ctx) error {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		return services.Forbidden("Only students can submit quizzes")
	}
	id, err := paramID(c, "Quiz not found")
	if err != nil {
		return err
	}
	var req services.SubmitQuizInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	outcome, err := h.quizzes.Submit(c.UserContext(), student, id, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    outcome,
		"message": "Quiz submitted successfully",
	})
}
