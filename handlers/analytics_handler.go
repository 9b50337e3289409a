package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/middleware"
	"github.com/prepwise/prepwise_api/services"
)

func (h *Handler) GetStudents(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Only teachers can view students")
	}
	rows, err := h.analytics.Students(c.UserContext(), teacher)
	if err != nil {
		return err
	}
	return list(c, "data", rows, len(rows))
}

func (h *Handler) GetStudentPerformance(c *fiber.Ctx) error {
	if _, ok := middleware.CurrentTeacher(c); !ok {
		return services.Forbidden("Only teachers can view student performance")
	}
	id, err := paramID(c, "Student not found")
	if err != nil {
		return err
	}
	perf, err := h.analytics.StudentPerformance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": perf})
}

func (h *Handler) GetAnalyticsOverview(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Only teachers can view analytics")
	}
	overview, err := h.analytics.Overview(c.UserContext(), teacher)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": overview})
}

func (h *Handler) GetMyPerformance(c *fiber.Ctx) error {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		return services.Forbidden("Only students can view their performance")
	}
	perf, err := h.analytics.MyPerformance(c.UserContext(), student)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": perf})
}

func (h *Handler) GetMyAttempts(c *fiber.Ctx) error {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		return services.Forbidden("Only students can view their attempts")
	}
	attempts, err := h.analytics.MyAttempts(c.UserContext(), student)
	if err != nil {
		return err
	}
	return list(c, "data", attempts, len(attempts))
}
