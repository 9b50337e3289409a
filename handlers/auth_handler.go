package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/middleware"
	"github.com/prepwise/prepwise_api/services"
)

func (h *Handler) RegisterTeacher(c *fiber.Ctx) error {
	var req services.RegisterTeacherInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.RegisterTeacher(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Teacher registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *Handler) RegisterStudent(c *fiber.Ctx) error {
	var req services.RegisterStudentInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.RegisterStudent(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Student registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *Handler) MyStudents(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentTeacher(c)
	if !ok {
		return services.Forbidden("Only teachers can access student lists")
	}
	roster, err := h.auth.MyStudents(c.UserContext(), teacher)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(roster.Students),
		"section":  roster.Section,
		"students": roster.Students,
	})
}
