package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prepwise/prepwise_api/services"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders every returned error as {success, message, stack}.
// The stack is only filled outside production and only for server errors.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := services.StatusOf(err)
		if code == 0 {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}

		body := fiber.Map{"success": false, "message": err.Error()}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
			if !production {
				body["stack"] = string(debug.Stack())
			}
		}
		return c.Status(code).JSON(body)
	}
}

// NotFound answers any request no route matched.
func NotFound(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Route not found: %s %s", c.Method(), c.OriginalURL()))
}

// AuthLimiter caps requests per client IP on the credential endpoints.
// perMinute <= 0 disables it.
func AuthLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests, please try again later",
			})
		},
	})
}
