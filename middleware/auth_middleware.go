package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/services"
	"github.com/rs/zerolog/log"
)

const principalKey = "principal"

// Protected verifies the bearer token and loads the account it names.
func Protected(auth *services.AuthService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   auth.Tokens().SigningKey(),
		Claims:       &services.Claims{},
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return services.Unauthorized("Not authorized, invalid token")
			}
			claims, ok := token.Claims.(*services.Claims)
			if !ok {
				return services.Unauthorized("Not authorized, invalid token")
			}
			principal, err := auth.LoadPrincipal(c.UserContext(), claims)
			if err != nil {
				return err
			}
			c.Locals(principalKey, principal)
			return c.Next()
		},
	})
}

// SocketProtected authenticates websocket upgrades. Browsers cannot set
// headers on a websocket handshake, so the token may also come from the
// "token" query parameter.
func SocketProtected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			return services.Unauthorized("Not authorized, no token provided")
		}
		principal, err := auth.Authenticate(c.UserContext(), raw)
		if err != nil {
			return err
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "Missing or malformed JWT") {
		return services.Unauthorized("Not authorized, no token provided")
	}
	log.Debug().Err(err).Str("path", c.Path()).Msg("rejected bearer token")
	return services.Unauthorized("Not authorized, invalid token")
}

// CurrentPrincipal returns the account loaded by Protected, or nil.
func CurrentPrincipal(c *fiber.Ctx) models.Principal {
	p, _ := c.Locals(principalKey).(models.Principal)
	return p
}

func CurrentTeacher(c *fiber.Ctx) (*models.Teacher, bool) {
	t, ok := CurrentPrincipal(c).(*models.Teacher)
	return t, ok
}

func CurrentStudent(c *fiber.Ctx) (*models.Student, bool) {
	s, ok := CurrentPrincipal(c).(*models.Student)
	return s, ok
}

// RoleRequired rejects principals of any other role with 403 and message.
func RoleRequired(role models.Role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		if p == nil {
			return services.Unauthorized("Not authorized, no token provided")
		}
		if p.PrincipalRole() != role {
			return services.Forbidden(message)
		}
		return c.Next()
	}
}

func TeacherRequired() fiber.Handler {
	return RoleRequired(models.RoleTeacher, "Access denied. Only teacher can access this.")
}
