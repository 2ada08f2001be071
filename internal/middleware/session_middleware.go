package middleware

import (
	"strings"

	"plateguard-backend/internal/repository"
	"plateguard-backend/pkg/config"
	"plateguard-backend/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// RequireSession gates a route group on a valid session token. The
// token comes from the session cookie, or from a Bearer header for
// non-browser clients. The user is loaded on every request so deleted
// accounts lose access immediately.
func RequireSession(cfg config.SessionConfig, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cfg.CookieName)
		if token == "" {
			if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			return unauthorized(c, cfg, "Authentication required")
		}

		userID, err := session.Parse(cfg.Secret, token)
		if err != nil {
			return unauthorized(c, cfg, "Invalid or expired session")
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			return unauthorized(c, cfg, "Invalid or expired session")
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", user.Role)
		return c.Next()
	}
}

// RequireRole restricts a route to the given roles; run it after
// RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
	}
}

func unauthorized(c *fiber.Ctx, cfg config.SessionConfig, message string) error {
	c.Cookie(session.ClearCookie(cfg))
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":    message,
		"redirect": "/signin",
	})
}
