package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	jwtPkg "github.com/sefazor/learnhub-backend/pkg/jwt"
)

// TokenValidator resolves a session token to its claims.
type TokenValidator interface {
	ValidateToken(token string) (*jwtPkg.Claims, error)
}

// AuthMiddleware reads the token cookie, falling back to a Bearer header,
// and stores userID and userRole in the request locals.
func AuthMiddleware(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("token")
		if tokenString == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid or expired token"))
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}

// RequireInstructor must run after AuthMiddleware.
func RequireInstructor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("userRole").(string); role != models.RoleInstructor {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Only instructors can perform this action"))
		}
		return c.Next()
	}
}
