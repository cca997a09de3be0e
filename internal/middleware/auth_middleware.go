package middleware

import (
	"fmt"
	"strings"

	"ecoquest/internal/logger"
	"ecoquest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	IdentityIDKey       = "identityID" // Key for storing the identity subject in fiber.Ctx locals
	EmailKey            = "email"      // Key for storing the verified email claim in fiber.Ctx locals
)

// Protected is the identity verification gate. It requires a structurally
// valid Bearer credential, verifies it, and stores the verified
// {identityID, email} claims in the request context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Could not authorize",
				Status:  fiber.StatusForbidden,
			})
		}

		// Ensure it's an access token
		if claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(IdentityIDKey, claims.IdentityID())
		c.Locals(EmailKey, claims.Email)

		return c.Next()
	}
}

// RequireTeacher gates content mutation behind the teacher role. The role is
// resolved from the profile store on every request, never cached across
// requests, since it could change out-of-band.
func RequireTeacher(profileService service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identityID, ok := c.Locals(IdentityIDKey).(string)
		if !ok || identityID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_USER_CONTEXT",
				Message: "Identity not found in context",
				Status:  fiber.StatusUnauthorized,
			})
		}

		profile, err := profileService.GetProfile(c.Context(), identityID)
		if err != nil || profile == nil {
			logger.Get().Debug("Role check failed: no profile for identity",
				zap.String("identityID", identityID))
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "Forbidden: You do not have permission to perform this action.",
				Status:  fiber.StatusForbidden,
			})
		}

		if !profile.IsTeacher() {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "Forbidden: You do not have permission to perform this action.",
				Status:  fiber.StatusForbidden,
			})
		}

		return c.Next()
	}
}
