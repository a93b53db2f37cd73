package token

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/qkart/backend/pkg/apperr"
	"github.com/qkart/backend/pkg/user"
)

const localsUserKey = "authUser"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWTs
// and resolves them to a user record. On success the user is attached to
// the request context; every failure path, including store errors, is
// rendered as 401 so internal detail never leaks through the gate.
func NewAuthMiddleware(tokens *Service, users user.Directory, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractBearer(c.Get("Authorization"))
		if tokenStr == "" {
			return reject(c, "please authenticate")
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return reject(c, "please authenticate")
		}
		if claims.Type != TypeAccess {
			log.WithField("type", claims.Type).Debug("invalid token type")
			return reject(c, "please authenticate")
		}

		uid, err := uuid.Parse(claims.Subject)
		if err != nil {
			return reject(c, "please authenticate")
		}

		u, err := users.GetByID(c.Context(), uid)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return reject(c, "unauthorised user")
			}
			log.WithError(err).Warn("user lookup failed during authentication")
			return reject(c, "please authenticate")
		}

		c.Locals(localsUserKey, u)
		return c.Next()
	}
}

// UserFromCtx returns the user attached by the auth middleware.
func UserFromCtx(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(localsUserKey).(user.User)
	return u, ok
}

// extractBearer supports both "Bearer <token>" and a bare token header.
func extractBearer(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func reject(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": message})
}
