package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/token"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/middleware/school"
)

// Surface selects how the identity gate treats tenant matching.
type Surface int

const (
	// SurfaceTenant requires the token's school to match the school resolved
	// from the request subdomain.
	SurfaceTenant Surface = iota
	// SurfaceSuperAdmin skips tenant matching: the super-admin identity lives
	// in the reserved system school and must be reachable from any host.
	SurfaceSuperAdmin
)

// CookieAccessToken is the cookie carrying the access token.
const CookieAccessToken = "token"

// localsIdentityKey is the fiber locals key holding the resolved identity.
const localsIdentityKey = "CurrentIdentity"

// Identity is the resolved caller attached to the request after the
// identity gate has run.
type Identity struct {
	ID       string
	Role     models.Role
	SchoolID string
	Email    string
	Name     string
}

// RequireAuth creates the identity gate middleware for the given surface.
// It extracts the bearer token from the Authorization header or the token
// cookie, verifies it as an access token, enforces tenant matching on the
// tenant surface, reloads the full user and attaches the identity to the
// request.
func RequireAuth(s *Service, surface Surface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := bearerToken(c)
		if bearer == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}

		claims, err := s.codec.Verify(bearer, token.Access)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		if surface == SurfaceTenant {
			resolved := school.FromCtx(c)
			if resolved == nil {
				log.Error().Str("path", c.Path()).Msg("identity gate ran without school context")

				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "School context not available",
				})
			}

			// reject tokens issued under another school's subdomain
			if claims.SchoolID != resolved.ID {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"message": "Access denied",
				})
			}
		}

		user, err := s.store.FindUserByID(c.Context(), claims.UserID)
		if err != nil {
			// deleted after token issuance
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		c.Locals(localsIdentityKey, &Identity{
			ID:       user.ID,
			Role:     user.Role,
			SchoolID: user.SchoolID,
			Email:    user.Email,
			Name:     user.Name(),
		})

		return c.Next()
	}
}

// RequireRole creates middleware permitting only the given role. It is a
// pure predicate over the identity attached by RequireAuth.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := FromCtx(c)
		if identity == nil || identity.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied. " + roleLabel(role) + " only.",
			})
		}

		return c.Next()
	}
}

// FromCtx returns the identity attached by RequireAuth, nil if the gate did
// not run on this route.
func FromCtx(c *fiber.Ctx) *Identity {
	identity, ok := c.Locals(localsIdentityKey).(*Identity)
	if !ok {
		return nil
	}

	return identity
}

// bearerToken extracts the access token from the Authorization header or
// falls back to the token cookie.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if value, found := strings.CutPrefix(header, "Bearer "); found && value != "" {
		return value
	}

	return c.Cookies(CookieAccessToken)
}

func roleLabel(role models.Role) string {
	switch role {
	case models.RoleSuperAdmin:
		return "Super Admin"
	case models.RoleTeacher:
		return "Teacher"
	case models.RoleStudent:
		return "Student"
	default:
		return string(role)
	}
}
