// Package school provides the tenant resolution middleware. The leftmost
// label of the request host selects the school; during local development,
// where every request arrives on the configured local hostname, an explicit
// x-school-domain header selects it instead.
package school

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
)

// HeaderSchoolDomain selects the tenant on the local development host.
const HeaderSchoolDomain = "x-school-domain"

// localsKey is the fiber locals key holding the resolved school.
const localsKey = "CurrentSchool"

// New creates the tenant resolution middleware. It runs before any
// tenant-scoped body validation: requests that resolve to no school never
// reach business logic.
func New(st store.Store, localDomain string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		host := stripPort(c.Hostname())

		domain := strings.Split(host, ".")[0]
		if host == localDomain {
			domain = c.Get(HeaderSchoolDomain)
		}

		resolved, err := st.FindSchoolByDomain(c.Context(), domain)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "School not found",
				})
			}

			log.Error().Err(err).Str("domain", domain).Msg("failed to resolve school")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}

		c.Locals(localsKey, resolved)

		return c.Next()
	}
}

// FromCtx returns the school resolved for the current request, nil if the
// resolution middleware did not run.
func FromCtx(c *fiber.Ctx) *models.School {
	resolved, ok := c.Locals(localsKey).(*models.School)
	if !ok {
		return nil
	}

	return resolved
}

func stripPort(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		return host[:i]
	}

	return host
}
