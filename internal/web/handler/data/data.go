// Package data provides the tenant-scoped read endpoints: the school
// overview and single class details. Routine data access; the interesting
// work happens in the school and identity middleware in front of it.
package data

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authcore "github.com/GoSchoolHub/GoSchoolHub/internal/auth"
	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/handler"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/middleware/school"
)

const (
	// Path is the base path of the data route group.
	Path = "/data"
)

// Service is the data handler service.
type Service struct {
	cfg   *config.Config
	store store.Store
}

// Handler is the data handler.
var Handler = Service{}

// Init initializes the data handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store, svc *authcore.Service, schoolMW fiber.Handler) error {
	if app == nil || cfg == nil || st == nil {
		return errors.New(handler.ErrNilACSFatalLogMsg)
	}

	s.cfg = cfg
	s.store = st

	app.Route(Path, func(router fiber.Router) {
		router.Use(schoolMW, authcore.RequireAuth(svc, authcore.SurfaceTenant))
		router.Get("/", s.Overview)
		router.Get("/classes/:classId", s.Class)
	})

	return nil
}

// Overview handles GET /data: the resolved school with its teachers and
// classes.
func (s *Service) Overview(c *fiber.Ctx) error {
	resolved := school.FromCtx(c)

	overview, err := s.store.SchoolOverview(c.Context(), resolved.ID)
	if err != nil {
		log.Error().Err(err).Str("school_id", resolved.ID).Msg("failed to load school overview")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(overview)
}

// Class handles GET /data/classes/:classId. Classes of other schools are
// indistinguishable from missing ones.
func (s *Service) Class(c *fiber.Ctx) error {
	resolved := school.FromCtx(c)

	class, err := s.store.FindClassInSchool(c.Context(), c.Params("classId"), resolved.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Class not found",
			})
		}

		log.Error().Err(err).Str("school_id", resolved.ID).Msg("failed to load class")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(class)
}
