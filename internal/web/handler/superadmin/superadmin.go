// Package superadmin provides the cross-tenant school management surface.
// It is mounted at a fixed path prefix, exempt from tenant resolution, and
// gated to the SUPER_ADMIN role.
package superadmin

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authcore "github.com/GoSchoolHub/GoSchoolHub/internal/auth"
	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/handler"
)

const (
	// Path is the base path of the super-admin route group.
	Path = "/super-admin"
)

// Service provides CRUD operations for schools.
type Service struct {
	cfg       *config.Config
	store     store.Store
	validator *validator.Validate
}

// Handler is the super-admin handler.
var Handler = Service{}

// Init initializes the super-admin handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store, svc *authcore.Service) error {
	if app == nil || cfg == nil || st == nil {
		return errors.New(handler.ErrNilACSFatalLogMsg)
	}

	s.cfg = cfg
	s.store = st
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Use(
			authcore.RequireAuth(svc, authcore.SurfaceSuperAdmin),
			authcore.RequireRole(models.RoleSuperAdmin),
		)
		router.Post("/schools", s.Create)
		router.Get("/schools", s.List)
		router.Get("/schools/:id", s.Get)
		router.Put("/schools/:id", s.Update)
		router.Delete("/schools/:id", s.Delete)
	})

	return nil
}

type schoolRequest struct {
	Name         string `json:"name" validate:"required"`
	Domain       string `json:"domain" validate:"required,hostname_rfc1123,excludes=."`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
}

type schoolUpdateRequest struct {
	Name         string `json:"name"`
	Domain       string `json:"domain" validate:"omitempty,hostname_rfc1123,excludes=."`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
}

// Create handles POST /super-admin/schools.
func (s *Service) Create(c *fiber.Ctx) error {
	var req schoolRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed")
	}

	if _, err := s.store.FindSchoolByDomain(c.Context(), req.Domain); err == nil {
		return badRequest(c, "Domain already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return serverError(c, err, "failed to check school domain")
	}

	created := &models.School{
		Name:         req.Name,
		Domain:       req.Domain,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}

	if err := s.store.CreateSchool(c.Context(), created); err != nil {
		return serverError(c, err, "failed to create school")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// List handles GET /super-admin/schools.
func (s *Service) List(c *fiber.Ctx) error {
	schools, err := s.store.ListSchools(c.Context())
	if err != nil {
		return serverError(c, err, "failed to list schools")
	}

	return c.JSON(schools)
}

// Get handles GET /super-admin/schools/:id.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := s.store.FindSchoolByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}

		return serverError(c, err, "failed to load school")
	}

	return c.JSON(found)
}

// Update handles PUT /super-admin/schools/:id.
func (s *Service) Update(c *fiber.Ctx) error {
	var req schoolUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed")
	}

	existing, err := s.store.FindSchoolByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}

		return serverError(c, err, "failed to load school")
	}

	if req.Domain != "" && req.Domain != existing.Domain {
		if _, err := s.store.FindSchoolByDomain(c.Context(), req.Domain); err == nil {
			return badRequest(c, "Domain already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return serverError(c, err, "failed to check school domain")
		}

		existing.Domain = req.Domain
	}

	if req.Name != "" {
		existing.Name = req.Name
	}

	if req.ContactEmail != "" {
		existing.ContactEmail = req.ContactEmail
	}

	if req.ContactPhone != "" {
		existing.ContactPhone = req.ContactPhone
	}

	if req.Address != "" {
		existing.Address = req.Address
	}

	if err := s.store.UpdateSchool(c.Context(), existing); err != nil {
		return serverError(c, err, "failed to update school")
	}

	return c.JSON(existing)
}

// Delete handles DELETE /super-admin/schools/:id.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.store.DeleteSchool(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}

		return serverError(c, err, "failed to delete school")
	}

	return c.JSON(fiber.Map{
		"message": "School deleted",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "School not found",
	})
}

func serverError(c *fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).Msg(msg)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server error",
	})
}
