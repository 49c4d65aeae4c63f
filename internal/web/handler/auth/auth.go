// Package auth provides the HTTP handlers for registration, login, token
// refresh and logout. All routes are mounted behind the school resolution
// middleware: the tenant is taken from the request subdomain, never from the
// request body.
package auth

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authcore "github.com/GoSchoolHub/GoSchoolHub/internal/auth"
	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/token"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/handler"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/middleware/school"
)

const (
	// Path is the base path of the auth route group.
	Path = "/auth"

	// RefreshPath is the full path of the refresh endpoint; the refresh
	// cookie is scoped to exactly this path.
	RefreshPath = Path + "/refresh-token"

	// CookieRefreshToken is the cookie carrying the refresh token.
	CookieRefreshToken = "refreshToken"
)

// Service is the auth handler service.
type Service struct {
	cfg       *config.Config
	auth      *authcore.Service
	validator *validator.Validate
}

// Handler is the auth handler.
var Handler = Service{}

// Init initializes the auth handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *authcore.Service, schoolMW fiber.Handler) error {
	if app == nil || cfg == nil || svc == nil {
		return errors.New("app, cfg or auth service is nil")
	}

	s.cfg = cfg
	s.auth = svc
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Post("/register", schoolMW, s.Register)
		router.Post("/login", schoolMW, s.Login)
		router.Post("/refresh-token", schoolMW, s.Refresh)
		router.Post("/logout", schoolMW, authcore.RequireAuth(svc, authcore.SurfaceTenant), s.Logout)
	})

	return nil
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=TEACHER STUDENT"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the body of a successful auth call. The refresh token
// travels only in its cookie, never in the body.
type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /auth/register.
func (s *Service) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed")
	}

	resolved := school.FromCtx(c)

	result, err := s.auth.Register(c.Context(), authcore.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     models.Role(req.Role),
		SchoolID: resolved.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, authcore.ErrUserExists), errors.Is(err, authcore.ErrRoleNotAllowed):
			return badRequest(c, err.Error())
		default:
			log.Error().Err(err).Str("school_id", resolved.ID).Msg("registration failed")

			return badRequest(c, "Registration failed")
		}
	}

	s.setAuthCookies(c, result.Tokens)

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		User:  result.User,
		Token: result.Tokens.Access,
	})
}

// Login handles POST /auth/login.
func (s *Service) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed")
	}

	resolved := school.FromCtx(c)

	result, err := s.auth.Login(c.Context(), req.Email, req.Password, resolved.ID)
	if err != nil {
		if !errors.Is(err, authcore.ErrInvalidCredentials) {
			log.Error().Err(err).Str("school_id", resolved.ID).Msg("login failed")
		}

		// unknown email and wrong password answer identically
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	s.setAuthCookies(c, result.Tokens)

	return c.JSON(authResponse{
		User:  result.User,
		Token: result.Tokens.Access,
	})
}

// Refresh handles POST /auth/refresh-token. The refresh token is supplied
// via its cookie only.
func (s *Service) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(CookieRefreshToken)
	if refreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Refresh token not found",
		})
	}

	result, err := s.auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		if !errors.Is(err, authcore.ErrInvalidRefreshToken) {
			log.Error().Err(err).Msg("token refresh failed")
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid refresh token",
		})
	}

	s.setAuthCookies(c, result.Tokens)

	return c.JSON(fiber.Map{
		"token": result.Tokens.Access,
	})
}

// Logout handles POST /auth/logout. It clears both token cookies; the
// stored refresh token stays in place until the next auth event rotates it.
func (s *Service) Logout(c *fiber.Ctx) error {
	s.clearAuthCookies(c)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// setAuthCookies sets the access token cookie path-wide and the refresh
// token cookie scoped to the refresh endpoint only.
func (s *Service) setAuthCookies(c *fiber.Ctx, pair token.Pair) {
	maxAge := int(s.cfg.Auth.RefreshTokenTTL.Seconds())

	c.Cookie(&fiber.Cookie{
		Name:     authcore.CookieAccessToken,
		Value:    pair.Access,
		Path:     handler.RootPath,
		MaxAge:   maxAge,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	c.Cookie(&fiber.Cookie{
		Name:     CookieRefreshToken,
		Value:    pair.Refresh,
		Path:     RefreshPath,
		MaxAge:   maxAge,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (s *Service) clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authcore.CookieAccessToken,
		Value:    "",
		Path:     handler.RootPath,
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	c.Cookie(&fiber.Cookie{
		Name:     CookieRefreshToken,
		Value:    "",
		Path:     RefreshPath,
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}
