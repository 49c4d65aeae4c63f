// Package web wires the Fiber application: middleware, route handlers and
// the graceful shutdown lifecycle.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/GoSchoolHub/GoSchoolHub/internal/auth"
	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	accesslog "github.com/GoSchoolHub/GoSchoolHub/internal/logger/adapter/fiber"
	"github.com/GoSchoolHub/GoSchoolHub/internal/token"
	authhandler "github.com/GoSchoolHub/GoSchoolHub/internal/web/handler/auth"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/handler/data"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/handler/health"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/handler/superadmin"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/middleware/school"
)

// Service represents the web service.
type Service struct {
	App         *fiber.App
	cfg         *config.Config
	alive       atomic.Bool
	store       store.Store
	authService *auth.Service
}

// Start starts the web service on the configured address.
func (s *Service) Start() error {
	var doneFiber = make(chan bool)

	addr := fmt.Sprintf(":%d", s.cfg.Webserver.Port)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail the health check first so
	// the LB removes this instance from active targets before we stop.
	log.Info().Msgf(
		"graceful shutdown: return 503 on %s while waiting %d seconds",
		health.Path,
		s.cfg.Webserver.ShutDownTime,
	)

	s.alive.Store(false)
	time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and store.
func New(cfg *config.Config, st store.Store) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("store cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoSchoolHub",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(accesslog.New(accesslog.Config{
		Config:    cfg.Log,
		HealthURI: health.Path,
	}))

	codec := token.NewCodec(cfg.Auth)
	authService := auth.NewService(st, codec)
	schoolMW := school.New(st, cfg.Webserver.LocalDomain)

	service := &Service{
		cfg:         cfg,
		App:         app,
		store:       st,
		authService: authService,
	}
	service.alive.Store(true)

	health.New(app, &service.alive)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes and gates)
	if err := authhandler.Handler.Init(app, cfg, authService, schoolMW); err != nil {
		log.Fatal().Err(err).Msg("failed to init auth handler")
	}

	if err := data.Handler.Init(app, cfg, st, authService, schoolMW); err != nil {
		log.Fatal().Err(err).Msg("failed to init data handler")
	}

	if err := superadmin.Handler.Init(app, cfg, st, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init super-admin handler")
	}

	return service
}
