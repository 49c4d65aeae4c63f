// Package daemon assembles the application: database, migrations, seed data
// and the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/dsn"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Class{},
		&models.Assignment{},
		&models.Enrollment{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	st := store.NewGorm(db)

	if err := seed(cfg, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return &Daemon{
		webService: web.New(cfg, st),
	}, nil
}

// openDialector selects the gorm driver for the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case dsn.EnginePostgres:
		return gormpostgres.Open(dsn.Create(cfg))
	case dsn.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg))
	default:
		return gormmysql.Open(dsn.Create(cfg))
	}
}
