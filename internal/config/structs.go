package config

import (
	"time"

	"github.com/GoSchoolHub/GoSchoolHub/internal/logger"
)

const (
	defaultAccessTokenTTL  = time.Hour
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Auth holds the token signing settings.
// Access and refresh tokens use independent secrets so that leaking one
// secret cannot forge the other token class.
type Auth struct {
	AccessSecret    string        // HMAC secret for access tokens
	RefreshSecret   string        // HMAC secret for refresh tokens
	AccessTokenTTL  time.Duration // lifetime of access tokens
	RefreshTokenTTL time.Duration // lifetime of refresh tokens
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	LocalDomain    string // hostname treated as local development, enables the x-school-domain header
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
