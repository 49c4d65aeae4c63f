package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyTokenSecret error if one of the auth token secrets is empty.
	ErrEmptyTokenSecret = errors.New("toml config auth.accesssecret and auth.refreshsecret can not be empty")

	// ErrEqualTokenSecrets error if both auth token secrets hold the same value.
	ErrEqualTokenSecrets = errors.New("toml config auth.accesssecret and auth.refreshsecret must differ")
)
