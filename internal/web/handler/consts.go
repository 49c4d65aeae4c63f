// Package handler holds constants and conventions shared by the route
// handler packages.
package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// ErrNilACSFatalLogMsg is used if the app, cfg or store var pointer is nil.
	ErrNilACSFatalLogMsg = "app, cfg or store is nil"
)
