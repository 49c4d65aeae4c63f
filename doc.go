// Package main provides the entry point for the GoSchoolHub backend.
// It starts a multi-tenant web server using the Fiber framework where each
// school is resolved from the request subdomain and all identity and data
// operations are scoped to that school. The application uses gorm for data
// persistence and signed JWT pairs for stateless authentication with
// rotating, server-tracked refresh tokens.
package main
