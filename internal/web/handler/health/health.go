// Package health provides the liveness endpoint used by load balancers.
package health

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
)

const (
	// Path is the path of the health endpoint.
	Path = "/health"
)

// New registers the health route. The alive flag is flipped to false during
// graceful shutdown so load balancers drain the instance before the listener
// stops.
func New(app *fiber.App, alive *atomic.Bool) {
	app.Get(Path, func(c *fiber.Ctx) error {
		if alive != nil && !alive.Load() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "shutting down",
			})
		}

		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
}
