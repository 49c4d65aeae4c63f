package health

import (
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	app := fiber.New()

	var alive atomic.Bool
	alive.Store(true)

	New(app, &alive)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// during graceful shutdown the endpoint drains the instance
	alive.Store(false)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
