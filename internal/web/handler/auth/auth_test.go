package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authcore "github.com/GoSchoolHub/GoSchoolHub/internal/auth"
	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	"github.com/GoSchoolHub/GoSchoolHub/internal/token"
	"github.com/GoSchoolHub/GoSchoolHub/internal/web/middleware/school"
)

const testHost = "dps-school.example.com"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.Teacher{},
		&models.Student{},
	)
	require.NoError(t, err)

	st := store.NewGorm(db)
	require.NoError(t, db.Create(&models.School{Name: "DPS School", Domain: "dps-school"}).Error)

	cfg := config.Config{
		DevMode: true,
		Auth: config.Auth{
			AccessSecret:    "test-access-secret",
			RefreshSecret:   "test-refresh-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		},
	}

	codec := token.NewCodec(cfg.Auth)
	svc := authcore.NewService(st, codec)
	schoolMW := school.New(st, "localhost")

	app := fiber.New()
	require.NoError(t, Handler.Init(app, &cfg, svc, schoolMW))

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Host = testHost
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func registerBody() map[string]string {
	return map[string]string{
		"email":    "alice@x.edu",
		"password": "s3cret-pass",
		"name":     "Alice",
		"role":     "TEACHER",
	}
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", registerBody())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alice@x.edu", body.User.Email)
	assert.NotEmpty(t, body.Token)

	// both cookies are set, the refresh cookie scoped to its endpoint
	access := cookieByName(resp, authcore.CookieAccessToken)
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)

	refresh := cookieByName(resp, CookieRefreshToken)
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, RefreshPath, refresh.Path)

	// the refresh token never appears in the response body
	assert.NotContains(t, body.Token, refresh.Value)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	for name, body := range map[string]map[string]string{
		"bad email":    {"email": "not-an-email", "password": "s3cret-pass", "name": "Alice", "role": "TEACHER"},
		"short pass":   {"email": "alice@x.edu", "password": "short", "name": "Alice", "role": "TEACHER"},
		"missing name": {"email": "alice@x.edu", "password": "s3cret-pass", "role": "TEACHER"},
		"bad role":     {"email": "alice@x.edu", "password": "s3cret-pass", "name": "Alice", "role": "SUPER_ADMIN"},
		"unknown role": {"email": "alice@x.edu", "password": "s3cret-pass", "name": "Alice", "role": "JANITOR"},
		"missing role": {"email": "alice@x.edu", "password": "s3cret-pass", "name": "Alice"},
	} {
		resp := postJSON(t, app, "/auth/register", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, name)
	}
}

func TestRegisterUnknownSchool(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(registerBody()))

	req := httptest.NewRequest(fiber.MethodPost, "/auth/register", &buf)
	req.Host = "nobody.example.com"
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", registerBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "alice@x.edu",
		"password": "s3cret-pass",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, cookieByName(resp, CookieRefreshToken))
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", registerBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	decode := func(resp *http.Response) string {
		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		return body.Message
	}

	unknown := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "nobody@x.edu",
		"password": "s3cret-pass",
	})
	wrongPass := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "alice@x.edu",
		"password": "wrong-pass",
	})

	// both failure modes answer with the identical status and message
	assert.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, decode(unknown), decode(wrongPass))
}

func TestRefreshFlow(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", registerBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	first := cookieByName(resp, CookieRefreshToken)
	require.NotNil(t, first)

	resp = postJSON(t, app, "/auth/refresh-token", nil, first)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rotated := cookieByName(resp, CookieRefreshToken)
	require.NotNil(t, rotated)
	assert.NotEqual(t, first.Value, rotated.Value)

	// the consumed cookie is dead on replay
	resp = postJSON(t, app, "/auth/refresh-token", nil, first)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// the rotated-in cookie works
	resp = postJSON(t, app, "/auth/refresh-token", nil, rotated)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshWithoutCookie(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/refresh-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", registerBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	access := cookieByName(resp, authcore.CookieAccessToken)
	require.NotNil(t, access)

	resp = postJSON(t, app, "/auth/logout", nil, access)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// both cookies are expired by the response
	cleared := cookieByName(resp, authcore.CookieAccessToken)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0 || cleared.Expires.Before(time.Now()))
}

func TestLogoutRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/logout", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
