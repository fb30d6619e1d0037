package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Group middleware in fiber attaches to the path prefix and runs for every
// route registered after the group. Anonymous routes sharing a prefix with an
// authenticated group therefore have to be registered first; this pins that
// wiring down.
func TestAnonymousRoutesBeforeAuthGroupStayOpen(t *testing.T) {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	api := app.Group("/api")
	api.Get("/resume/public", ok)
	api.Post("/resume/visitor", TrackDevice(), ok)
	api.Get("/resume/visitor", ok)

	resume := api.Group("/resume", JWTFromHeader("secret"), AttachJWTLocals(), RequireRoles("admin"))
	resume.Get("/", ok)
	resume.Put("/", ok)

	for _, tc := range []struct {
		method string
		path   string
		status int
	}{
		{fiber.MethodGet, "/api/resume/public", fiber.StatusOK},
		{fiber.MethodPost, "/api/resume/visitor", fiber.StatusOK},
		{fiber.MethodGet, "/api/resume/visitor", fiber.StatusOK},
		// Group-protected routes still require a token.
		{fiber.MethodGet, "/api/resume", fiber.StatusUnauthorized},
		{fiber.MethodPut, "/api/resume", fiber.StatusUnauthorized},
	} {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}
