package auth_test

import (
	"net/http/httptest"
	"testing"

	"bucket-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: key}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		headers map[string]string
		status  int
	}{
		{"Disabled", "", nil, 200},
		{"Missing Key", "secret", nil, 401},
		{"Wrong Key", "secret", map[string]string{auth.Header: "guess"}, 401},
		{"Header Key", "secret", map[string]string{auth.Header: "secret"}, 200},
		{"Bearer Token", "secret", map[string]string{"Authorization": "Bearer secret"}, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			resp, err := setupApp(tt.key).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
