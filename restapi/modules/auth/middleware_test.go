package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Post("/graphql", RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"viewer": c.Locals("user_id")})
	})
	app.Get("/open", OptionalAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": c.Locals("is_authenticated")})
	})
	return app
}

func TestRequireAuthBlocksGuests(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthPassesValidCookie(t *testing.T) {
	app := protectedApp()

	token, err := GenerateJWT("u1", "yamada@example.com", "member")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuthAdmitsGuests(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
