package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"upgradedash/internal/model"
	serviceMocks "upgradedash/internal/service/mocks"
)

// newSessionApp builds an app with a login route that stores the given user
// id in the session, so protected routes can be exercised with a real cookie.
func newSessionApp(authSvc *serviceMocks.MockAuthService, userID int64) *fiber.App {
	store := session.New()
	app := fiber.New()

	app.Post("/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set(UserIDSessionKey, userID)
		return sess.Save()
	})

	app.Use(Authenticate(store, authSvc))
	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	app.Get("/admin", RequireAuth(), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func loginCookie(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestAuthenticate(t *testing.T) {
	t.Run("anonymous request is rejected by RequireAuth", func(t *testing.T) {
		app := newSessionApp(new(serviceMocks.MockAuthService), 7)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid session resolves the account", func(t *testing.T) {
		mAuth := new(serviceMocks.MockAuthService)
		mAuth.On("GetUser", mock.Anything, int64(7)).Return(&model.User{ID: 7, Username: "ops", Role: model.RoleStandard}, nil)
		app := newSessionApp(mAuth, 7)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(loginCookie(t, app))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("session for a deleted account stays anonymous", func(t *testing.T) {
		mAuth := new(serviceMocks.MockAuthService)
		mAuth.On("GetUser", mock.Anything, int64(7)).Return(nil, nil)
		app := newSessionApp(mAuth, 7)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(loginCookie(t, app))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("standard user is forbidden", func(t *testing.T) {
		mAuth := new(serviceMocks.MockAuthService)
		mAuth.On("GetUser", mock.Anything, int64(7)).Return(&model.User{ID: 7, Username: "ops", Role: model.RoleStandard}, nil)
		app := newSessionApp(mAuth, 7)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(loginCookie(t, app))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin passes", func(t *testing.T) {
		mAuth := new(serviceMocks.MockAuthService)
		mAuth.On("GetUser", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}, nil)
		app := newSessionApp(mAuth, 1)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(loginCookie(t, app))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
