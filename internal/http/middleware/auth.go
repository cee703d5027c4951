package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"upgradedash/internal/model"
	"upgradedash/internal/service"
)

// UserIDSessionKey is the session key holding the authenticated user's id.
const UserIDSessionKey = "user_id"

// UserLocalKey is the fiber.Ctx locals key holding the resolved *model.User.
const UserLocalKey = "user"

// Authenticate resolves the session's user id back to an account and stores
// it in the request locals. It never rejects: a missing or stale session just
// leaves the locals empty for RequireAuth to handle.
func Authenticate(store *session.Store, authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Next()
		}
		id, ok := sess.Get(UserIDSessionKey).(int64)
		if !ok {
			return c.Next()
		}
		user, err := authSvc.GetUser(c.UserContext(), id)
		if err != nil || user == nil {
			return c.Next()
		}
		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// RequireAuth rejects requests that did not resolve to an account.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}

// RequireAdmin rejects authenticated requests from non-admin accounts.
// Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.ErrUnauthorized
		}
		if !user.IsAdmin() {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}

// CurrentUser returns the account stored by Authenticate, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	if v := c.Locals(UserLocalKey); v != nil {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
