package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"upgradedash/internal/http/middleware"
	"upgradedash/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// Login verifies credentials and establishes a cookie session.
func Login(store *session.Store, authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := authSvc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		sess, err := store.Get(c)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		// A fresh session id on login avoids fixation with a pre-set cookie.
		if err := sess.Regenerate(); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		sess.Set(middleware.UserIDSessionKey, user.ID)
		if err := sess.Save(); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(user)
	}
}

// Logout destroys the current session. Idempotent.
func Logout(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err == nil {
			_ = sess.Destroy()
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the authenticated account.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return fiber.ErrUnauthorized
		}
		return c.JSON(user)
	}
}

// CreateUser registers a new account. Admin only.
func CreateUser(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := authSvc.CreateUser(c.UserContext(), req.Username, req.Password, req.ConfirmPassword, req.Role)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserExists):
				return writeError(c, fiber.StatusConflict, "USER_EXISTS", "user already exists")
			case errors.Is(err, service.ErrUsernameRequired),
				errors.Is(err, service.ErrPasswordRequired),
				errors.Is(err, service.ErrPasswordMismatch),
				errors.Is(err, service.ErrPasswordTooShort),
				errors.Is(err, service.ErrInvalidRole):
				return writeError(c, fiber.StatusBadRequest, "INVALID_USER", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}
