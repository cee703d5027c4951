package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"upgradedash/internal/auth"
	"upgradedash/internal/model"
	"upgradedash/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("user already exists")
)

const minPasswordLen = 8

// AuthService defines account authentication and administration use cases.
type AuthService interface {
	// Login verifies the credentials and returns the matching user.
	// Returns ErrInvalidCredentials for unknown users and bad passwords alike.
	Login(ctx context.Context, username, password string) (*model.User, error)

	// GetUser resolves a session's user id back to an account, or nil when
	// the account no longer exists.
	GetUser(ctx context.Context, id int64) (*model.User, error)

	// CreateUser validates and creates a new account.
	CreateUser(ctx context.Context, username, password, confirm, role string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) CreateUser(ctx context.Context, username, password, confirm, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)
	if role == "" {
		role = model.RoleStandard
	}

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if role != model.RoleStandard && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}
