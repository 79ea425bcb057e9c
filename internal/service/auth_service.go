package service

import (
	"context"
	"errors"
	"time"

	"qzone/internal/model"
	"qzone/internal/repository"
	"qzone/internal/utils"

	"github.com/google/uuid"
)

// AuthService registers and authenticates users. Role is part of the login key.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*model.User, error)
	Login(ctx context.Context, username, password, role string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *utils.PasswordHasher
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher *utils.PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		now:      time.Now,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, username, password, role string) (*model.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, ErrFieldsRequired
	}

	userRole, err := model.ParseRole(role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	// Fast path only. Create is what actually guards uniqueness.
	existingUser, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, wrapStorage("failed to check existing user", err)
	}
	if existingUser != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         userRole,
		CreatedAt:    s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, wrapStorage("failed to create user", err)
	}

	return user, nil
}

// Login authenticates by username, password and role
func (s *authService) Login(ctx context.Context, username, password, role string) (*model.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, ErrLoginFieldsRequired
	}

	// An unknown role cannot match any stored user, so it fails like any other miss.
	userRole, err := model.ParseRole(role)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsernameAndRole(ctx, username, userRole)
	if err != nil {
		return nil, wrapStorage("failed to find user", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns every user without password hashes
func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, wrapStorage("failed to list users", err)
	}
	return users, nil
}
