package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dwikikusuma/shopping-hub/internal/identity/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
)

type Service struct {
	repo   UserRepo
	tokens Tokens
}

func NewService(repo UserRepo, tokens Tokens) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a customer account. The cart needs no explicit creation:
// a user without cart rows has an empty cart.
func (s *Service) Register(ctx context.Context, username, email, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a bearer credential to exactly one identity. It is
// a precondition check, not business logic.
func (s *Service) Authenticate(ctx context.Context, bearer string) (domain.Identity, error) {
	if bearer == "" {
		return domain.Identity{}, ErrUnauthenticated
	}
	id, err := s.tokens.Verify(bearer)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return id, nil
}

// RequireRole gates administrative operations.
func (s *Service) RequireRole(id domain.Identity, role domain.Role) error {
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}
