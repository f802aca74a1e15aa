package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dwikikusuma/shopping-hub/internal/identity/app"
	"github.com/dwikikusuma/shopping-hub/internal/identity/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	userUUID, err := uuid.Parse(user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid user id: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		userUUID, user.Username, user.Email, user.PasswordHash, string(user.Role),
	)
	if err := row.Scan(&user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, `
		SELECT id, username, email, password_hash, role, created_at
		FROM users WHERE email = $1`, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	userUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid user id: %w", err)
	}
	return r.get(ctx, `
		SELECT id, username, email, password_hash, role, created_at
		FROM users WHERE id = $1`, userUUID)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		user domain.User
		id   uuid.UUID
		role string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&id, &user.Username, &user.Email, &user.PasswordHash, &role, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("query user: %w", err)
	}
	user.ID = id.String()
	user.Role = domain.Role(role)
	return user, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
