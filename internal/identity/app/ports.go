package app

import (
	"context"

	"github.com/dwikikusuma/shopping-hub/internal/identity/domain"
)

type UserRepo interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type Tokens interface {
	Issue(userID string, role domain.Role) (string, error)
	Verify(token string) (domain.Identity, error)
}
