package ports

import (
	"context"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// UserRepository defines the persistence operations for registered users.
// Email uniqueness is enforced by the store, Create returns
// domain.ErrUserExists on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
