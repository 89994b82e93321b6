package ports

import (
	"context"
	"time"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required"         msg:"Name is required"`
	Email    string `json:"email"    validate:"required,email"   msg:"Please include a valid email"`
	Password string `json:"password" validate:"required,min=6"   msg:"Please enter a password with 6 or more characters"`
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required"       msg:"Password is required"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, input LoginInput) (string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// TokenIssuer signs a credential for a user id.
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}

// TokenVerifier resolves a credential back to a user id. Failures are
// reported as *domain.AuthError.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
