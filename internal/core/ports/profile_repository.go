package ports

import (
	"context"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// ProfileRepository persists one profile per user. Every returned profile has
// its owner's name and avatar joined in.
type ProfileRepository interface {
	FindByUser(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	// Upsert atomically creates or updates the profile keyed by userID.
	// created reports whether a new document was inserted.
	Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (profile *domain.Profile, created bool, err error)

	PushExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error)
	PullExperience(ctx context.Context, userID, expID string) (*domain.Profile, error)
	PushEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error)
	PullEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error)
}

// AccountRepository removes a user together with everything they own.
type AccountRepository interface {
	DeleteAccount(ctx context.Context, userID string) error
}
