package ports

import (
	"context"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// GithubClient fetches the most recently created public repositories of a
// GitHub user. A missing user is domain.ErrGithubUserNotFound, every other
// failure wraps domain.ErrUpstream.
type GithubClient interface {
	Repos(ctx context.Context, username string) ([]domain.GithubRepo, error)
}

// RepoCache stores GitHub results per username.
type RepoCache interface {
	Get(ctx context.Context, username string) ([]domain.GithubRepo, bool, error)
	Set(ctx context.Context, username string, repos []domain.GithubRepo) error
}

// RepoWarmer schedules background cache fills.
type RepoWarmer interface {
	Enqueue(username string)
	EnqueueBatch(usernames []string)
}
