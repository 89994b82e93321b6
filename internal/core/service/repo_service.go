package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

// RepoService serves GitHub repositories through an optional cache.
type RepoService struct {
	client ports.GithubClient
	cache  ports.RepoCache
	logger zerolog.Logger
}

func NewRepoService(client ports.GithubClient, cache ports.RepoCache, logger zerolog.Logger) *RepoService {
	return &RepoService{client: client, cache: cache, logger: logger}
}

// Repos returns the cached list when present, otherwise fetches and stores it.
// Cache failures are logged and never fail the request.
func (s *RepoService) Repos(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrGithubUserNotFound
	}

	if s.cache != nil {
		repos, ok, err := s.cache.Get(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("github_user", username).Msg("repo cache read failed")
		} else if ok {
			return repos, nil
		}
	}

	return s.fetch(ctx, username)
}

// Refresh fetches the repositories and overwrites the cached copy.
func (s *RepoService) Refresh(ctx context.Context, username string) error {
	_, err := s.fetch(ctx, strings.TrimSpace(username))
	return err
}

func (s *RepoService) fetch(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	repos, err := s.client.Repos(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("github repos for %s: %w", username, err)
	}
	if repos == nil {
		repos = []domain.GithubRepo{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, username, repos); err != nil {
			s.logger.Warn().Err(err).Str("github_user", username).Msg("repo cache write failed")
		}
	}
	return repos, nil
}
