package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
	"github.com/davixiao/MeetTheDev/internal/pkg/validation"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ProfileService implements profile upsert, browsing, the experience and
// education sub-collections, account removal and GitHub lookups.
type ProfileService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	accounts ports.AccountRepository
	repos    *RepoService
	warmer   ports.RepoWarmer
	logger   zerolog.Logger
	newID    func() string
}

// NewProfileService wires the service. warmer may be nil.
func NewProfileService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	accounts ports.AccountRepository,
	repos *RepoService,
	warmer ports.RepoWarmer,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		accounts: accounts,
		repos:    repos,
		warmer:   warmer,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

func (s *ProfileService) GetMine(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindByUser(ctx, userID)
}

// Upsert creates the caller's profile or merges the supplied fields into it.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input ports.UpsertProfileInput) (*ports.UpsertResult, error) {
	input.Status = strings.TrimSpace(input.Status)
	if len(ParseSkills(input.Skills)) == 0 {
		input.Skills = ""
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// Tokens outlive deleted accounts; never create a profile without an owner.
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	fields := buildProfileFields(input)

	profile, created, err := s.profiles.Upsert(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	if s.warmer != nil && profile.GithubUsername != "" {
		s.warmer.Enqueue(profile.GithubUsername)
	}

	s.logger.Info().
		Str("user_id", userID).
		Bool("created", created).
		Msg("profile saved")

	return &ports.UpsertResult{Profile: profile, Created: created}, nil
}

// WarmGithubCache schedules a cache fill for every distinct GitHub username
// linked from a stored profile and returns how many were queued.
func (s *ProfileService) WarmGithubCache(ctx context.Context) (int, error) {
	if s.warmer == nil {
		return 0, nil
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(profiles))
	var names []string
	for _, p := range profiles {
		name := strings.ToLower(strings.TrimSpace(p.GithubUsername))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	s.warmer.EnqueueBatch(names)

	s.logger.Info().Int("usernames", len(names)).Msg("github cache warm-up scheduled")
	return len(names), nil
}

func (s *ProfileService) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindByUser(ctx, userID)
}

// Remove deletes the user, their profile and their posts.
func (s *ProfileService) Remove(ctx context.Context, userID string) error {
	if err := s.accounts.DeleteAccount(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, input ports.ExperienceInput) (*domain.Profile, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	from, to, err := parseRange(input.From, input.To, input.Current)
	if err != nil {
		return nil, err
	}

	return s.profiles.PushExperience(ctx, userID, domain.Experience{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		From:        from,
		To:          to,
		Current:     input.Current,
		Description: input.Description,
	})
}

// RemoveExperience is a no-op when expID is absent.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	return s.profiles.PullExperience(ctx, userID, expID)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, input ports.EducationInput) (*domain.Profile, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	from, to, err := parseRange(input.From, input.To, input.Current)
	if err != nil {
		return nil, err
	}

	return s.profiles.PushEducation(ctx, userID, domain.Education{
		ID:           s.newID(),
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      input.Current,
		Description:  input.Description,
	})
}

// RemoveEducation is a no-op when eduID is absent.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	return s.profiles.PullEducation(ctx, userID, eduID)
}

func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	return s.repos.Repos(ctx, username)
}

func buildProfileFields(in ports.UpsertProfileInput) domain.ProfileFields {
	fields := domain.ProfileFields{
		Status:         &in.Status,
		Company:        present(in.Company),
		Website:        present(in.Website),
		Location:       present(in.Location),
		Bio:            present(in.Bio),
		GithubUsername: present(in.GithubUsername),
		Skills:         ParseSkills(in.Skills),
	}

	social := map[string]*string{
		"youtube":   in.YouTube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.LinkedIn,
		"instagram": in.Instagram,
	}
	for _, key := range domain.SocialKeys {
		if v := present(social[key]); v != nil {
			if fields.Social == nil {
				fields.Social = make(map[string]string)
			}
			fields.Social[key] = *v
		}
	}
	return fields
}

// present treats nil and blank strings alike as "not supplied".
func present(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseSkills splits a comma separated list, trimming entries and dropping
// empty ones. Order is preserved.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// parseRange parses the from/to pair of a dated entry. A current entry never
// carries an end date.
func parseRange(fromRaw, toRaw string, current bool) (time.Time, *time.Time, error) {
	var errs []domain.FieldError

	from, ok := parseDate(fromRaw)
	if !ok {
		errs = append(errs, domain.FieldError{Param: "from", Msg: "From date is invalid"})
	}

	var to *time.Time
	if !current && strings.TrimSpace(toRaw) != "" {
		t, ok := parseDate(toRaw)
		if !ok {
			errs = append(errs, domain.FieldError{Param: "to", Msg: "To date is invalid"})
		} else {
			to = &t
		}
	}

	if len(errs) > 0 {
		return time.Time{}, nil, domain.NewValidationError(errs...)
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
