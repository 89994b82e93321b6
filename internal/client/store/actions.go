package store

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davixiao/MeetTheDev/internal/client/api"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

// API is the subset of the HTTP client used by the actions.
type API interface {
	SetToken(token string)
	Register(ctx context.Context, in ports.RegisterInput) (string, error)
	Login(ctx context.Context, in ports.LoginInput) (string, error)
	LoadUser(ctx context.Context) (*domain.User, error)
	CurrentProfile(ctx context.Context) (*domain.Profile, error)
	Profiles(ctx context.Context) ([]domain.Profile, error)
	ProfileByUser(ctx context.Context, userID string) (*domain.Profile, error)
	GithubRepos(ctx context.Context, username string) ([]domain.GithubRepo, error)
	UpsertProfile(ctx context.Context, in ports.UpsertProfileInput) (*domain.Profile, bool, error)
	AddExperience(ctx context.Context, in ports.ExperienceInput) (*domain.Profile, error)
	AddEducation(ctx context.Context, in ports.EducationInput) (*domain.Profile, error)
	DeleteExperience(ctx context.Context, id string) (*domain.Profile, error)
	DeleteEducation(ctx context.Context, id string) (*domain.Profile, error)
	DeleteAccount(ctx context.Context) error
	Posts(ctx context.Context) ([]domain.Post, error)
	Post(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, text string) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	Like(ctx context.Context, postID string) ([]domain.Like, error)
	Unlike(ctx context.Context, postID string) ([]domain.Like, error)
	Comment(ctx context.Context, postID, text string) ([]domain.Comment, error)
	Uncomment(ctx context.Context, postID, commentID string) ([]domain.Comment, error)
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	SaveToken(token string) error
	GetToken() (string, error)
	DeleteToken() error
}

// Actions builds the effects of the client. Every command performs its I/O
// and returns exactly one terminal event.
type Actions struct {
	api      API
	tokens   TokenStore
	timeout  time.Duration
	alertTTL time.Duration
	newID    func() string
	logger   zerolog.Logger
}

func NewActions(client API, tokens TokenStore, timeout, alertTTL time.Duration, logger zerolog.Logger) *Actions {
	return &Actions{
		api:      client,
		tokens:   tokens,
		timeout:  timeout,
		alertTTL: alertTTL,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// RestoreToken loads the persisted token into the API client and returns it
// for Initial. A missing or unreadable token yields "".
func (a *Actions) RestoreToken() string {
	token, err := a.tokens.GetToken()
	if err != nil {
		a.logger.Debug().Err(err).Msg("no saved session")
		return ""
	}
	a.api.SetToken(token)
	return token
}

func (a *Actions) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *Actions) LoadUser() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		user, err := a.api.LoadUser(ctx)
		if err != nil {
			a.logger.Debug().Err(err).Msg("load user failed")
			a.forget()
			return AuthError{Err: err}
		}
		return UserLoaded{User: *user}
	}
}

func (a *Actions) Register(in ports.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		token, err := a.api.Register(ctx, in)
		if err != nil {
			a.forget()
			return RegisterFail{failure(err, false)}
		}
		a.persist(token)
		return RegisterSuccess{Token: token}
	}
}

func (a *Actions) Login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		token, err := a.api.Login(ctx, ports.LoginInput{Email: email, Password: password})
		if err != nil {
			a.forget()
			return LoginFail{failure(err, false)}
		}
		a.persist(token)
		return LoginSuccess{Token: token}
	}
}

// Logout forgets the token locally. There is no server-side session to end.
func (a *Actions) Logout() tea.Cmd {
	return func() tea.Msg {
		a.forget()
		return Logout{}
	}
}

func (a *Actions) GetCurrentProfile() tea.Cmd {
	return a.profileCmd(true, func(ctx context.Context) (*domain.Profile, error) {
		return a.api.CurrentProfile(ctx)
	}, func(p domain.Profile) tea.Msg { return GetProfile{Profile: p} })
}

// GetProfileByID fetches another developer's profile. Callers reduce
// ClearProfile first so the previous profile is not shown meanwhile.
func (a *Actions) GetProfileByID(userID string) tea.Cmd {
	return a.profileCmd(true, func(ctx context.Context) (*domain.Profile, error) {
		return a.api.ProfileByUser(ctx, userID)
	}, func(p domain.Profile) tea.Msg { return GetProfile{Profile: p} })
}

func (a *Actions) GetProfiles() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		profiles, err := a.api.Profiles(ctx)
		if err != nil {
			return ProfileError{failure(err, true)}
		}
		return GetProfiles{Profiles: profiles}
	}
}

func (a *Actions) GetGithubRepos(username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		repos, err := a.api.GithubRepos(ctx, username)
		if err != nil {
			return ProfileError{failure(err, true)}
		}
		return GetRepos{Repos: repos}
	}
}

// CreateProfile upserts the caller's profile. The notice depends on whether
// the server created or updated the document.
func (a *Actions) CreateProfile(in ports.UpsertProfileInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		profile, created, err := a.api.UpsertProfile(ctx, in)
		if err != nil {
			return ProfileError{failure(err, false)}
		}
		notice := "Profile Updated"
		if created {
			notice = "Profile Created"
		}
		return GetProfile{Profile: *profile, Notice: notice}
	}
}

func (a *Actions) AddExperience(in ports.ExperienceInput) tea.Cmd {
	return a.profileCmd(false, func(ctx context.Context) (*domain.Profile, error) {
		return a.api.AddExperience(ctx, in)
	}, updated("Experience Added"))
}

func (a *Actions) AddEducation(in ports.EducationInput) tea.Cmd {
	return a.profileCmd(false, func(ctx context.Context) (*domain.Profile, error) {
		return a.api.AddEducation(ctx, in)
	}, updated("Education Added"))
}

func (a *Actions) DeleteExperience(id string) tea.Cmd {
	return a.profileCmd(false, func(ctx context.Context) (*domain.Profile, error) {
		return a.api.DeleteExperience(ctx, id)
	}, updated("Experience Removed"))
}

func (a *Actions) DeleteEducation(id string) tea.Cmd {
	return a.profileCmd(false, func(ctx context.Context) (*domain.Profile, error) {
		return a.api.DeleteEducation(ctx, id)
	}, updated("Education Removed"))
}

// DeleteAccount removes the account server-side and forgets the token.
// Callers ask for confirmation before running it.
func (a *Actions) DeleteAccount() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		if err := a.api.DeleteAccount(ctx); err != nil {
			return ProfileError{failure(err, false)}
		}
		a.forget()
		return AccountDeleted{}
	}
}

func (a *Actions) GetPosts() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		posts, err := a.api.Posts(ctx)
		if err != nil {
			return PostError{failure(err, true)}
		}
		return GetPosts{Posts: posts}
	}
}

func (a *Actions) GetPost(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		post, err := a.api.Post(ctx, id)
		if err != nil {
			return PostError{failure(err, true)}
		}
		return GetPost{Post: *post}
	}
}

func (a *Actions) AddPost(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		post, err := a.api.CreatePost(ctx, text)
		if err != nil {
			return PostError{failure(err, false)}
		}
		return AddPost{Post: *post}
	}
}

func (a *Actions) DeletePost(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		if err := a.api.DeletePost(ctx, id); err != nil {
			return PostError{failure(err, false)}
		}
		return DeletePost{ID: id}
	}
}

func (a *Actions) AddLike(postID string) tea.Cmd {
	return a.likesCmd(postID, a.api.Like)
}

func (a *Actions) RemoveLike(postID string) tea.Cmd {
	return a.likesCmd(postID, a.api.Unlike)
}

func (a *Actions) AddComment(postID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		comments, err := a.api.Comment(ctx, postID, text)
		if err != nil {
			return PostError{failure(err, false)}
		}
		return AddComment{PostID: postID, Comments: comments}
	}
}

func (a *Actions) DeleteComment(postID, commentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		if _, err := a.api.Uncomment(ctx, postID, commentID); err != nil {
			return PostError{failure(err, false)}
		}
		return RemoveComment{PostID: postID, CommentID: commentID}
	}
}

func (a *Actions) likesCmd(postID string, call func(context.Context, string) ([]domain.Like, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		likes, err := call(ctx, postID)
		if err != nil {
			return PostError{failure(err, false)}
		}
		return UpdateLikes{PostID: postID, Likes: likes}
	}
}

func (a *Actions) profileCmd(quiet bool, call func(context.Context) (*domain.Profile, error), ok func(domain.Profile) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		profile, err := call(ctx)
		if err != nil {
			return ProfileError{failure(err, quiet)}
		}
		return ok(*profile)
	}
}

func updated(notice string) func(domain.Profile) tea.Msg {
	return func(p domain.Profile) tea.Msg {
		return UpdateProfile{Profile: p, Notice: notice}
	}
}

// persist stores the token for the next run and uses it for later requests.
// A failed save only loses the session on restart.
func (a *Actions) persist(token string) {
	a.api.SetToken(token)
	if err := a.tokens.SaveToken(token); err != nil {
		a.logger.Warn().Err(err).Msg("failed to save session token")
	}
}

func (a *Actions) forget() {
	a.api.SetToken("")
	if err := a.tokens.DeleteToken(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to delete session token")
	}
}

func failure(err error, quiet bool) Failure {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Msg
		if msg == "" {
			msg = apiErr.Error()
		}
		return Failure{Status: apiErr.Status, Msg: msg, Errors: apiErr.Errors, Quiet: quiet}
	}
	return Failure{Msg: err.Error(), Quiet: quiet}
}
