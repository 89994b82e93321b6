package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davixiao/MeetTheDev/internal/client/api"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

type fakeAPI struct {
	API
	token string

	loginFn          func(ports.LoginInput) (string, error)
	registerFn       func(ports.RegisterInput) (string, error)
	loadUserFn       func() (*domain.User, error)
	currentProfileFn func() (*domain.Profile, error)
	upsertFn         func(ports.UpsertProfileInput) (*domain.Profile, bool, error)
	addExperienceFn  func(ports.ExperienceInput) (*domain.Profile, error)
	deleteAccountFn  func() error
	likeFn           func(string) ([]domain.Like, error)
	uncommentFn      func(string, string) ([]domain.Comment, error)
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Login(_ context.Context, in ports.LoginInput) (string, error) {
	return f.loginFn(in)
}

func (f *fakeAPI) Register(_ context.Context, in ports.RegisterInput) (string, error) {
	return f.registerFn(in)
}

func (f *fakeAPI) LoadUser(context.Context) (*domain.User, error) {
	return f.loadUserFn()
}

func (f *fakeAPI) CurrentProfile(context.Context) (*domain.Profile, error) {
	return f.currentProfileFn()
}

func (f *fakeAPI) UpsertProfile(_ context.Context, in ports.UpsertProfileInput) (*domain.Profile, bool, error) {
	return f.upsertFn(in)
}

func (f *fakeAPI) AddExperience(_ context.Context, in ports.ExperienceInput) (*domain.Profile, error) {
	return f.addExperienceFn(in)
}

func (f *fakeAPI) DeleteAccount(context.Context) error {
	return f.deleteAccountFn()
}

func (f *fakeAPI) Like(_ context.Context, postID string) ([]domain.Like, error) {
	return f.likeFn(postID)
}

func (f *fakeAPI) Uncomment(_ context.Context, postID, commentID string) ([]domain.Comment, error) {
	return f.uncommentFn(postID, commentID)
}

type memTokens struct {
	token string
	err   error
}

func (m *memTokens) SaveToken(token string) error { m.token = token; return m.err }

func (m *memTokens) GetToken() (string, error) {
	if m.token == "" {
		return "", errors.New("token not found")
	}
	return m.token, nil
}

func (m *memTokens) DeleteToken() error { m.token = ""; return nil }

func newTestActions(f *fakeAPI, tokens *memTokens) *Actions {
	a := NewActions(f, tokens, time.Second, 10*time.Millisecond, zerolog.Nop())
	n := 0
	a.newID = func() string {
		n++
		return fmt.Sprintf("alert-%d", n)
	}
	return a
}

func validationErr(msgs ...string) error {
	errs := make([]domain.FieldError, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, domain.FieldError{Msg: m})
	}
	return fmt.Errorf("login request failed: %w", &api.Error{Status: http.StatusBadRequest, Errors: errs})
}

// collect runs cmd and flattens batches into their messages.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestActions_LoginPersistsToken(t *testing.T) {
	f := &fakeAPI{loginFn: func(in ports.LoginInput) (string, error) {
		assert.Equal(t, "a@x.com", in.Email)
		return "tok", nil
	}}
	tokens := &memTokens{}
	a := newTestActions(f, tokens)

	msg := a.Login("a@x.com", "secret1")()

	assert.Equal(t, LoginSuccess{Token: "tok"}, msg)
	assert.Equal(t, "tok", f.token)
	assert.Equal(t, "tok", tokens.token)
}

func TestActions_LoginFailureCarriesFieldErrors(t *testing.T) {
	f := &fakeAPI{loginFn: func(ports.LoginInput) (string, error) {
		return "", validationErr("Invalid Credentials")
	}}
	tokens := &memTokens{}
	a := newTestActions(f, tokens)

	msg := a.Login("a@x.com", "wrong")()

	fail, ok := msg.(LoginFail)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, fail.Status)
	require.Len(t, fail.Errors, 1)
	assert.Empty(t, tokens.token)

	alerts := collect(t, a.FollowUp(msg))
	require.Len(t, alerts, 1)
	assert.Equal(t, SetAlert{Alert: Alert{ID: "alert-1", Msg: "Invalid Credentials", Type: AlertDanger}}, alerts[0])
}

func TestActions_RegisterFanOutsEveryFieldError(t *testing.T) {
	f := &fakeAPI{registerFn: func(ports.RegisterInput) (string, error) {
		return "", validationErr("Name is required", "Please include a valid email")
	}}
	a := newTestActions(f, &memTokens{})

	msg := a.Register(ports.RegisterInput{})()
	alerts := collect(t, a.FollowUp(msg))

	require.Len(t, alerts, 2)
	var texts []string
	for _, m := range alerts {
		texts = append(texts, m.(SetAlert).Alert.Msg)
	}
	assert.ElementsMatch(t, []string{"Name is required", "Please include a valid email"}, texts)
}

func TestActions_RestoreToken(t *testing.T) {
	f := &fakeAPI{}
	assert.Empty(t, newTestActions(f, &memTokens{}).RestoreToken())

	got := newTestActions(f, &memTokens{token: "saved"}).RestoreToken()
	assert.Equal(t, "saved", got)
	assert.Equal(t, "saved", f.token)
}

func TestActions_LoadUser(t *testing.T) {
	f := &fakeAPI{loadUserFn: func() (*domain.User, error) {
		return nil, &api.Error{Status: http.StatusUnauthorized, Msg: "Token is not valid"}
	}}
	a := newTestActions(f, &memTokens{})

	msg := a.LoadUser()()
	_, ok := msg.(AuthError)
	assert.True(t, ok)
	assert.Nil(t, a.FollowUp(msg), "auth errors raise no alert")

	f.loadUserFn = func() (*domain.User, error) { return &domain.User{ID: "u1"}, nil }
	assert.Equal(t, UserLoaded{User: domain.User{ID: "u1"}}, a.LoadUser()())
}

func TestActions_RejectedTokenIsForgotten(t *testing.T) {
	f := &fakeAPI{loadUserFn: func() (*domain.User, error) {
		return nil, &api.Error{Status: http.StatusUnauthorized, Msg: "Token is not valid"}
	}}
	tokens := &memTokens{token: "expired"}
	a := newTestActions(f, tokens)

	state := Initial(a.RestoreToken())
	require.Equal(t, "expired", f.token)

	state = Reduce(state, a.LoadUser()())

	assert.Empty(t, state.Auth.Token)
	assert.Empty(t, f.token, "later requests must not carry the rejected token")
	assert.Empty(t, tokens.token, "the next run must not restore the rejected token")
}

func TestActions_FailedLoginDropsPreviousToken(t *testing.T) {
	f := &fakeAPI{
		token: "old",
		loginFn: func(ports.LoginInput) (string, error) {
			return "", validationErr("Invalid Credentials")
		},
	}
	tokens := &memTokens{token: "old"}
	a := newTestActions(f, tokens)

	_, ok := a.Login("a@x.com", "wrong")().(LoginFail)
	require.True(t, ok)
	assert.Empty(t, f.token)
	assert.Empty(t, tokens.token)
}

func TestActions_CreateProfileNotice(t *testing.T) {
	tests := []struct {
		created bool
		want    string
	}{
		{created: true, want: "Profile Created"},
		{created: false, want: "Profile Updated"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := &fakeAPI{upsertFn: func(ports.UpsertProfileInput) (*domain.Profile, bool, error) {
				return &domain.Profile{ID: "p1"}, tt.created, nil
			}}
			a := newTestActions(f, &memTokens{})

			msg := a.CreateProfile(ports.UpsertProfileInput{Status: "Dev", Skills: "go"})()
			require.Equal(t, GetProfile{Profile: domain.Profile{ID: "p1"}, Notice: tt.want}, msg)

			alerts := collect(t, a.FollowUp(msg))
			require.Len(t, alerts, 1)
			assert.Equal(t, AlertSuccess, alerts[0].(SetAlert).Alert.Type)
			assert.Equal(t, tt.want, alerts[0].(SetAlert).Alert.Msg)
		})
	}
}

func TestActions_CurrentProfileFailureIsQuiet(t *testing.T) {
	f := &fakeAPI{currentProfileFn: func() (*domain.Profile, error) {
		return nil, &api.Error{Status: http.StatusNotFound, Msg: "There is no profile for this user"}
	}}
	a := newTestActions(f, &memTokens{})

	msg := a.GetCurrentProfile()()
	perr, ok := msg.(ProfileError)
	require.True(t, ok)
	assert.True(t, perr.Quiet)
	assert.Equal(t, http.StatusNotFound, perr.Status)
	assert.Nil(t, a.FollowUp(msg))
}

func TestActions_AddExperience(t *testing.T) {
	f := &fakeAPI{addExperienceFn: func(in ports.ExperienceInput) (*domain.Profile, error) {
		return &domain.Profile{Experience: []domain.Experience{{Title: in.Title}}}, nil
	}}
	a := newTestActions(f, &memTokens{})

	msg := a.AddExperience(ports.ExperienceInput{Title: "Dev", Company: "Acme", From: "2020-01-01"})()
	upd, ok := msg.(UpdateProfile)
	require.True(t, ok)
	assert.Equal(t, "Experience Added", upd.Notice)
}

func TestActions_DeleteAccount(t *testing.T) {
	f := &fakeAPI{deleteAccountFn: func() error { return nil }}
	tokens := &memTokens{token: "tok"}
	a := newTestActions(f, tokens)
	f.token = "tok"

	msg := a.DeleteAccount()()
	assert.Equal(t, AccountDeleted{}, msg)
	assert.Empty(t, tokens.token)
	assert.Empty(t, f.token)

	alerts := collect(t, a.FollowUp(msg))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Your account has been deleted", alerts[0].(SetAlert).Alert.Msg)
}

func TestActions_DeleteAccountFailureKeepsToken(t *testing.T) {
	f := &fakeAPI{deleteAccountFn: func() error { return errors.New("connection refused") }}
	tokens := &memTokens{token: "tok"}
	a := newTestActions(f, tokens)

	msg := a.DeleteAccount()()
	perr, ok := msg.(ProfileError)
	require.True(t, ok)
	assert.False(t, perr.Quiet)
	assert.Equal(t, "tok", tokens.token)

	alerts := collect(t, a.FollowUp(msg))
	require.Len(t, alerts, 1)
	assert.Equal(t, "connection refused", alerts[0].(SetAlert).Alert.Msg)
}

func TestActions_PostEffects(t *testing.T) {
	f := &fakeAPI{
		likeFn: func(postID string) ([]domain.Like, error) {
			if postID == "liked" {
				return nil, &api.Error{Status: http.StatusBadRequest, Msg: "Post already liked"}
			}
			return []domain.Like{{ID: "l1", User: "u1"}}, nil
		},
		uncommentFn: func(postID, commentID string) ([]domain.Comment, error) {
			return []domain.Comment{}, nil
		},
	}
	a := newTestActions(f, &memTokens{})

	assert.Equal(t, UpdateLikes{PostID: "p1", Likes: []domain.Like{{ID: "l1", User: "u1"}}}, a.AddLike("p1")())

	msg := a.AddLike("liked")()
	alerts := collect(t, a.FollowUp(msg))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Post already liked", alerts[0].(SetAlert).Alert.Msg)

	msg = a.DeleteComment("p1", "c1")()
	assert.Equal(t, RemoveComment{PostID: "p1", CommentID: "c1"}, msg)
	alerts = collect(t, a.FollowUp(msg))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Comment Removed", alerts[0].(SetAlert).Alert.Msg)
}

func TestFollowUp_ChainsAndExpiry(t *testing.T) {
	f := &fakeAPI{
		loadUserFn:       func() (*domain.User, error) { return &domain.User{ID: "u1"}, nil },
		currentProfileFn: func() (*domain.Profile, error) { return &domain.Profile{ID: "p1"}, nil },
	}
	a := newTestActions(f, &memTokens{})

	assert.Equal(t, []tea.Msg{UserLoaded{User: domain.User{ID: "u1"}}}, collect(t, a.FollowUp(LoginSuccess{Token: "t"})))
	assert.Equal(t, []tea.Msg{UserLoaded{User: domain.User{ID: "u1"}}}, collect(t, a.FollowUp(RegisterSuccess{Token: "t"})))
	assert.Equal(t, []tea.Msg{GetProfile{Profile: domain.Profile{ID: "p1"}}}, collect(t, a.FollowUp(UserLoaded{})))

	assert.Nil(t, a.FollowUp(GetProfile{Profile: domain.Profile{ID: "p1"}}), "no notice, no alert")
	assert.Nil(t, a.FollowUp(RemoveAlert{ID: "x"}))

	expire := collect(t, a.FollowUp(SetAlert{Alert: Alert{ID: "x"}}))
	assert.Equal(t, []tea.Msg{RemoveAlert{ID: "x"}}, expire)
}
