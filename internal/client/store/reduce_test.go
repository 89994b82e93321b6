package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

func TestReduce_AuthLifecycle(t *testing.T) {
	s := Initial("")
	assert.True(t, s.Auth.Loading)
	assert.False(t, s.Auth.IsAuthenticated)

	s = Reduce(s, LoginSuccess{Token: "tok"})
	assert.Equal(t, "tok", s.Auth.Token)
	assert.True(t, s.Auth.IsAuthenticated)
	assert.False(t, s.Auth.Loading)

	s = Reduce(s, UserLoaded{User: domain.User{ID: "u1", Name: "A"}})
	require.NotNil(t, s.Auth.User)
	assert.Equal(t, "A", s.Auth.User.Name)
	assert.Equal(t, "tok", s.Auth.Token)

	s = Reduce(s, Logout{})
	assert.Equal(t, AuthState{}, s.Auth)
}

func TestReduce_FailuresSignOut(t *testing.T) {
	for _, msg := range []any{AuthError{}, RegisterFail{}, LoginFail{}} {
		s := Reduce(Initial("stale"), msg)
		assert.Empty(t, s.Auth.Token)
		assert.False(t, s.Auth.IsAuthenticated)
		assert.False(t, s.Auth.Loading)
	}
}

func TestReduce_ProfileTransitions(t *testing.T) {
	s := Initial("tok")

	s = Reduce(s, GetProfile{Profile: domain.Profile{ID: "p1", Status: "Dev"}})
	require.NotNil(t, s.Profile.Profile)
	assert.False(t, s.Profile.Loading)

	s = Reduce(s, GetRepos{Repos: []domain.GithubRepo{{Name: "repo"}}})
	assert.Len(t, s.Profile.Repos, 1)

	s = Reduce(s, UpdateProfile{Profile: domain.Profile{ID: "p1", Status: "Senior"}})
	assert.Equal(t, "Senior", s.Profile.Profile.Status)

	s = Reduce(s, GetProfiles{Profiles: []domain.Profile{{ID: "p1"}, {ID: "p2"}}})
	assert.Len(t, s.Profile.Profiles, 2)

	s = Reduce(s, ClearProfile{})
	assert.Nil(t, s.Profile.Profile)
	assert.Nil(t, s.Profile.Repos)
	assert.Len(t, s.Profile.Profiles, 2, "clearing keeps the profile list")

	s = Reduce(s, GetProfile{Profile: domain.Profile{ID: "p1"}})
	s = Reduce(s, ProfileError{Failure{Status: 404, Msg: "There is no profile for this user"}})
	assert.Nil(t, s.Profile.Profile)
	require.NotNil(t, s.Profile.Error)
	assert.Equal(t, RequestError{Msg: "Not Found", Status: 404}, *s.Profile.Error)
}

func TestReduce_ProfileErrorWithoutStatus(t *testing.T) {
	s := Reduce(Initial(""), ProfileError{Failure{Msg: "connection refused"}})
	require.NotNil(t, s.Profile.Error)
	assert.Equal(t, "connection refused", s.Profile.Error.Msg)
}

func TestReduce_AccountDeletedClearsEverything(t *testing.T) {
	s := Reduce(Initial("tok"), UserLoaded{User: domain.User{ID: "u1"}})
	s = Reduce(s, GetProfile{Profile: domain.Profile{ID: "p1"}})

	s = Reduce(s, AccountDeleted{})
	assert.Equal(t, AuthState{}, s.Auth)
	assert.Nil(t, s.Profile.Profile)
}

func TestReduce_Alerts(t *testing.T) {
	s := Initial("")
	s = Reduce(s, SetAlert{Alert: Alert{ID: "a", Msg: "one"}})
	s = Reduce(s, SetAlert{Alert: Alert{ID: "b", Msg: "two"}})
	require.Len(t, s.Alerts, 2)
	assert.Equal(t, "a", s.Alerts[0].ID)

	s = Reduce(s, RemoveAlert{ID: "a"})
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, "b", s.Alerts[0].ID)

	s = Reduce(s, RemoveAlert{ID: "missing"})
	assert.Len(t, s.Alerts, 1)
}

func TestReduce_Posts(t *testing.T) {
	s := Initial("tok")
	s = Reduce(s, GetPosts{Posts: []domain.Post{{ID: "p1"}, {ID: "p2"}}})
	s = Reduce(s, AddPost{Post: domain.Post{ID: "p0"}})
	require.Len(t, s.Post.Posts, 3)
	assert.Equal(t, "p0", s.Post.Posts[0].ID)

	s = Reduce(s, UpdateLikes{PostID: "p1", Likes: []domain.Like{{ID: "l1", User: "u1"}}})
	assert.Len(t, s.Post.Posts[1].Likes, 1)

	s = Reduce(s, GetPost{Post: domain.Post{ID: "p1", Comments: []domain.Comment{{ID: "c1"}}}})
	s = Reduce(s, AddComment{PostID: "p1", Comments: []domain.Comment{{ID: "c2"}, {ID: "c1"}}})
	require.Len(t, s.Post.Post.Comments, 2)

	s = Reduce(s, RemoveComment{PostID: "p1", CommentID: "c1"})
	require.Len(t, s.Post.Post.Comments, 1)
	assert.Equal(t, "c2", s.Post.Post.Comments[0].ID)

	s = Reduce(s, DeletePost{ID: "p1"})
	assert.Len(t, s.Post.Posts, 2)
	assert.Nil(t, s.Post.Post)

	s = Reduce(s, PostError{Failure{Status: 403}})
	assert.Equal(t, "Forbidden", s.Post.Error.Msg)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := Initial("tok")
	before.Alerts = []Alert{{ID: "a"}, {ID: "b"}}
	before.Post.Posts = []domain.Post{{ID: "p1"}, {ID: "p2"}}
	post := domain.Post{ID: "p1", Comments: []domain.Comment{{ID: "c1"}, {ID: "c2"}}}
	before.Post.Post = &post

	_ = Reduce(before, RemoveAlert{ID: "a"})
	_ = Reduce(before, DeletePost{ID: "p1"})
	_ = Reduce(before, UpdateLikes{PostID: "p1", Likes: []domain.Like{{ID: "l1"}}})
	_ = Reduce(before, RemoveComment{PostID: "p1", CommentID: "c1"})

	assert.Equal(t, []Alert{{ID: "a"}, {ID: "b"}}, before.Alerts)
	assert.Equal(t, "p1", before.Post.Posts[0].ID)
	assert.Empty(t, before.Post.Posts[0].Likes)
	assert.Len(t, post.Comments, 2)
	assert.Equal(t, "c1", post.Comments[0].ID)
}

func TestReduce_UnknownMessage(t *testing.T) {
	s := Initial("tok")
	assert.Equal(t, s, Reduce(s, struct{}{}))
}

func TestCanEnter(t *testing.T) {
	tests := []struct {
		name string
		auth AuthState
		want Gate
	}{
		{"loading", AuthState{Loading: true}, GateAllow},
		{"authenticated", AuthState{IsAuthenticated: true}, GateAllow},
		{"signed out", AuthState{}, GateRedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEnter(tt.auth))
		})
	}
}
