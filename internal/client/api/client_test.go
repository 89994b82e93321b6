package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api/", 5*time.Second)
}

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:5000/api/", time.Second)

	assert.Equal(t, "http://localhost:5000/api", c.baseURL)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Empty(t, c.Token())
}

func TestClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get(TokenHeader))

		var in ports.RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "a@x.com", in.Email)

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	})

	token, err := c.Register(context.Background(), ports.RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestClient_Register_ValidationErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"param":"email","msg":"Please include a valid email"},{"param":"password","msg":"Please enter a password with 6 or more characters"}]}`))
	})

	_, err := c.Register(context.Background(), ports.RegisterInput{})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Len(t, apiErr.Errors, 2)
	assert.Equal(t, "email", apiErr.Errors[0].Param)
	assert.Contains(t, err.Error(), "Please include a valid email")
}

func TestClient_SendsTokenHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth", r.URL.Path)
		if r.Header.Get(TokenHeader) != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"No token, authorization denied"}`))
			return
		}
		_, _ = w.Write([]byte(`{"_id":"u1","name":"A","email":"a@x.com","avatar":"//gravatar"}`))
	})

	_, err := c.LoadUser(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "No token, authorization denied", apiErr.Msg)

	c.SetToken("tok")
	user, err := c.LoadUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "A", user.Name)
}

func TestClient_UpsertProfile_ReadsCreatedHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		created bool
	}{
		{name: "created", header: "true", created: true},
		{name: "updated", header: "false", created: false},
		{name: "missing header", header: "", created: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/profile", r.URL.Path)
				if tt.header != "" {
					w.Header().Set("X-Profile-Created", tt.header)
				}
				_, _ = w.Write([]byte(`{"_id":"p1","status":"Dev","skills":["go"]}`))
			})

			profile, created, err := c.UpsertProfile(context.Background(), ports.UpsertProfileInput{Status: "Dev", Skills: "go"})
			require.NoError(t, err)
			assert.Equal(t, tt.created, created)
			assert.Equal(t, []string{"go"}, profile.Skills)
		})
	}
}

func TestClient_Routes(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		switch r.URL.Path {
		case "/api/posts/like/p1", "/api/posts/unlike/p1":
			_, _ = w.Write([]byte(`[{"_id":"l1","user":"u1"}]`))
		case "/api/posts/comment/p1", "/api/posts/comment/p1/c1":
			_, _ = w.Write([]byte(`[{"_id":"c2","user":"u1","text":"hi"}]`))
		case "/api/profile/github/octo":
			_, _ = w.Write([]byte(`[{"id":1,"name":"repo","html_url":"https://github.com/octo/repo"}]`))
		case "/api/profile", "/api/posts/p1":
			_, _ = w.Write([]byte(`{"msg":"ok"}`))
		default:
			_, _ = w.Write([]byte(`{"_id":"p1"}`))
		}
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"current profile", func() error { _, err := c.CurrentProfile(ctx); return err }, http.MethodGet, "/api/profile/me"},
		{"profile by user", func() error { _, err := c.ProfileByUser(ctx, "u1"); return err }, http.MethodGet, "/api/profile/user/u1"},
		{"add experience", func() error { _, err := c.AddExperience(ctx, ports.ExperienceInput{}); return err }, http.MethodPut, "/api/profile/experience"},
		{"add education", func() error { _, err := c.AddEducation(ctx, ports.EducationInput{}); return err }, http.MethodPut, "/api/profile/education"},
		{"delete experience", func() error { _, err := c.DeleteExperience(ctx, "e1"); return err }, http.MethodDelete, "/api/profile/experience/e1"},
		{"delete education", func() error { _, err := c.DeleteEducation(ctx, "e1"); return err }, http.MethodDelete, "/api/profile/education/e1"},
		{"delete account", func() error { return c.DeleteAccount(ctx) }, http.MethodDelete, "/api/profile"},
		{"github", func() error { _, err := c.GithubRepos(ctx, "octo"); return err }, http.MethodGet, "/api/profile/github/octo"},
		{"get post", func() error { _, err := c.Post(ctx, "p1"); return err }, http.MethodGet, "/api/posts/p1"},
		{"delete post", func() error { return c.DeletePost(ctx, "p1") }, http.MethodDelete, "/api/posts/p1"},
		{"like", func() error { _, err := c.Like(ctx, "p1"); return err }, http.MethodPut, "/api/posts/like/p1"},
		{"unlike", func() error { _, err := c.Unlike(ctx, "p1"); return err }, http.MethodPut, "/api/posts/unlike/p1"},
		{"comment", func() error { _, err := c.Comment(ctx, "p1", "hi"); return err }, http.MethodPost, "/api/posts/comment/p1"},
		{"uncomment", func() error { _, err := c.Uncomment(ctx, "p1", "c1"); return err }, http.MethodDelete, "/api/posts/comment/p1/c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.method, gotMethod)
			assert.Equal(t, tt.path, gotPath)
		})
	}
}

func TestClient_GithubNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"No Github profile found"}`))
	})

	_, err := c.GithubRepos(context.Background(), "ghost")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "No Github profile found", apiErr.Msg)
}

func TestClient_NonJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})

	_, err := c.Posts(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Msg)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Profiles(ctx)
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestError_Message(t *testing.T) {
	err := &Error{Status: 400, Errors: []domain.FieldError{{Msg: "a"}, {Msg: "b"}}}
	assert.Equal(t, "server error (400): a; b", err.Error())
	assert.Equal(t, "request failed with status 500", (&Error{Status: 500}).Error())
}
