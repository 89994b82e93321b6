package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/davixiao/MeetTheDev/internal/api/handler"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
	redisdb "github.com/davixiao/MeetTheDev/internal/infrastructure/db/redis"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (string, error) {
	if strings.HasPrefix(token, "valid-") {
		return strings.TrimPrefix(token, "valid-"), nil
	}
	return "", &domain.AuthError{Kind: domain.AuthInvalid}
}

type fakeAuth struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (string, error)
}

func (f *fakeAuth) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	return f.registerFn(ctx, in)
}

func (f *fakeAuth) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	return f.loginFn(ctx, in)
}

func (f *fakeAuth) Me(_ context.Context, userID string) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}, nil
}

type fakeProfiles struct {
	ports.ProfileService
	calls     int
	getMineFn func(ctx context.Context, userID string) (*domain.Profile, error)
	byUserFn  func(ctx context.Context, userID string) (*domain.Profile, error)
	githubFn  func(ctx context.Context, username string) ([]domain.GithubRepo, error)
	removeFn  func(ctx context.Context, userID string) error
	addExpFn  func(ctx context.Context, userID string, in ports.ExperienceInput) (*domain.Profile, error)
}

func (f *fakeProfiles) GetMine(ctx context.Context, userID string) (*domain.Profile, error) {
	f.calls++
	return f.getMineFn(ctx, userID)
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	f.calls++
	return f.byUserFn(ctx, userID)
}

func (f *fakeProfiles) GithubRepos(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	f.calls++
	return f.githubFn(ctx, username)
}

func (f *fakeProfiles) Remove(ctx context.Context, userID string) error {
	f.calls++
	return f.removeFn(ctx, userID)
}

func (f *fakeProfiles) AddExperience(ctx context.Context, userID string, in ports.ExperienceInput) (*domain.Profile, error) {
	f.calls++
	return f.addExpFn(ctx, userID, in)
}

type fakePosts struct {
	ports.PostService
	deleteFn func(ctx context.Context, userID, postID string) error
}

func (f *fakePosts) Delete(ctx context.Context, userID, postID string) error {
	return f.deleteFn(ctx, userID, postID)
}

type fakeLimiter struct {
	allowed bool
}

func (l fakeLimiter) Allow(context.Context, string) (redisdb.Decision, error) {
	return redisdb.Decision{Allowed: l.allowed, Limit: 1, Reset: time.Now().Add(time.Minute)}, nil
}

type testServer struct {
	auth     *fakeAuth
	profiles *fakeProfiles
	posts    *fakePosts
	deps     Deps
}

func newTestServer() *testServer {
	s := &testServer{
		auth:     &fakeAuth{},
		profiles: &fakeProfiles{},
		posts:    &fakePosts{},
	}
	s.deps = Deps{
		Auth:     s.auth,
		Profiles: s.profiles,
		Posts:    s.posts,
		Verifier: fakeVerifier{},
		Checks:   map[string]handler.Check{"mongodb": func(context.Context) error { return nil }},
		Logger:   zerolog.Nop(),
	}
	return s
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	deps := s.deps
	reg := prometheus.NewRegistry()
	deps.Registerer, deps.Gatherer = reg, reg
	e := NewRouter(deps)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestRouter_RegisterReturnsToken(t *testing.T) {
	s := newTestServer()
	s.auth.registerFn = func(_ context.Context, in ports.RegisterInput) (string, error) {
		if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "secret1" {
			t.Fatalf("unexpected input %+v", in)
		}
		return "tok", nil
	}

	rec, body := s.do(t, http.MethodPost, "/api/users", "", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	if rec.Code != http.StatusOK || body["token"] != "tok" {
		t.Fatalf("expected 200 with token, got %d %v", rec.Code, body)
	}
}

func TestRouter_RegisterValidation(t *testing.T) {
	s := newTestServer()
	s.auth.registerFn = func(context.Context, ports.RegisterInput) (string, error) {
		return "", domain.NewValidationError(
			domain.FieldError{Param: "name", Msg: "Name is required"},
			domain.FieldError{Param: "email", Msg: "Please include a valid email"},
		)
	}

	rec, body := s.do(t, http.MethodPost, "/api/users", "", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected two field errors, got %v", body)
	}
}

func TestRouter_LoginBadJSON(t *testing.T) {
	s := newTestServer()
	s.auth.loginFn = func(context.Context, ports.LoginInput) (string, error) {
		t.Fatalf("service must not be called")
		return "", nil
	}

	rec, _ := s.do(t, http.MethodPost, "/api/auth", "", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRoutesRejectBeforeService(t *testing.T) {
	s := newTestServer()

	rec, body := s.do(t, http.MethodGet, "/api/profile/me", "", "")
	if rec.Code != http.StatusUnauthorized || body["msg"] != "No token, authorization denied" {
		t.Fatalf("expected 401 missing token, got %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodGet, "/api/profile/me", "forged", "")
	if rec.Code != http.StatusUnauthorized || body["msg"] != "Token is not valid" {
		t.Fatalf("expected 401 invalid token, got %d %v", rec.Code, body)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/posts", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected posts to require a token, got %d", rec.Code)
	}

	if s.profiles.calls != 0 {
		t.Fatalf("service reached without a valid token")
	}
}

func TestRouter_Me(t *testing.T) {
	s := newTestServer()

	rec, body := s.do(t, http.MethodGet, "/api/auth", "valid-u1", "")
	if rec.Code != http.StatusOK || body["_id"] != "u1" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
	if _, leaked := body["password"]; leaked {
		t.Fatalf("password must not be serialized")
	}
	if _, leaked := body["PasswordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestRouter_ProfileNotFound(t *testing.T) {
	s := newTestServer()
	s.profiles.getMineFn = func(context.Context, string) (*domain.Profile, error) {
		return nil, domain.ErrProfileNotFound
	}
	s.profiles.byUserFn = func(context.Context, string) (*domain.Profile, error) {
		return nil, domain.ErrProfileNotFound
	}

	rec, body := s.do(t, http.MethodGet, "/api/profile/me", "valid-u1", "")
	if rec.Code != http.StatusNotFound || body["msg"] != "There is no profile for this user" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodGet, "/api/profile/user/abc", "", "")
	if rec.Code != http.StatusNotFound || body["msg"] != "Profile not found" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}

func TestRouter_GithubErrors(t *testing.T) {
	s := newTestServer()
	s.profiles.githubFn = func(_ context.Context, username string) ([]domain.GithubRepo, error) {
		if username == "ghost" {
			return nil, domain.ErrGithubUserNotFound
		}
		return nil, errors.Join(domain.ErrUpstream, errors.New("rate limited"))
	}

	rec, _ := s.do(t, http.MethodGet, "/api/profile/github/ghost", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodGet, "/api/profile/github/octocat", "", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestRouter_DeleteAccount(t *testing.T) {
	s := newTestServer()
	var removed string
	s.profiles.removeFn = func(_ context.Context, userID string) error {
		removed = userID
		return nil
	}

	rec, body := s.do(t, http.MethodDelete, "/api/profile", "valid-u7", "")
	if rec.Code != http.StatusOK || body["msg"] != "User deleted" || removed != "u7" {
		t.Fatalf("unexpected response %d %v (removed %q)", rec.Code, body, removed)
	}
}

func TestRouter_AddExperienceBindsBody(t *testing.T) {
	s := newTestServer()
	s.profiles.addExpFn = func(_ context.Context, userID string, in ports.ExperienceInput) (*domain.Profile, error) {
		if userID != "u1" || in.Title != "Dev" || !in.Current {
			t.Fatalf("unexpected call %s %+v", userID, in)
		}
		return &domain.Profile{ID: "p1", Experience: []domain.Experience{{ID: "e1", Title: "Dev"}}}, nil
	}

	rec, body := s.do(t, http.MethodPut, "/api/profile/experience", "valid-u1", `{"title":"Dev","company":"Acme","from":"2020-01-01","current":true}`)
	if rec.Code != http.StatusOK || body["_id"] != "p1" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}

func TestRouter_DeleteForeignPost(t *testing.T) {
	s := newTestServer()
	s.posts.deleteFn = func(context.Context, string, string) error { return domain.ErrForbidden }

	rec, body := s.do(t, http.MethodDelete, "/api/posts/p1", "valid-u2", "")
	if rec.Code != http.StatusForbidden || body["msg"] != "User not authorized" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}

func TestRouter_RateLimitedLogin(t *testing.T) {
	s := newTestServer()
	s.deps.Limiter = fakeLimiter{allowed: false}
	s.auth.loginFn = func(context.Context, ports.LoginInput) (string, error) {
		t.Fatalf("service must not be called when throttled")
		return "", nil
	}

	rec, _ := s.do(t, http.MethodPost, "/api/auth", "", `{"email":"a@b.co","password":"x"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRouter_Operational(t *testing.T) {
	s := newTestServer()
	s.deps.Checks["redis"] = func(context.Context) error { return errors.New("connection refused") }

	rec, body := s.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("liveness: %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusServiceUnavailable || body["status"] != "degraded" {
		t.Fatalf("readiness: %d %v", rec.Code, body)
	}

	rec, _ = s.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
}
