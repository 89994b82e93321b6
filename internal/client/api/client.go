package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

// TokenHeader carries the session token on every request.
const TokenHeader = "x-auth-token"

// Error is a non-2xx response decoded from the server's error envelope.
type Error struct {
	Status int
	Msg    string
	Errors []domain.FieldError
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		msgs := make([]string, 0, len(e.Errors))
		for _, fe := range e.Errors {
			msgs = append(msgs, fe.Msg)
		}
		return fmt.Sprintf("server error (%d): %s", e.Status, strings.Join(msgs, "; "))
	}
	if e.Msg != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Msg)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type errorBody struct {
	Msg    string              `json:"msg"`
	Errors []domain.FieldError `json:"errors"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type textBody struct {
	Text string `json:"text"`
}

// Client talks to the DevConnector JSON API. The token set with SetToken is
// sent on every request, the way a browser client keeps a default header.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	var resp tokenBody
	if _, err := c.doRequest(ctx, http.MethodPost, "/users", in, &resp); err != nil {
		return "", fmt.Errorf("register request failed: %w", err)
	}
	return resp.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	var resp tokenBody
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth", in, &resp); err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	return resp.Token, nil
}

// LoadUser returns the account behind the current token.
func (c *Client) LoadUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if _, err := c.doRequest(ctx, http.MethodGet, "/auth", nil, &user); err != nil {
		return nil, fmt.Errorf("load user request failed: %w", err)
	}
	return &user, nil
}

func (c *Client) CurrentProfile(ctx context.Context) (*domain.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/profile/me", nil)
}

func (c *Client) Profiles(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	if _, err := c.doRequest(ctx, http.MethodGet, "/profile", nil, &profiles); err != nil {
		return nil, fmt.Errorf("profiles request failed: %w", err)
	}
	return profiles, nil
}

func (c *Client) ProfileByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/profile/user/"+url.PathEscape(userID), nil)
}

func (c *Client) GithubRepos(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	var repos []domain.GithubRepo
	if _, err := c.doRequest(ctx, http.MethodGet, "/profile/github/"+url.PathEscape(username), nil, &repos); err != nil {
		return nil, fmt.Errorf("github repos request failed: %w", err)
	}
	return repos, nil
}

// UpsertProfile creates or updates the caller's profile. created reports
// whether the server inserted a new document.
func (c *Client) UpsertProfile(ctx context.Context, in ports.UpsertProfileInput) (*domain.Profile, bool, error) {
	var profile domain.Profile
	header, err := c.doRequest(ctx, http.MethodPost, "/profile", in, &profile)
	if err != nil {
		return nil, false, fmt.Errorf("upsert profile request failed: %w", err)
	}
	return &profile, header.Get("X-Profile-Created") == "true", nil
}

func (c *Client) AddExperience(ctx context.Context, in ports.ExperienceInput) (*domain.Profile, error) {
	return c.profile(ctx, http.MethodPut, "/profile/experience", in)
}

func (c *Client) AddEducation(ctx context.Context, in ports.EducationInput) (*domain.Profile, error) {
	return c.profile(ctx, http.MethodPut, "/profile/education", in)
}

func (c *Client) DeleteExperience(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/profile/experience/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteEducation(ctx context.Context, id string) (*domain.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/profile/education/"+url.PathEscape(id), nil)
}

// DeleteAccount removes the caller's user, profile and posts.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/profile", nil, nil); err != nil {
		return fmt.Errorf("delete account request failed: %w", err)
	}
	return nil
}

func (c *Client) Posts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if _, err := c.doRequest(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, fmt.Errorf("posts request failed: %w", err)
	}
	return posts, nil
}

func (c *Client) Post(ctx context.Context, id string) (*domain.Post, error) {
	return c.post(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil)
}

func (c *Client) CreatePost(ctx context.Context, text string) (*domain.Post, error) {
	return c.post(ctx, http.MethodPost, "/posts", textBody{Text: text})
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete post request failed: %w", err)
	}
	return nil
}

func (c *Client) Like(ctx context.Context, postID string) ([]domain.Like, error) {
	return c.likes(ctx, "/posts/like/"+url.PathEscape(postID))
}

func (c *Client) Unlike(ctx context.Context, postID string) ([]domain.Like, error) {
	return c.likes(ctx, "/posts/unlike/"+url.PathEscape(postID))
}

func (c *Client) Comment(ctx context.Context, postID, text string) ([]domain.Comment, error) {
	var comments []domain.Comment
	path := "/posts/comment/" + url.PathEscape(postID)
	if _, err := c.doRequest(ctx, http.MethodPost, path, textBody{Text: text}, &comments); err != nil {
		return nil, fmt.Errorf("comment request failed: %w", err)
	}
	return comments, nil
}

func (c *Client) Uncomment(ctx context.Context, postID, commentID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	path := "/posts/comment/" + url.PathEscape(postID) + "/" + url.PathEscape(commentID)
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, &comments); err != nil {
		return nil, fmt.Errorf("uncomment request failed: %w", err)
	}
	return comments, nil
}

func (c *Client) profile(ctx context.Context, method, path string, body any) (*domain.Profile, error) {
	var profile domain.Profile
	if _, err := c.doRequest(ctx, method, path, body, &profile); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &profile, nil
}

func (c *Client) post(ctx context.Context, method, path string, body any) (*domain.Post, error) {
	var post domain.Post
	if _, err := c.doRequest(ctx, method, path, body, &post); err != nil {
		return nil, fmt.Errorf("post request failed: %w", err)
	}
	return &post, nil
}

func (c *Client) likes(ctx context.Context, path string) ([]domain.Like, error) {
	var likes []domain.Like
	if _, err := c.doRequest(ctx, http.MethodPut, path, nil, &likes); err != nil {
		return nil, fmt.Errorf("like request failed: %w", err)
	}
	return likes, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) (http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil {
			apiErr.Msg = eb.Msg
			apiErr.Errors = eb.Errors
		}
		return resp.Header, apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.Header, nil
}
