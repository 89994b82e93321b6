package store

import "github.com/davixiao/MeetTheDev/internal/core/domain"

type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertDanger  AlertType = "danger"
	AlertInfo    AlertType = "info"
)

// Alert is a transient notice removed after the configured TTL.
type Alert struct {
	ID   string
	Msg  string
	Type AlertType
}

// RequestError records the last failed request of a slice.
type RequestError struct {
	Msg    string
	Status int
}

type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *domain.User
}

type ProfileState struct {
	Profile  *domain.Profile
	Profiles []domain.Profile
	Repos    []domain.GithubRepo
	Loading  bool
	Error    *RequestError
}

type PostState struct {
	Posts   []domain.Post
	Post    *domain.Post
	Loading bool
	Error   *RequestError
}

// State is an immutable snapshot. Reduce never modifies the State, or any
// slice it references, that it receives.
type State struct {
	Auth    AuthState
	Profile ProfileState
	Post    PostState
	Alerts  []Alert
}

// Initial is the state before the first user load. token is the persisted
// session token, empty when none was saved.
func Initial(token string) State {
	return State{
		Auth:    AuthState{Token: token, Loading: true},
		Profile: ProfileState{Loading: true},
		Post:    PostState{Loading: true},
	}
}
