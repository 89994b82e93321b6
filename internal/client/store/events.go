package store

import "github.com/davixiao/MeetTheDev/internal/core/domain"

// Auth events.
type (
	UserLoaded struct{ User domain.User }
	// RegisterSuccess and LoginSuccess carry the issued token.
	RegisterSuccess struct{ Token string }
	LoginSuccess    struct{ Token string }
	RegisterFail    struct{ Failure }
	LoginFail       struct{ Failure }
	AuthError       struct{ Err error }
	Logout          struct{}
)

// Profile events. Notice, when set, is shown as a success alert.
type (
	GetProfile struct {
		Profile domain.Profile
		Notice  string
	}
	UpdateProfile struct {
		Profile domain.Profile
		Notice  string
	}
	GetProfiles    struct{ Profiles []domain.Profile }
	GetRepos       struct{ Repos []domain.GithubRepo }
	ProfileError   struct{ Failure }
	ClearProfile   struct{}
	AccountDeleted struct{}
)

// Post events.
type (
	GetPosts    struct{ Posts []domain.Post }
	GetPost     struct{ Post domain.Post }
	AddPost     struct{ Post domain.Post }
	DeletePost  struct{ ID string }
	UpdateLikes struct {
		PostID string
		Likes  []domain.Like
	}
	AddComment struct {
		PostID   string
		Comments []domain.Comment
	}
	RemoveComment struct {
		PostID    string
		CommentID string
	}
	PostError struct{ Failure }
)

// Alert events.
type (
	SetAlert    struct{ Alert Alert }
	RemoveAlert struct{ ID string }
)

// Failure describes a failed request. Errors holds field-level validation
// messages. Quiet failures update state without raising a generic alert.
type Failure struct {
	Status int
	Msg    string
	Errors []domain.FieldError
	Quiet  bool
}
