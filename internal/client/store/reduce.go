package store

import (
	"net/http"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// Reduce applies one event to s and returns the next state. It performs no
// I/O; unknown messages return s unchanged.
func Reduce(s State, msg tea.Msg) State {
	switch m := msg.(type) {
	case UserLoaded:
		user := m.User
		s.Auth.IsAuthenticated = true
		s.Auth.Loading = false
		s.Auth.User = &user

	case RegisterSuccess:
		s.Auth = authenticated(s.Auth, m.Token)
	case LoginSuccess:
		s.Auth = authenticated(s.Auth, m.Token)

	case AuthError, RegisterFail, LoginFail:
		s.Auth = signedOut()
	case Logout:
		s.Auth = signedOut()
		s.Profile = clearedProfile(s.Profile)
	case AccountDeleted:
		s.Auth = signedOut()
		s.Profile = clearedProfile(s.Profile)

	case GetProfile:
		p := m.Profile
		s.Profile.Profile = &p
		s.Profile.Loading = false
	case UpdateProfile:
		p := m.Profile
		s.Profile.Profile = &p
		s.Profile.Loading = false
	case GetProfiles:
		s.Profile.Profiles = m.Profiles
		s.Profile.Loading = false
	case GetRepos:
		s.Profile.Repos = m.Repos
		s.Profile.Loading = false
	case ProfileError:
		s.Profile.Error = requestError(m.Failure)
		s.Profile.Profile = nil
		s.Profile.Loading = false
	case ClearProfile:
		s.Profile = clearedProfile(s.Profile)

	case GetPosts:
		s.Post.Posts = m.Posts
		s.Post.Loading = false
	case GetPost:
		p := m.Post
		s.Post.Post = &p
		s.Post.Loading = false
	case AddPost:
		s.Post.Posts = append([]domain.Post{m.Post}, s.Post.Posts...)
		s.Post.Loading = false
	case DeletePost:
		s.Post.Posts = slices.DeleteFunc(slices.Clone(s.Post.Posts), func(p domain.Post) bool {
			return p.ID == m.ID
		})
		if s.Post.Post != nil && s.Post.Post.ID == m.ID {
			s.Post.Post = nil
		}
		s.Post.Loading = false
	case UpdateLikes:
		s.Post.Posts = slices.Clone(s.Post.Posts)
		for i := range s.Post.Posts {
			if s.Post.Posts[i].ID == m.PostID {
				s.Post.Posts[i].Likes = m.Likes
			}
		}
		if s.Post.Post != nil && s.Post.Post.ID == m.PostID {
			p := *s.Post.Post
			p.Likes = m.Likes
			s.Post.Post = &p
		}
		s.Post.Loading = false
	case AddComment:
		if s.Post.Post != nil && s.Post.Post.ID == m.PostID {
			p := *s.Post.Post
			p.Comments = m.Comments
			s.Post.Post = &p
		}
		s.Post.Loading = false
	case RemoveComment:
		if s.Post.Post != nil && s.Post.Post.ID == m.PostID {
			p := *s.Post.Post
			p.Comments = slices.DeleteFunc(slices.Clone(p.Comments), func(c domain.Comment) bool {
				return c.ID == m.CommentID
			})
			s.Post.Post = &p
		}
		s.Post.Loading = false
	case PostError:
		s.Post.Error = requestError(m.Failure)
		s.Post.Loading = false

	case SetAlert:
		s.Alerts = append(slices.Clone(s.Alerts), m.Alert)
	case RemoveAlert:
		s.Alerts = slices.DeleteFunc(slices.Clone(s.Alerts), func(a Alert) bool {
			return a.ID == m.ID
		})
	}
	return s
}

func authenticated(a AuthState, token string) AuthState {
	a.Token = token
	a.IsAuthenticated = true
	a.Loading = false
	return a
}

func signedOut() AuthState {
	return AuthState{}
}

func clearedProfile(p ProfileState) ProfileState {
	p.Profile = nil
	p.Repos = nil
	p.Loading = false
	return p
}

// requestError keeps the status text as the message, falling back to the
// server message when the status is unknown.
func requestError(f Failure) *RequestError {
	msg := http.StatusText(f.Status)
	if msg == "" {
		msg = f.Msg
	}
	return &RequestError{Msg: msg, Status: f.Status}
}
