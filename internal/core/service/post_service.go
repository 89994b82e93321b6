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

// PostService implements the discussion posts with likes and comments.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
	newID  func() string
	now    func() time.Time
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		logger: logger,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostService) Create(ctx context.Context, userID string, input ports.TextInput) (*domain.Post, error) {
	input.Text = strings.TrimSpace(input.Text)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		User:     author.ID,
		Text:     input.Text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("post_id", post.ID).Msg("post created")
	return post, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, postID)
}

// Delete removes a post. Only its author may do so.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.User != userID {
		return domain.ErrForbidden
	}
	return s.posts.Delete(ctx, postID)
}

func (s *PostService) Like(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	return s.posts.AddLike(ctx, postID, domain.Like{ID: s.newID(), User: userID})
}

func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	return s.posts.RemoveLike(ctx, postID, userID)
}

func (s *PostService) Comment(ctx context.Context, userID, postID string, input ports.TextInput) ([]domain.Comment, error) {
	input.Text = strings.TrimSpace(input.Text)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.posts.AddComment(ctx, postID, domain.Comment{
		ID:     s.newID(),
		User:   author.ID,
		Text:   input.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   s.now(),
	})
}

// Uncomment removes a comment. Only the comment's author may do so.
func (s *PostService) Uncomment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var found *domain.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			found = &post.Comments[i]
			break
		}
	}
	if found == nil {
		return nil, domain.ErrCommentNotFound
	}
	if found.User != userID {
		return nil, domain.ErrForbidden
	}

	return s.posts.RemoveComment(ctx, postID, commentID)
}
