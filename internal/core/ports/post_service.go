package ports

import (
	"context"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// TextInput is the body of a post or a comment.
type TextInput struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}

type PostService interface {
	Create(ctx context.Context, userID string, input TextInput) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, userID, postID string) error

	Like(ctx context.Context, userID, postID string) ([]domain.Like, error)
	Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error)
	Comment(ctx context.Context, userID, postID string, input TextInput) ([]domain.Comment, error)
	Uncomment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error)
}
