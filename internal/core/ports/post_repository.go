package ports

import (
	"context"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// PostRepository persists posts with their embedded likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error

	// AddLike inserts the like at the head unless like.User already liked
	// the post, in which case it returns domain.ErrAlreadyLiked.
	AddLike(ctx context.Context, postID string, like domain.Like) ([]domain.Like, error)
	// RemoveLike returns domain.ErrNotLiked when userID has no like.
	RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, error)
	AddComment(ctx context.Context, postID string, comment domain.Comment) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, error)
}
