package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type postDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	User     primitive.ObjectID `bson:"user"`
	Text     string             `bson:"text"`
	Name     string             `bson:"name"`
	Avatar   string             `bson:"avatar"`
	Likes    []domain.Like      `bson:"likes"`
	Comments []domain.Comment   `bson:"comments"`
	Date     time.Time          `bson:"date"`
}

func (d postDoc) toDomain() *domain.Post {
	p := &domain.Post{
		ID:       d.ID.Hex(),
		User:     d.User.Hex(),
		Text:     d.Text,
		Name:     d.Name,
		Avatar:   d.Avatar,
		Likes:    d.Likes,
		Comments: d.Comments,
		Date:     d.Date,
	}
	if p.Likes == nil {
		p.Likes = []domain.Like{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	return p
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	author, err := primitive.ObjectIDFromHex(post.User)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDoc{
		ID:       primitive.NewObjectID(),
		User:     author,
		Text:     post.Text,
		Name:     post.Name,
		Avatar:   post.Avatar,
		Likes:    post.Likes,
		Comments: post.Comments,
		Date:     post.Date.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every post, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike guards against double likes in the update filter itself, so two
// concurrent likes by the same user cannot both land.
func (r *PostRepository) AddLike(ctx context.Context, postID string, like domain.Like) ([]domain.Like, error) {
	filter := bson.M{"likes.user": bson.M{"$ne": like.User}}
	update := bson.M{"$push": bson.M{"likes": bson.M{"$each": bson.A{like}, "$position": 0}}}

	doc, err := r.findAndUpdate(ctx, postID, filter, update, domain.ErrAlreadyLiked)
	if err != nil {
		return nil, err
	}
	return doc.Likes, nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	filter := bson.M{"likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}

	doc, err := r.findAndUpdate(ctx, postID, filter, update, domain.ErrNotLiked)
	if err != nil {
		return nil, err
	}
	return doc.Likes, nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) ([]domain.Comment, error) {
	update := bson.M{"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}}}

	doc, err := r.findAndUpdate(ctx, postID, bson.M{}, update, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	return doc.Comments, nil
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, error) {
	filter := bson.M{"comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}

	doc, err := r.findAndUpdate(ctx, postID, filter, update, domain.ErrCommentNotFound)
	if err != nil {
		return nil, err
	}
	return doc.Comments, nil
}

// findAndUpdate applies update to the post when it also matches guard. When
// nothing matched, it reports ErrPostNotFound for a missing post and
// guardErr otherwise.
func (r *PostRepository) findAndUpdate(ctx context.Context, postID string, guard, update bson.M, guardErr error) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	for k, v := range guard {
		filter[k] = v
	}

	var doc postDoc
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update post: %w", err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("count post: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrPostNotFound
	}
	return nil, guardErr
}
