package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// AccountRepository deletes a user with their profile, posts, likes and
// comments. With transactions enabled the whole removal is atomic; that
// requires a replica set or sharded cluster.
type AccountRepository struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	logger       zerolog.Logger
}

func NewAccountRepository(client *mongo.Client, db *mongo.Database, transactions bool, logger zerolog.Logger) *AccountRepository {
	if !transactions {
		logger.Warn().Msg("mongo transactions disabled, account deletion is not atomic")
	}
	return &AccountRepository{client: client, db: db, transactions: transactions, logger: logger}
}

func (r *AccountRepository) DeleteAccount(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if !r.transactions {
		return r.deleteAll(ctx, oid)
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, r.deleteAll(sc, oid)
	})
	return err
}

// deleteAll removes the user document last.
func (r *AccountRepository) deleteAll(ctx context.Context, oid primitive.ObjectID) error {
	hex := oid.Hex()

	if _, err := r.db.Collection(postsCollection).UpdateMany(ctx, bson.M{},
		bson.M{"$pull": bson.M{
			"likes":    bson.M{"user": hex},
			"comments": bson.M{"user": hex},
		}},
	); err != nil {
		return fmt.Errorf("pull likes and comments: %w", err)
	}

	if _, err := r.db.Collection(postsCollection).DeleteMany(ctx, bson.M{"user": oid}); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}

	if _, err := r.db.Collection(profilesCollection).DeleteOne(ctx, bson.M{"user": oid}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	res, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
