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

const profilesCollection = "profiles"

// ProfileRepository stores profiles keyed by their owner. Reads join the
// owner's name and avatar from the users collection.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

type ownerDoc struct {
	ID     primitive.ObjectID `bson:"_id"`
	Name   string             `bson:"name"`
	Avatar string             `bson:"avatar"`
}

type profileDoc struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	User           primitive.ObjectID  `bson:"user"`
	Owner          *ownerDoc           `bson:"owner,omitempty"`
	Company        string              `bson:"company,omitempty"`
	Website        string              `bson:"website,omitempty"`
	Location       string              `bson:"location,omitempty"`
	Bio            string              `bson:"bio,omitempty"`
	Status         string              `bson:"status"`
	Skills         []string            `bson:"skills"`
	GithubUsername string              `bson:"githubusername,omitempty"`
	Social         domain.Social       `bson:"social"`
	Experience     []domain.Experience `bson:"experience"`
	Education      []domain.Education  `bson:"education"`
	Date           time.Time           `bson:"date"`
}

func (d profileDoc) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:             d.ID.Hex(),
		User:           domain.Owner{ID: d.User.Hex()},
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Bio:            d.Bio,
		Status:         d.Status,
		Skills:         d.Skills,
		GithubUsername: d.GithubUsername,
		Social:         d.Social,
		Experience:     d.Experience,
		Education:      d.Education,
		CreatedAt:      d.Date,
	}
	if d.Owner != nil {
		p.User.Name = d.Owner.Name
		p.User.Avatar = d.Owner.Avatar
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	return p
}

// withOwner joins the owning user into the "owner" field.
func withOwner(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"owner.email": 0, "owner.password": 0}}},
	}
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return r.findByOwner(ctx, oid)
}

func (r *ProfileRepository) findByOwner(ctx context.Context, oid primitive.ObjectID) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, withOwner(bson.M{"user": oid}))
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return docs[0].toDomain(), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(withOwner(bson.M{}), bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}})
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]*domain.Profile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Upsert applies fields in a single atomic update, inserting when no profile
// exists. The unique index on "user" turns a concurrent double insert into a
// duplicate key error, which is retried once as an update.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, domain.ErrUserNotFound
	}

	update := bson.M{
		"$set": profileSet(fields),
		"$setOnInsert": bson.M{
			"date":       time.Now().UTC(),
			"experience": bson.A{},
			"education":  bson.A{},
		},
	}

	res, err := r.updateOwner(ctx, oid, update, true)
	if mongo.IsDuplicateKeyError(err) {
		res, err = r.updateOwner(ctx, oid, update, true)
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert profile: %w", err)
	}

	p, err := r.findByOwner(ctx, oid)
	if err != nil {
		return nil, false, err
	}
	return p, res.UpsertedCount > 0, nil
}

// profileSet builds the $set document. Social links use dotted paths so
// links that were not supplied stay as they are.
func profileSet(f domain.ProfileFields) bson.M {
	set := bson.M{}
	optional := map[string]*string{
		"company":        f.Company,
		"website":        f.Website,
		"location":       f.Location,
		"bio":            f.Bio,
		"status":         f.Status,
		"githubusername": f.GithubUsername,
	}
	for key, v := range optional {
		if v != nil {
			set[key] = *v
		}
	}
	if f.Skills != nil {
		set["skills"] = f.Skills
	}
	for key, v := range f.Social {
		set["social."+key] = v
	}
	return set
}

func (r *ProfileRepository) PushExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	return r.modify(ctx, userID, bson.M{"$push": bson.M{"experience": bson.M{"$each": bson.A{exp}, "$position": 0}}})
}

func (r *ProfileRepository) PullExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	return r.modify(ctx, userID, bson.M{"$pull": bson.M{"experience": bson.M{"_id": expID}}})
}

func (r *ProfileRepository) PushEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	return r.modify(ctx, userID, bson.M{"$push": bson.M{"education": bson.M{"$each": bson.A{edu}, "$position": 0}}})
}

func (r *ProfileRepository) PullEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	return r.modify(ctx, userID, bson.M{"$pull": bson.M{"education": bson.M{"_id": eduID}}})
}

// modify applies update to an existing profile and returns the result.
func (r *ProfileRepository) modify(ctx context.Context, userID string, update bson.M) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	res, err := r.updateOwner(ctx, oid, update, false)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return r.findByOwner(ctx, oid)
}

func (r *ProfileRepository) updateOwner(ctx context.Context, oid primitive.ObjectID, update bson.M, upsert bool) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"user": oid}, update, options.Update().SetUpsert(upsert))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New("empty update result")
	}
	return res, nil
}
