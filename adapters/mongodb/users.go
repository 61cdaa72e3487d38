package mongodb

import (
	"context"
	"time"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID               string    `bson:"_id"`
	EnrollmentNumber string    `bson:"enrollment_number"`
	Email            string    `bson:"email,omitempty"`
	PasswordHash     string    `bson:"password_hash,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func toUserDoc(u core.User) userDoc {
	return userDoc{
		ID:               u.ID,
		EnrollmentNumber: u.EnrollmentNumber,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d userDoc) toUser() core.User {
	return core.User{
		ID:               d.ID,
		EnrollmentNumber: d.EnrollmentNumber,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type userRepository struct {
	db *mongo.Database
}

var _ ports.UserRepository = (*userRepository)(nil)

// NewUserRepository instantiates a MongoDB implementation of user repository.
func NewUserRepository(db *mongo.Database) ports.UserRepository {
	return &userRepository{db: db}
}

func (ur *userRepository) Save(ctx context.Context, u core.User) error {
	coll := ur.db.Collection(usersCollection)

	if _, err := coll.InsertOne(ctx, toUserDoc(u)); err != nil {
		return wrapWriteErr(err)
	}

	return nil
}

func (ur *userRepository) RetrieveByID(ctx context.Context, id string) (core.User, error) {
	coll := ur.db.Collection(usersCollection)

	var doc userDoc
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return core.User{}, wrapReadErr(err)
	}

	return doc.toUser(), nil
}

func (ur *userRepository) RetrieveByKey(ctx context.Context, key core.LookupKey) (core.User, error) {
	coll := ur.db.Collection(usersCollection)

	var filter bson.D
	switch key.Variant {
	case core.LookupEnrollment:
		filter = bson.D{{Key: "enrollment_number", Value: key.Value}}
	case core.LookupEmail:
		filter = bson.D{{Key: "email", Value: key.Value}}
	default:
		return core.User{}, core.ErrNotFound
	}
	if key.Value == "" {
		return core.User{}, core.ErrNotFound
	}

	// Two documents are enough to tell a unique match from an ambiguous one.
	cur, err := coll.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return core.User{}, err
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return core.User{}, err
	}
	if len(docs) != 1 {
		return core.User{}, core.ErrNotFound
	}

	return docs[0].toUser(), nil
}

func (ur *userRepository) RetrieveAll(ctx context.Context) ([]core.User, error) {
	coll := ur.db.Collection(usersCollection)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.D{{Key: "password_hash", Value: 0}})

	cur, err := coll.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]core.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}

	return users, nil
}

func (ur *userRepository) Update(ctx context.Context, id string, upd core.UserUpdate) (core.User, error) {
	coll := ur.db.Collection(usersCollection)

	set := bson.D{}
	if upd.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *upd.Email})
	}
	if upd.PasswordHash != nil {
		set = append(set, bson.E{Key: "password_hash", Value: *upd.PasswordHash})
	}
	if !upd.UpdatedAt.IsZero() {
		set = append(set, bson.E{Key: "updated_at", Value: upd.UpdatedAt})
	}
	if len(set) == 0 {
		return ur.RetrieveByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		return core.User{}, wrapReadErr(err)
	}

	return doc.toUser(), nil
}

func (ur *userRepository) Remove(ctx context.Context, id string) error {
	coll := ur.db.Collection(usersCollection)

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return core.ErrNotFound
	}

	return nil
}
