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

type personDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d personDoc) toPerson() core.Person {
	return core.Person{ID: d.ID, Name: d.Name, Email: d.Email, CreatedAt: d.CreatedAt}
}

type personRepository struct {
	db *mongo.Database
}

var _ ports.PersonRepository = (*personRepository)(nil)

// NewPersonRepository instantiates a MongoDB implementation of person repository.
func NewPersonRepository(db *mongo.Database) ports.PersonRepository {
	return &personRepository{db: db}
}

func (pr *personRepository) Save(ctx context.Context, p core.Person) error {
	doc := personDoc{ID: p.ID, Name: p.Name, Email: p.Email, CreatedAt: p.CreatedAt}
	if _, err := pr.db.Collection(personsCollection).InsertOne(ctx, doc); err != nil {
		return wrapWriteErr(err)
	}

	return nil
}

func (pr *personRepository) RetrieveByID(ctx context.Context, id string) (core.Person, error) {
	return pr.retrieve(ctx, bson.D{{Key: "_id", Value: id}})
}

func (pr *personRepository) RetrieveByEmail(ctx context.Context, email string) (core.Person, error) {
	return pr.retrieve(ctx, bson.D{{Key: "email", Value: email}})
}

func (pr *personRepository) retrieve(ctx context.Context, filter bson.D) (core.Person, error) {
	var doc personDoc
	if err := pr.db.Collection(personsCollection).FindOne(ctx, filter).Decode(&doc); err != nil {
		return core.Person{}, wrapReadErr(err)
	}

	return doc.toPerson(), nil
}

func (pr *personRepository) RetrieveAll(ctx context.Context) ([]core.Person, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := pr.db.Collection(personsCollection).Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}

	var docs []personDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	persons := make([]core.Person, 0, len(docs))
	for _, d := range docs {
		persons = append(persons, d.toPerson())
	}

	return persons, nil
}

type rollDoc struct {
	EnrollmentNumber string    `bson:"_id"`
	Name             string    `bson:"name,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
}

type rollRepository struct {
	db *mongo.Database
}

var _ ports.RollRepository = (*rollRepository)(nil)

// NewRollRepository instantiates a MongoDB implementation of the institution roll.
func NewRollRepository(db *mongo.Database) ports.RollRepository {
	return &rollRepository{db: db}
}

func (rr *rollRepository) Save(ctx context.Context, e core.RollEntry) error {
	doc := rollDoc{EnrollmentNumber: e.EnrollmentNumber, Name: e.Name, CreatedAt: e.CreatedAt}
	if _, err := rr.db.Collection(rollCollection).InsertOne(ctx, doc); err != nil {
		return wrapWriteErr(err)
	}

	return nil
}

func (rr *rollRepository) Contains(ctx context.Context, enrollmentNumber string) (bool, error) {
	filter := bson.D{{Key: "_id", Value: enrollmentNumber}}

	n, err := rr.db.Collection(rollCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (rr *rollRepository) RetrieveAll(ctx context.Context) ([]core.RollEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := rr.db.Collection(rollCollection).Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}

	var docs []rollDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]core.RollEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, core.RollEntry{
			EnrollmentNumber: d.EnrollmentNumber,
			Name:             d.Name,
			CreatedAt:        d.CreatedAt,
		})
	}

	return entries, nil
}
