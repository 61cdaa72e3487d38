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

type teacherDoc struct {
	ID           string    `bson:"_id"`
	PersonID     string    `bson:"person_id"`
	Subject      string    `bson:"subject"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d teacherDoc) toTeacher() core.Teacher {
	return core.Teacher{
		ID:           d.ID,
		PersonID:     d.PersonID,
		Subject:      d.Subject,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type teacherRepository struct {
	db *mongo.Database
}

var _ ports.TeacherRepository = (*teacherRepository)(nil)

// NewTeacherRepository instantiates a MongoDB implementation of teacher repository.
func NewTeacherRepository(db *mongo.Database) ports.TeacherRepository {
	return &teacherRepository{db: db}
}

func (tr *teacherRepository) Save(ctx context.Context, t core.Teacher) error {
	coll := tr.db.Collection(teachersCollection)

	doc := teacherDoc{
		ID:           t.ID,
		PersonID:     t.PersonID,
		Subject:      t.Subject,
		PasswordHash: t.PasswordHash,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return wrapWriteErr(err)
	}

	return nil
}

func (tr *teacherRepository) RetrieveByID(ctx context.Context, id string) (core.Teacher, error) {
	return tr.retrieve(ctx, bson.D{{Key: "_id", Value: id}})
}

func (tr *teacherRepository) RetrieveByPerson(ctx context.Context, personID string) (core.Teacher, error) {
	return tr.retrieve(ctx, bson.D{{Key: "person_id", Value: personID}})
}

func (tr *teacherRepository) retrieve(ctx context.Context, filter bson.D) (core.Teacher, error) {
	coll := tr.db.Collection(teachersCollection)

	var doc teacherDoc
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return core.Teacher{}, wrapReadErr(err)
	}

	return doc.toTeacher(), nil
}

func (tr *teacherRepository) RetrieveAll(ctx context.Context) ([]core.Teacher, error) {
	coll := tr.db.Collection(teachersCollection)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.D{{Key: "password_hash", Value: 0}})

	cur, err := coll.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}

	var docs []teacherDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	teachers := make([]core.Teacher, 0, len(docs))
	for _, d := range docs {
		teachers = append(teachers, d.toTeacher())
	}

	return teachers, nil
}

func (tr *teacherRepository) UpdateSubject(ctx context.Context, id, subject string) error {
	return tr.set(ctx, id, bson.E{Key: "subject", Value: subject})
}

func (tr *teacherRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return tr.set(ctx, id, bson.E{Key: "password_hash", Value: passwordHash})
}

func (tr *teacherRepository) set(ctx context.Context, id string, field bson.E) error {
	coll := tr.db.Collection(teachersCollection)

	update := bson.D{{Key: "$set", Value: bson.D{field, {Key: "updated_at", Value: time.Now().UTC()}}}}
	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return core.ErrNotFound
	}

	return nil
}

func (tr *teacherRepository) Remove(ctx context.Context, id string) error {
	coll := tr.db.Collection(teachersCollection)

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return core.ErrNotFound
	}

	return nil
}
