package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/studentlogs/core/course"
)

type courseDocument struct {
	ID      string `bson:"id"`
	Display string `bson:"display"`
}

type courseRepository struct {
	coll *mongo.Collection
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *mongo.Database) course.Repository {
	return &courseRepository{coll: db.Collection(courseCollection)}
}

func (repo courseRepository) unmarshal(doc courseDocument) course.Course {
	return course.Course{ID: doc.ID, Display: doc.Display}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	doc := courseDocument{ID: crs.ID, Display: crs.Display}
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return course.Course{}, course.ErrExists
		}
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	cur, err := repo.coll.Find(ctx, bson.D{}, options.Find().SetProjection(hideInternal).SetSort(insertionOrder))
	if err != nil {
		return nil, errors.Wrap(err, "finding courses")
	}
	var docs []courseDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}

	courses := make([]course.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, repo.unmarshal(doc))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var doc courseDocument
	err := repo.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}, options.FindOne().SetProjection(hideInternal)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	return repo.unmarshal(doc), nil
}
