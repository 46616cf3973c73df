package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/studentlogs/core/studentlog"
)

type logDocument struct {
	ID       string `bson:"id"`
	CourseID string `bson:"courseId"`
	UvuID    string `bson:"uvuId"`
	Date     string `bson:"date"`
	Text     string `bson:"text"`
}

type logRepository struct {
	coll *mongo.Collection
}

var _ studentlog.Repository = (*logRepository)(nil)

func NewLogRepository(db *mongo.Database) studentlog.Repository {
	return &logRepository{coll: db.Collection(logCollection)}
}

func (repo *logRepository) CreateLog(ctx context.Context, lg studentlog.Log) (studentlog.Log, error) {
	doc := logDocument(lg)
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return studentlog.Log{}, studentlog.ErrExists
		}
		return studentlog.Log{}, errors.Wrap(err, "inserting log")
	}
	return lg, nil
}

func (repo *logRepository) FilterLogs(ctx context.Context, filter studentlog.QueryFilter) ([]studentlog.Log, error) {
	query := bson.D{}
	if filter.CourseID != "" {
		query = append(query, bson.E{Key: "courseId", Value: filter.CourseID})
	}
	if filter.UvuID != "" {
		query = append(query, bson.E{Key: "uvuId", Value: filter.UvuID})
	}

	cur, err := repo.coll.Find(ctx, query, options.Find().SetProjection(hideInternal).SetSort(insertionOrder))
	if err != nil {
		return nil, errors.Wrap(err, "finding logs")
	}
	var docs []logDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding logs")
	}

	logs := make([]studentlog.Log, 0, len(docs))
	for _, doc := range docs {
		logs = append(logs, studentlog.Log(doc))
	}
	return logs, nil
}
