package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/trezcool/studentlogs/core"
)

const (
	courseCollection = "courses"
	logCollection    = "logs"
)

// Open connects to the document database, waits for it to answer and ensures the unique indexes exist.
func Open(ctx context.Context, conf core.MongoConfig) (*mongo.Database, error) {
	if conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "pinging mongo")
	}

	db := client.Database(conf.Name)
	if err = ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(coll string) error {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return errors.Wrapf(err, "indexing %s", coll)
	}
	if err := unique(courseCollection); err != nil {
		return err
	}
	if err := unique(logCollection); err != nil {
		return err
	}

	_, err := db.Collection(logCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "courseId", Value: 1}, {Key: "uvuId", Value: 1}},
	})
	return errors.Wrap(err, "indexing logs filter")
}

// hideInternal drops the document database's own fields from query results.
var hideInternal = bson.D{{Key: "_id", Value: 0}}

// insertionOrder sorts on the generated ObjectID, which grows with insertion time.
var insertionOrder = bson.D{{Key: "_id", Value: 1}}
