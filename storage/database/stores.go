package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
	inmemdb "github.com/trezcool/studentlogs/storage/database/inmem"
	jsonfiledb "github.com/trezcool/studentlogs/storage/database/jsonfile"
	mongorepos "github.com/trezcool/studentlogs/storage/database/mongo"
	redisrepos "github.com/trezcool/studentlogs/storage/database/redis"
	sqlxrepos "github.com/trezcool/studentlogs/storage/database/sqlx"
)

// Storage engines
const (
	EngineMemory   = "memory"
	EngineFile     = "file"
	EngineMongo    = "mongo"
	EnginePostgres = "postgres"
	EngineRedis    = "redis"
)

var ErrUnknownEngine = errors.New("unknown database engine")

// Stores bundles the repositories of one storage engine.
type Stores struct {
	Engine  string
	Courses course.Repository
	Logs    studentlog.Repository

	close func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open sets up the engine selected by conf.Database.Engine.
// The postgres engine creates its database if missing and applies pending migrations.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (*Stores, error) {
	dbConf := conf.Database
	stores := &Stores{Engine: dbConf.Engine}

	switch dbConf.Engine {
	case EngineMemory:
		db, _ := inmemdb.Open()
		stores.Courses = inmemdb.NewCourseRepository(db)
		stores.Logs = inmemdb.NewLogRepository(db)
		stores.close = db.Close

	case EngineFile:
		db, err := jsonfiledb.Open(dbConf.File.Path, logger)
		if err != nil {
			return nil, errors.Wrap(err, "opening data file")
		}
		if dbConf.File.Watch {
			if err = db.Watch(); err != nil {
				_ = db.Close()
				return nil, errors.Wrap(err, "watching data file")
			}
		}
		stores.Courses = jsonfiledb.NewCourseRepository(db)
		stores.Logs = jsonfiledb.NewLogRepository(db)
		stores.close = db.Close

	case EngineMongo:
		db, err := mongorepos.Open(ctx, dbConf.Mongo)
		if err != nil {
			return nil, errors.Wrap(err, "opening mongo database")
		}
		stores.Courses = mongorepos.NewCourseRepository(db)
		stores.Logs = mongorepos.NewLogRepository(db)
		stores.close = func() error { return db.Client().Disconnect(context.Background()) }

	case EnginePostgres:
		if err := CreateIfNotExist(dbConf.Postgres); err != nil {
			return nil, err
		}
		db, err := OpenPostgres(dbConf.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres database")
		}
		if err = Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		stores.Courses = sqlxrepos.NewCourseRepository(db)
		stores.Logs = sqlxrepos.NewLogRepository(db)
		stores.close = db.Close

	case EngineRedis:
		rdb, err := redisrepos.Open(ctx, dbConf.Redis)
		if err != nil {
			return nil, errors.Wrap(err, "opening redis database")
		}
		stores.Courses = redisrepos.NewCourseRepository(rdb)
		stores.Logs = redisrepos.NewLogRepository(rdb)
		stores.close = rdb.Close

	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", dbConf.Engine)
	}
	return stores, nil
}
