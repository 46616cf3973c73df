package redisrepos

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
)

const (
	courseIDsKey     = "courses:ids"   // Set: every course ID (uniqueness)
	courseOrderKey   = "courses:order" // List: course IDs in insertion order
	courseInfoPrefix = "course:"       // Hash prefix: course:{id} -> course fields

	logIDsKey     = "logs:ids"
	logOrderKey   = "logs:order"
	logInfoPrefix = "log:"
)

func courseInfoKey(id string) string { return courseInfoPrefix + id }
func logInfoKey(id string) string    { return logInfoPrefix + id }

// Open connects to redis and checks the connection within conf.Timeout (when set).
func Open(ctx context.Context, conf core.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	}
	if conf.Timeout > 0 {
		opts.DialTimeout = conf.Timeout
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return rdb, nil
}

// loadHashes fetches the hash of every id in a single round trip, keeping the order of ids.
// Missing hashes are skipped.
func loadHashes(ctx context.Context, rdb *redis.Client, ids []string, keyFn func(string) string) ([]map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cmds := make([]*redis.StringStringMapCmd, len(ids))
	_, err := rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, keyFn(id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	hashes := make([]map[string]string, 0, len(cmds))
	for _, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		hashes = append(hashes, fields)
	}
	return hashes, nil
}
