package redisrepos

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core/studentlog"
)

type logRepository struct {
	rdb *redis.Client
}

var _ studentlog.Repository = (*logRepository)(nil)

func NewLogRepository(rdb *redis.Client) studentlog.Repository {
	return &logRepository{rdb: rdb}
}

func (repo logRepository) unmarshal(fields map[string]string) studentlog.Log {
	return studentlog.Log{
		ID:       fields["id"],
		CourseID: fields["courseId"],
		UvuID:    fields["uvuId"],
		Date:     fields["date"],
		Text:     fields["text"],
	}
}

func (repo *logRepository) CreateLog(ctx context.Context, lg studentlog.Log) (studentlog.Log, error) {
	added, err := repo.rdb.SAdd(ctx, logIDsKey, lg.ID).Result()
	if err != nil {
		return studentlog.Log{}, errors.Wrap(err, "reserving log id")
	}
	if added == 0 {
		return studentlog.Log{}, studentlog.ErrExists
	}

	_, err = repo.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, logInfoKey(lg.ID), map[string]interface{}{
			"id":       lg.ID,
			"courseId": lg.CourseID,
			"uvuId":    lg.UvuID,
			"date":     lg.Date,
			"text":     lg.Text,
		})
		pipe.RPush(ctx, logOrderKey, lg.ID)
		return nil
	})
	if err != nil {
		repo.rdb.SRem(context.Background(), logIDsKey, lg.ID)
		return studentlog.Log{}, errors.Wrap(err, "saving log")
	}
	return lg, nil
}

func (repo *logRepository) FilterLogs(ctx context.Context, filter studentlog.QueryFilter) ([]studentlog.Log, error) {
	ids, err := repo.rdb.LRange(ctx, logOrderKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "listing log ids")
	}
	hashes, err := loadHashes(ctx, repo.rdb, ids, logInfoKey)
	if err != nil {
		return nil, errors.Wrap(err, "loading logs")
	}

	logs := make([]studentlog.Log, 0)
	for _, fields := range hashes {
		if lg := repo.unmarshal(fields); filter.Match(lg) {
			logs = append(logs, lg)
		}
	}
	return logs, nil
}
