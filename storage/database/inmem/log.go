package inmemdb

import (
	"context"

	"github.com/trezcool/studentlogs/core/studentlog"
)

type logRepository struct {
	db *logTable
}

var _ studentlog.Repository = (*logRepository)(nil)

func NewLogRepository(db *DB) studentlog.Repository {
	return &logRepository{db: db.log}
}

func (repo *logRepository) CreateLog(_ context.Context, lg studentlog.Log) (studentlog.Log, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.index[lg.ID]; ok {
		return studentlog.Log{}, studentlog.ErrExists
	}
	repo.db.index[lg.ID] = len(repo.db.rows)
	repo.db.rows = append(repo.db.rows, lg)
	return lg, nil
}

func (repo *logRepository) FilterLogs(_ context.Context, filter studentlog.QueryFilter) ([]studentlog.Log, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	logs := make([]studentlog.Log, 0)
	for _, lg := range repo.db.rows {
		if filter.Match(lg) {
			logs = append(logs, lg)
		}
	}
	return logs, nil
}
