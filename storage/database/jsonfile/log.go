package jsonfiledb

import (
	"context"
	"fmt"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/studentlog"
)

type logRepository struct {
	db *DB
}

var _ studentlog.Repository = (*logRepository)(nil)

func NewLogRepository(db *DB) studentlog.Repository {
	return &logRepository{db: db}
}

func (repo *logRepository) CreateLog(_ context.Context, lg studentlog.Log) (studentlog.Log, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.logIdx[lg.ID]; ok {
		return studentlog.Log{}, studentlog.ErrExists
	}

	n := len(repo.db.data.Logs)
	repo.db.data.Logs = append(repo.db.data.Logs, lg)
	repo.db.logIdx[lg.ID] = n

	if err := repo.db.persist(); err != nil {
		repo.db.data.Logs = repo.db.data.Logs[:n]
		delete(repo.db.logIdx, lg.ID)
		return studentlog.Log{}, core.NewShutdownError(fmt.Sprintf("saving log: %v", err))
	}
	return lg, nil
}

func (repo *logRepository) FilterLogs(_ context.Context, filter studentlog.QueryFilter) ([]studentlog.Log, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	logs := make([]studentlog.Log, 0)
	for _, lg := range repo.db.data.Logs {
		if filter.Match(lg) {
			logs = append(logs, lg)
		}
	}
	return logs, nil
}
