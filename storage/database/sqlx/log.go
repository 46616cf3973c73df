package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/studentlog"
)

type logRow struct {
	ID       string `db:"id"`
	CourseID string `db:"course_id"`
	UvuID    string `db:"uvu_id"`
	Date     string `db:"date"`
	Text     string `db:"text"`
}

type logRepository struct {
	exec core.DBExecutor
}

var _ studentlog.Repository = (*logRepository)(nil)

func NewLogRepository(exec core.DBExecutor) studentlog.Repository {
	return &logRepository{exec: exec}
}

func (repo *logRepository) CreateLog(ctx context.Context, lg studentlog.Log) (studentlog.Log, error) {
	q := `INSERT INTO log (id, course_id, uvu_id, date, text) VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.exec.ExecContext(ctx, q, lg.ID, lg.CourseID, lg.UvuID, lg.Date, lg.Text); err != nil {
		if isUniqueViolation(err) {
			return studentlog.Log{}, studentlog.ErrExists
		}
		return studentlog.Log{}, errors.Wrap(err, "inserting log")
	}
	return lg, nil
}

func (repo *logRepository) FilterLogs(ctx context.Context, filter studentlog.QueryFilter) ([]studentlog.Log, error) {
	// empty filter fields match everything
	q := `
		SELECT id, course_id, uvu_id, date, text FROM log
		WHERE ($1::text = '' OR course_id = $1) AND ($2::text = '' OR uvu_id = $2)
		ORDER BY seq`

	var rows []logRow
	if err := repo.exec.SelectContext(ctx, &rows, q, filter.CourseID, filter.UvuID); err != nil {
		return nil, errors.Wrap(err, "selecting logs")
	}

	logs := make([]studentlog.Log, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, studentlog.Log(row))
	}
	return logs, nil
}
