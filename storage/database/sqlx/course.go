package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
)

// uniqueViolation is the postgres error code raised on a duplicate primary key.
const uniqueViolation = "23505"

type courseRow struct {
	ID      string `db:"id"`
	Display string `db:"display"`
}

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) course.Repository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) unmarshal(row courseRow) course.Course {
	return course.Course{ID: row.ID, Display: row.Display}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	q := `INSERT INTO course (id, display) VALUES ($1, $2)`
	if _, err := repo.exec.ExecContext(ctx, q, crs.ID, crs.Display); err != nil {
		if isUniqueViolation(err) {
			return course.Course{}, course.ErrExists
		}
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.exec.SelectContext(ctx, &rows, `SELECT id, display FROM course ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}

	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.unmarshal(row))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var row courseRow
	if err := repo.exec.GetContext(ctx, &row, `SELECT id, display FROM course WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "selecting course")
	}
	return repo.unmarshal(row), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
