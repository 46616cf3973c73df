package inmemdb

import (
	"context"

	"github.com/trezcool/studentlogs/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.index[crs.ID]; ok {
		return course.Course{}, course.ErrExists
	}
	repo.db.index[crs.ID] = len(repo.db.rows)
	repo.db.rows = append(repo.db.rows, crs)
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, len(repo.db.rows))
	copy(courses, repo.db.rows)
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i, ok := repo.db.index[id]; ok {
		return repo.db.rows[i], nil
	}
	return course.Course{}, course.ErrNotFound
}
