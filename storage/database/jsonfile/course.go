package jsonfiledb

import (
	"context"
	"fmt"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.courseIdx[crs.ID]; ok {
		return course.Course{}, course.ErrExists
	}

	n := len(repo.db.data.Courses)
	repo.db.data.Courses = append(repo.db.data.Courses, crs)
	repo.db.courseIdx[crs.ID] = n

	if err := repo.db.persist(); err != nil {
		repo.db.data.Courses = repo.db.data.Courses[:n]
		delete(repo.db.courseIdx, crs.ID)
		return course.Course{}, core.NewShutdownError(fmt.Sprintf("saving course: %v", err))
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]course.Course, len(repo.db.data.Courses))
	copy(courses, repo.db.data.Courses)
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if i, ok := repo.db.courseIdx[id]; ok {
		return repo.db.data.Courses[i], nil
	}
	return course.Course{}, course.ErrNotFound
}
