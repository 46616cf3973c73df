package redisrepos

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core/course"
)

type courseRepository struct {
	rdb *redis.Client
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(rdb *redis.Client) course.Repository {
	return &courseRepository{rdb: rdb}
}

func (repo courseRepository) unmarshal(fields map[string]string) course.Course {
	return course.Course{ID: fields["id"], Display: fields["display"]}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	added, err := repo.rdb.SAdd(ctx, courseIDsKey, crs.ID).Result()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "reserving course id")
	}
	if added == 0 {
		return course.Course{}, course.ErrExists
	}

	_, err = repo.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, courseInfoKey(crs.ID), map[string]interface{}{
			"id":      crs.ID,
			"display": crs.Display,
		})
		pipe.RPush(ctx, courseOrderKey, crs.ID)
		return nil
	})
	if err != nil {
		// release the id so the course can be created again
		repo.rdb.SRem(context.Background(), courseIDsKey, crs.ID)
		return course.Course{}, errors.Wrap(err, "saving course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	ids, err := repo.rdb.LRange(ctx, courseOrderKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "listing course ids")
	}
	hashes, err := loadHashes(ctx, repo.rdb, ids, courseInfoKey)
	if err != nil {
		return nil, errors.Wrap(err, "loading courses")
	}

	courses := make([]course.Course, 0, len(hashes))
	for _, fields := range hashes {
		courses = append(courses, repo.unmarshal(fields))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	fields, err := repo.rdb.HGetAll(ctx, courseInfoKey(id)).Result()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "loading course")
	}
	if len(fields) == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.unmarshal(fields), nil
}
