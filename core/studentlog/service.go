package studentlog

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
)

var (
	// errors
	ErrExists = errors.New("a log with this id already exists")
)

type (
	Repository interface {
		CreateLog(ctx context.Context, lg Log) (Log, error)
		// FilterLogs applies AND operation on available QueryFilter fields, in storage order.
		FilterLogs(ctx context.Context, filter QueryFilter) ([]Log, error)
	}

	Service interface {
		Create(ctx context.Context, nl NewLog) (Log, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Log, error)
	}

	service struct {
		repo       Repository
		validate   *validator.Validate
		dateLayout string
		location   *time.Location
		now        func() time.Time
		newID      func() string
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate, conf *core.Config) Service {
	layout := conf.Logs.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	return &service{
		repo:       repo,
		validate:   validate,
		dateLayout: layout,
		location:   conf.Logs.Location(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (svc *service) Create(ctx context.Context, nl NewLog) (Log, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Log{}, err
	}

	lg := Log{
		ID:       svc.newID(),
		CourseID: nl.CourseID,
		UvuID:    nl.UvuID,
		Date:     svc.now().In(svc.location).Format(svc.dateLayout),
		Text:     nl.Text,
	}
	lg, err := svc.repo.CreateLog(ctx, lg)
	if err != nil {
		return Log{}, errors.Wrap(err, "creating log")
	}
	return lg, nil
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Log, error) {
	logs, err := svc.repo.FilterLogs(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering logs")
	}
	if logs == nil {
		logs = []Log{}
	}
	return logs, nil
}
