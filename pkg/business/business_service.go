package business

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ScheduleInitializer seeds the default weekly working hours for a newly
// created business. Implemented by the schedule package.
type ScheduleInitializer interface {
	InitDefaults(ctx context.Context, businessId int) error
}

type Service interface {
	Create(ctx context.Context, b Business) (Business, error)
	GetByUid(ctx context.Context, uid string) (Business, error)
	GetCurrent(ctx context.Context) (Business, error)
}

type ServiceImpl struct {
	repo     Repo
	schedule ScheduleInitializer
}

func NewService(repo Repo, schedule ScheduleInitializer) *ServiceImpl {
	return &ServiceImpl{repo: repo, schedule: schedule}
}

func (s *ServiceImpl) Create(ctx context.Context, b Business) (Business, error) {
	if b.Uid == "" {
		b.Uid = uuid.NewString()
	}
	if b.Timezone == "" {
		b.Timezone = "UTC"
	}

	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return Business{}, fmt.Errorf("failed to create business: %w", err)
	}
	b.ID = id

	if err := s.schedule.InitDefaults(ctx, id); err != nil {
		// The business exists; an owner can still set hours manually.
		log.Warnf("failed to seed default working hours for business %d: %v", id, err)
	}

	return b, nil
}

func (s *ServiceImpl) GetByUid(ctx context.Context, uid string) (Business, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) GetCurrent(ctx context.Context) (Business, error) {
	return Current(ctx)
}
