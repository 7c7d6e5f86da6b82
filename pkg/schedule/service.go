package schedule

import (
	"context"
	"fmt"

	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/business"
	log "github.com/sirupsen/logrus"
)

// MinDurationFinder reports the shortest duration among the business's active
// services. Implemented by the catalog package. ok is false when the catalog
// is empty.
type MinDurationFinder interface {
	ShortestActiveDuration(ctx context.Context) (minutes int, ok bool, err error)
}

type Service interface {
	Get(ctx context.Context) (WeeklySchedule, error)
	// Set replaces the weekly schedule. It returns soft-validation warnings
	// alongside success; only structurally invalid schedules are rejected.
	Set(ctx context.Context, s WeeklySchedule) ([]string, error)
	InitDefaults(ctx context.Context, businessId int) error
}

type ServiceImpl struct {
	repo    Repository
	catalog MinDurationFinder
}

func NewService(repo Repository, catalog MinDurationFinder) *ServiceImpl {
	return &ServiceImpl{repo: repo, catalog: catalog}
}

func (s *ServiceImpl) Get(ctx context.Context) (WeeklySchedule, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return WeeklySchedule{}, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.repo.Get(ctx, businessId)
}

func (s *ServiceImpl) Set(ctx context.Context, schedule WeeklySchedule) ([]string, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current business: %w", err)
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	// Windows shorter than the shortest bookable service are suspicious but
	// not fatal: services change independently of working hours.
	warnings := s.shortWindowWarnings(ctx, schedule)

	if err := s.repo.Replace(ctx, businessId, schedule); err != nil {
		return nil, fmt.Errorf("failed to store schedule: %w", err)
	}
	return warnings, nil
}

func (s *ServiceImpl) InitDefaults(ctx context.Context, businessId int) error {
	return s.repo.Replace(ctx, businessId, Default())
}

func (s *ServiceImpl) shortWindowWarnings(ctx context.Context, schedule WeeklySchedule) []string {
	minDuration, ok, err := s.catalog.ShortestActiveDuration(ctx)
	if err != nil {
		log.Warnf("could not determine shortest service duration: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var warnings []string
	for weekday, day := range schedule {
		if !day.Open {
			continue
		}
		if day.CloseMinute-day.OpenMinute < minDuration {
			warning := fmt.Sprintf("window %s-%s on weekday %d is shorter than the shortest service (%d min); no slots will be offered",
				utils.MinutesToHHMM(day.OpenMinute), utils.MinutesToHHMM(day.CloseMinute), weekday, minDuration)
			log.Warn(warning)
			warnings = append(warnings, warning)
		}
	}
	return warnings
}
