package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/business"
	log "github.com/sirupsen/logrus"
)

// AppointmentCounter reports how many future non-cancelled appointments
// reference a service. Implemented by the booking package.
type AppointmentCounter interface {
	CountFutureForService(ctx context.Context, businessId int, serviceId int, from time.Time) (int, error)
}

type CatalogService interface {
	Add(ctx context.Context, service Service) (Service, error)
	Update(ctx context.Context, service Service) (bool, error)
	// Delete removes a service. When future non-cancelled appointments still
	// reference it, the call fails with ErrServiceInUse unless detach is set,
	// in which case the service is archived: booked appointments keep their
	// captured duration while the service leaves future bookability.
	Delete(ctx context.Context, serviceId int, detach bool) error
	List(ctx context.Context) ([]Service, error)
	Get(ctx context.Context, serviceId int) (Service, error)
}

type CatalogServiceImpl struct {
	repo   Repository
	ledger AppointmentCounter
	clock  utils.Clock
}

func NewCatalogService(repo Repository, ledger AppointmentCounter, clock utils.Clock) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo, ledger: ledger, clock: clock}
}

func (s *CatalogServiceImpl) Add(ctx context.Context, service Service) (Service, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return Service{}, fmt.Errorf("failed to get current business: %w", err)
	}
	if service.DurationMinutes <= 0 {
		return Service{}, fmt.Errorf("service duration must be positive, got %d", service.DurationMinutes)
	}
	if service.Mode == "" {
		service.Mode = ModeAtBusiness
	}

	id, err := s.repo.Store(ctx, businessId, service)
	if err != nil {
		return Service{}, err
	}
	service.ID = id
	service.BusinessID = businessId
	return service, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, service Service) (bool, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current business: %w", err)
	}
	if service.DurationMinutes <= 0 {
		return false, fmt.Errorf("service duration must be positive, got %d", service.DurationMinutes)
	}

	updated, err := s.repo.Update(ctx, businessId, service)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("service %d not updated, probably because it does not exist or business %d is not the owner", service.ID, businessId)
		return false, ErrServiceNotFound
	}
	return true, nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, serviceId int, detach bool) error {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current business: %w", err)
	}

	today := s.clock.Now().Truncate(24 * time.Hour)
	futureCount, err := s.ledger.CountFutureForService(ctx, businessId, serviceId, today)
	if err != nil {
		return fmt.Errorf("failed to count future appointments: %w", err)
	}

	if futureCount > 0 {
		if !detach {
			return fmt.Errorf("%w: %d future appointment(s)", ErrServiceInUse, futureCount)
		}
		archived, err := s.repo.Archive(ctx, businessId, serviceId)
		if err != nil {
			return err
		}
		if !archived {
			return ErrServiceNotFound
		}
		log.Infof("service %d archived with %d future appointment(s) detached", serviceId, futureCount)
		return nil
	}

	deleted, err := s.repo.Delete(ctx, businessId, serviceId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context) ([]Service, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.repo.List(ctx, businessId, false)
}

func (s *CatalogServiceImpl) Get(ctx context.Context, serviceId int) (Service, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return Service{}, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.repo.Get(ctx, businessId, serviceId)
}

// ShortestActiveDuration satisfies the schedule package's soft-validation
// dependency.
func (s *CatalogServiceImpl) ShortestActiveDuration(ctx context.Context) (int, bool, error) {
	services, err := s.List(ctx)
	if err != nil {
		return 0, false, err
	}
	if len(services) == 0 {
		return 0, false, nil
	}
	min := services[0].DurationMinutes
	for _, svc := range services[1:] {
		if svc.DurationMinutes < min {
			min = svc.DurationMinutes
		}
	}
	return min, true, nil
}

// ServiceName resolves a service's display name, archived services included,
// so ledger mutations can always be denormalized for the CRM timeline.
func (s *CatalogServiceImpl) ServiceName(ctx context.Context, serviceId int) (string, error) {
	svc, err := s.Get(ctx, serviceId)
	if err != nil {
		return "", err
	}
	return svc.Name, nil
}
