package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orario/orario/internal/config"
	"github.com/orario/orario/internal/event_bus"
	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/availability"
	"github.com/orario/orario/pkg/booking"
	"github.com/orario/orario/pkg/business"
	"github.com/orario/orario/pkg/catalog"
	"github.com/orario/orario/pkg/crm"
	"github.com/orario/orario/pkg/dashboard"
	"github.com/orario/orario/pkg/schedule"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	BusinessRepo    business.Repo
	BusinessService business.Service
	BusinessHandler *business.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	CatalogRepo    catalog.Repository
	CatalogService *catalog.CatalogServiceImpl
	CatalogHandler *catalog.Handler

	BookingRepo    booking.Repository
	BookingService booking.BookingService
	BookingHandler *booking.Handler

	AvailabilityService availability.AvailabilityService
	AvailabilityHandler *availability.Handler

	ClientRepo   crm.ClientRepository
	TimelineRepo crm.TimelineRepository
	CrmService   crm.CrmService
	CrmHandler   *crm.Handler
	CrmProjector *crm.Projector

	DashboardCounters *dashboard.Counters
	DashboardHandler  *dashboard.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	bookingRepo := booking.NewRepository(db)
	deps.BookingRepo = bookingRepo

	deps.CatalogRepo = catalog.NewRepository(db)
	deps.CatalogService = catalog.NewCatalogService(deps.CatalogRepo, bookingRepo, deps.Clock)
	deps.CatalogHandler = catalog.NewHandler(deps.CatalogService)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.CatalogService)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.BusinessRepo = business.NewRepo(db)
	deps.BusinessService = business.NewService(deps.BusinessRepo, deps.ScheduleService)
	deps.BusinessHandler = business.NewHandler(deps.BusinessService)

	deps.BookingService = booking.NewBookingService(bookingRepo, deps.CatalogService, deps.EventBus)
	deps.BookingHandler = booking.NewHandler(deps.BookingService)

	deps.ClientRepo = crm.NewClientRepository(db)
	deps.TimelineRepo = crm.NewTimelineRepository(db)
	deps.CrmService = crm.NewCrmService(deps.ClientRepo, deps.TimelineRepo)
	deps.CrmHandler = crm.NewHandler(deps.CrmService)
	deps.CrmProjector = crm.NewProjector(deps.TimelineRepo, deps.EventBus)

	deps.AvailabilityService = availability.NewAvailabilityService(
		deps.CatalogService,
		deps.ScheduleService,
		bookingRepo,
		deps.ClientRepo,
		deps.EventBus,
		deps.Clock,
		cfg.Booking,
	)
	deps.AvailabilityHandler = availability.NewHandler(deps.AvailabilityService)

	deps.DashboardCounters = dashboard.NewCounters(deps.EventBus, deps.Clock)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardCounters)

	return deps
}
