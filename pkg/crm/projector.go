package crm

import (
	"github.com/orario/orario/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Projector denormalizes ledger mutations into per-client timeline entries.
// It is a downstream consumer: it observes the bus, never the ledger tables,
// and its failures stay on this side of the bus.
type Projector struct {
	timeline     TimelineRepository
	unsubscribes []func()
}

func NewProjector(timeline TimelineRepository, bus *event_bus.EventBus) *Projector {
	p := &Projector{timeline: timeline}

	for _, eventType := range []event_bus.EventType{
		event_bus.EventAppointmentBooked,
		event_bus.EventAppointmentConfirmed,
		event_bus.EventAppointmentCancelled,
	} {
		unsubscribe := event_bus.SubscribeTyped[event_bus.AppointmentEvent](bus, eventType, p.handle)
		p.unsubscribes = append(p.unsubscribes, unsubscribe)
	}
	return p
}

func (p *Projector) handle(e event_bus.EventT[event_bus.AppointmentEvent]) error {
	entry := TimelineEntry{
		BusinessID:    e.Data.BusinessID,
		ClientID:      e.Data.ClientID,
		AppointmentID: e.Data.AppointmentID,
		ServiceName:   e.Data.ServiceName,
		Date:          e.Data.Date,
		StartMinute:   e.Data.StartMinute,
		Status:        e.Data.Status,
	}
	if err := p.timeline.Append(e.Context(), entry); err != nil {
		log.Errorf("timeline projection failed for appointment %s: %v", e.Data.AppointmentID, err)
		return err
	}
	return nil
}

// Close removes the projector's bus subscriptions.
func (p *Projector) Close() {
	for _, unsubscribe := range p.unsubscribes {
		unsubscribe()
	}
}
