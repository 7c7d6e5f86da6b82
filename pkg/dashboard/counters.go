package dashboard

import (
	"sync"

	"github.com/orario/orario/internal/event_bus"
	"github.com/orario/orario/internal/utils"
)

// Summary holds a business's booking counters for one calendar day (UTC).
type Summary struct {
	Date      string `json:"date"`
	Booked    int    `json:"booked"`
	Cancelled int    `json:"cancelled"`
}

// Tick is a single live update pushed to stream subscribers.
type Tick struct {
	Event     string `json:"event"`
	Booked    int    `json:"booked"`
	Cancelled int    `json:"cancelled"`
}

type streamSub struct {
	businessId int
	ch         chan Tick
}

// Counters is a bus consumer that keeps per-business booked/cancelled counts
// for the current day and fans ticks out to SSE subscribers. It is purely
// derived state: counters reset at day rollover and on restart.
type Counters struct {
	mu           sync.Mutex
	clock        utils.Clock
	day          string
	byBusiness   map[int]*Summary
	streams      map[uint64]streamSub
	nextStreamId uint64
	unsubscribes []func()
}

func NewCounters(bus *event_bus.EventBus, clock utils.Clock) *Counters {
	c := &Counters{
		clock:      clock,
		byBusiness: make(map[int]*Summary),
		streams:    make(map[uint64]streamSub),
	}
	c.unsubscribes = append(c.unsubscribes,
		event_bus.SubscribeTyped[event_bus.AppointmentEvent](bus, event_bus.EventAppointmentBooked, c.handleBooked),
		event_bus.SubscribeTyped[event_bus.AppointmentEvent](bus, event_bus.EventAppointmentCancelled, c.handleCancelled),
	)
	return c
}

func (c *Counters) handleBooked(e event_bus.EventT[event_bus.AppointmentEvent]) error {
	c.tick(e.Data.BusinessID, string(event_bus.EventAppointmentBooked), func(s *Summary) { s.Booked++ })
	return nil
}

func (c *Counters) handleCancelled(e event_bus.EventT[event_bus.AppointmentEvent]) error {
	c.tick(e.Data.BusinessID, string(event_bus.EventAppointmentCancelled), func(s *Summary) { s.Cancelled++ })
	return nil
}

func (c *Counters) tick(businessId int, event string, apply func(*Summary)) {
	c.mu.Lock()
	summary := c.rollover(businessId)
	apply(summary)
	update := Tick{Event: event, Booked: summary.Booked, Cancelled: summary.Cancelled}

	var targets []chan Tick
	for _, sub := range c.streams {
		if sub.businessId == businessId {
			targets = append(targets, sub.ch)
		}
	}
	c.mu.Unlock()

	for _, ch := range targets {
		// Slow subscribers lose ticks rather than blocking the bus.
		select {
		case ch <- update:
		default:
		}
	}
}

// rollover returns the current-day summary for businessId, discarding all
// counters when the UTC day has changed. Callers must hold c.mu.
func (c *Counters) rollover(businessId int) *Summary {
	today := c.clock.Now().UTC().Format("2006-01-02")
	if c.day != today {
		c.day = today
		c.byBusiness = make(map[int]*Summary)
	}
	summary, ok := c.byBusiness[businessId]
	if !ok {
		summary = &Summary{Date: today}
		c.byBusiness[businessId] = summary
	}
	return summary
}

// Summary returns a copy of today's counters for businessId.
func (c *Counters) Summary(businessId int) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.rollover(businessId)
}

// SubscribeStream registers a live tick channel for businessId. The returned
// function removes the subscription and must be called when the consumer is
// done.
func (c *Counters) SubscribeStream(businessId int) (<-chan Tick, func()) {
	ch := make(chan Tick, 16)

	c.mu.Lock()
	c.nextStreamId++
	id := c.nextStreamId
	c.streams[id] = streamSub{businessId: businessId, ch: ch}
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		delete(c.streams, id)
		c.mu.Unlock()
	}
}

// Close removes the bus subscriptions.
func (c *Counters) Close() {
	for _, unsubscribe := range c.unsubscribes {
		unsubscribe()
	}
}
