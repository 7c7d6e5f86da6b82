package crm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type timelineKey struct {
	appointmentId uuid.UUID
	status        string
}

// TimelineRepositoryStub is an in-memory TimelineRepository for tests. It
// enforces the same (appointment, status) idempotency as the database table.
type TimelineRepositoryStub struct {
	mu      sync.Mutex
	nextId  int64
	entries map[timelineKey]TimelineEntry
}

func NewTimelineRepositoryStub() *TimelineRepositoryStub {
	return &TimelineRepositoryStub{entries: make(map[timelineKey]TimelineEntry)}
}

func (s *TimelineRepositoryStub) Append(_ context.Context, entry TimelineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := timelineKey{appointmentId: entry.AppointmentID, status: entry.Status}
	if _, exists := s.entries[key]; exists {
		return nil
	}
	s.nextId++
	entry.ID = s.nextId
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries[key] = entry
	return nil
}

func (s *TimelineRepositoryStub) ListForClient(_ context.Context, businessId int, clientId uuid.UUID) ([]TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []TimelineEntry
	for _, e := range s.entries {
		if e.BusinessID == businessId && e.ClientID == clientId {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return entries, nil
}
