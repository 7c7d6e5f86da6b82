package schedule

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu        sync.RWMutex
	schedules map[int]WeeklySchedule
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{schedules: make(map[int]WeeklySchedule)}
}

func (r *RepositoryStub) Get(ctx context.Context, businessId int) (WeeklySchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schedules[businessId], nil
}

func (r *RepositoryStub) Replace(ctx context.Context, businessId int, s WeeklySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[businessId] = s
	return nil
}
