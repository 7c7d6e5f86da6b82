package catalog

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	services map[int]Service
	nextId   int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{services: make(map[int]Service), nextId: 1}
}

func (r *RepositoryStub) Store(ctx context.Context, businessId int, service Service) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	service.ID = r.nextId
	service.BusinessID = businessId
	r.services[service.ID] = service
	r.nextId++
	return service.ID, nil
}

func (r *RepositoryStub) Get(ctx context.Context, businessId int, serviceId int) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[serviceId]
	if !ok || s.BusinessID != businessId {
		return Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (r *RepositoryStub) List(ctx context.Context, businessId int, includeArchived bool) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Service
	for _, s := range r.services {
		if s.BusinessID != businessId {
			continue
		}
		if s.Archived && !includeArchived {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *RepositoryStub) Update(ctx context.Context, businessId int, service Service) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.services[service.ID]
	if !ok || existing.BusinessID != businessId || existing.Archived {
		return false, nil
	}
	service.BusinessID = businessId
	r.services[service.ID] = service
	return true, nil
}

func (r *RepositoryStub) Archive(ctx context.Context, businessId int, serviceId int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceId]
	if !ok || s.BusinessID != businessId {
		return false, nil
	}
	s.Archived = true
	r.services[serviceId] = s
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, businessId int, serviceId int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceId]
	if !ok || s.BusinessID != businessId {
		return false, nil
	}
	delete(r.services, serviceId)
	return true, nil
}
