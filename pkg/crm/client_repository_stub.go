package crm

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ClientRepositoryStub is an in-memory ClientRepository for tests.
type ClientRepositoryStub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]Client
}

func NewClientRepositoryStub() *ClientRepositoryStub {
	return &ClientRepositoryStub{clients: make(map[uuid.UUID]Client)}
}

func (s *ClientRepositoryStub) Store(_ context.Context, client Client) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	s.clients[client.ID] = client
	return client.ID, nil
}

func (s *ClientRepositoryStub) Get(_ context.Context, businessId int, clientId uuid.UUID) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[clientId]
	if !ok || c.BusinessID != businessId {
		return Client{}, ErrClientNotFound
	}
	return c, nil
}

func (s *ClientRepositoryStub) List(_ context.Context, businessId int) ([]Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var clients []Client
	for _, c := range s.clients {
		if c.BusinessID == businessId {
			clients = append(clients, c)
		}
	}
	return clients, nil
}

func (s *ClientRepositoryStub) Exists(_ context.Context, businessId int, clientId uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[clientId]
	return ok && c.BusinessID == businessId, nil
}
