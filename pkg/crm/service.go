package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orario/orario/pkg/business"
)

type CrmService interface {
	CreateClient(ctx context.Context, client Client) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, clientId uuid.UUID) (Client, error)
	GetTimeline(ctx context.Context, clientId uuid.UUID) ([]TimelineEntry, error)
}

type CrmServiceImpl struct {
	clients  ClientRepository
	timeline TimelineRepository
}

func NewCrmService(clients ClientRepository, timeline TimelineRepository) *CrmServiceImpl {
	return &CrmServiceImpl{clients: clients, timeline: timeline}
}

func (s *CrmServiceImpl) CreateClient(ctx context.Context, client Client) (Client, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current business: %w", err)
	}
	client.BusinessID = businessId

	id, err := s.clients.Store(ctx, client)
	if err != nil {
		return Client{}, err
	}
	client.ID = id
	return client, nil
}

func (s *CrmServiceImpl) ListClients(ctx context.Context) ([]Client, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.clients.List(ctx, businessId)
}

func (s *CrmServiceImpl) GetClient(ctx context.Context, clientId uuid.UUID) (Client, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.clients.Get(ctx, businessId, clientId)
}

func (s *CrmServiceImpl) GetTimeline(ctx context.Context, clientId uuid.UUID) ([]TimelineEntry, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.timeline.ListForClient(ctx, businessId, clientId)
}
