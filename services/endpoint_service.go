package services

import (
	"context"
	"fmt"

	"batch-gateway-server/models"
)

type EndpointService struct {
	db *DBService
}

func NewEndpointService(db *DBService) *EndpointService {
	return &EndpointService{db: db}
}

// CreateEndpoint registers a new invocation target
func (s *EndpointService) CreateEndpoint(ctx context.Context, req *models.CreateEndpointRequest) (*models.Endpoint, error) {
	switch req.Kind {
	case models.EndpointKindHTTP:
		if req.URL == "" {
			return nil, fmt.Errorf("url is required for http endpoints")
		}
	case models.EndpointKindQueue:
		if req.Queue == "" {
			return nil, fmt.Errorf("queue is required for queue endpoints")
		}
		if req.QueryURL != "" {
			return nil, fmt.Errorf("queue endpoints cannot declare a query_url")
		}
	default:
		return nil, fmt.Errorf("unknown endpoint kind: %s", req.Kind)
	}

	return s.db.CreateEndpoint(ctx, &models.Endpoint{
		Name:        req.Name,
		Kind:        req.Kind,
		URL:         req.URL,
		QueryURL:    req.QueryURL,
		Queue:       req.Queue,
		Description: req.Description,
	})
}

// GetEndpoint retrieves an endpoint by ID
func (s *EndpointService) GetEndpoint(ctx context.Context, id int64) (*models.Endpoint, error) {
	ep, err := s.db.GetEndpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if ep == nil {
		return nil, fmt.Errorf("endpoint not found: %d", id)
	}
	return ep, nil
}

// ListEndpoints returns all registered endpoints
func (s *EndpointService) ListEndpoints(ctx context.Context) ([]models.EndpointListItem, error) {
	return s.db.ListEndpoints(ctx)
}

// DeleteEndpoint removes an endpoint registration
func (s *EndpointService) DeleteEndpoint(ctx context.Context, id int64) error {
	ep, err := s.db.DeleteEndpoint(ctx, id)
	if err != nil {
		return err
	}
	if ep == nil {
		return fmt.Errorf("endpoint not found: %d", id)
	}
	return nil
}
