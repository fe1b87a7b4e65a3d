package client

import (
	"context"
	"net/http"
	"net/url"
)

// PropertyService handles property operations
type PropertyService struct {
	client *Client
}

// List returns the owner's properties
func (s *PropertyService) List(ctx context.Context) ([]Property, error) {
	var props []Property
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/properties", nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Get returns one property
func (s *PropertyService) Get(ctx context.Context, id string) (*Property, error) {
	var p Property
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/properties/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a property. A plan limit refusal is an *APIError with
// IsPlanLimit set.
func (s *PropertyService) Create(ctx context.Context, in PropertyInput) (*Property, error) {
	var p Property
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/properties", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a property with no rooms
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/properties/"+url.PathEscape(id), nil, nil)
}
