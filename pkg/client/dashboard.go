package client

import (
	"context"
	"net/http"
)

// DashboardService reads the owner dashboard
type DashboardService struct {
	client *Client
}

// Overview returns occupancy, income and open work
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/dashboard/overview", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
