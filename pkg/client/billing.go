package client

import (
	"context"
	"net/http"
)

// BillingService handles plans and hosted billing sessions
type BillingService struct {
	client *Client
}

type sessionResponse struct {
	URL string `json:"url"`
}

// Plans lists the purchasable plans, marking the current one
func (s *BillingService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/billing/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Limits returns the owner's usage against the plan caps
func (s *BillingService) Limits(ctx context.Context) (*Limits, error) {
	var limits Limits
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/billing/limits", nil, &limits); err != nil {
		return nil, err
	}
	return &limits, nil
}

// Checkout opens a checkout session for plan and returns its URL
func (s *BillingService) Checkout(ctx context.Context, plan string) (string, error) {
	var resp sessionResponse
	body := map[string]string{"plan": plan}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/billing/checkout", body, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Portal opens the hosted billing portal and returns its URL
func (s *BillingService) Portal(ctx context.Context) (string, error) {
	var resp sessionResponse
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/billing/portal", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
