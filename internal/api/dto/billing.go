package dto

// CheckoutRequest selects the plan to subscribe to
type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=basic pro enterprise"`
}

// SessionResponse carries a hosted billing page URL
type SessionResponse struct {
	URL string `json:"url"`
}

// WebhookAck is the provider-facing webhook response
type WebhookAck struct {
	Received bool `json:"received"`
}

// WebhookError is the provider-facing webhook failure body
type WebhookError struct {
	Error string `json:"error"`
}
