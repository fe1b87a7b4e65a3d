package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	// an object for plan limits, a list of field errors for validation
	Details interface{} `json:"details,omitempty"`
}

// FieldError is one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true if the error is a 401 unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsForbidden returns true if the error is a 403 forbidden error
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == 403
}

// IsPlanLimit reports whether a create was refused by the plan limit
func (e *APIError) IsPlanLimit() bool {
	return e.Code == "PLAN_LIMIT_REACHED"
}

// IsValidationError reports whether the request body was rejected
func (e *APIError) IsValidationError() bool {
	return e.Code == "VALIDATION_ERROR"
}

// SuggestedPlan returns the upgrade the server proposed, if any
func (e *APIError) SuggestedPlan() string {
	details, ok := e.Details.(map[string]interface{})
	if !ok {
		return ""
	}
	plan, _ := details["suggested_plan"].(string)
	return plan
}

// FieldErrors returns the per-field failures of a validation error
func (e *APIError) FieldErrors() []FieldError {
	items, ok := e.Details.([]interface{})
	if !ok {
		return nil
	}
	var out []FieldError
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fe := FieldError{}
		fe.Field, _ = m["field"].(string)
		fe.Tag, _ = m["tag"].(string)
		fe.Message, _ = m["message"].(string)
		out = append(out, fe)
	}
	return out
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

func parseAPIError(status int, body []byte) error {
	var wrapped struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil || len(wrapped.Error) == 0 {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}

	apiErr := &APIError{StatusCode: status}
	// the webhook endpoint answers with a bare {"error": "..."} string
	var msg string
	if err := json.Unmarshal(wrapped.Error, &msg); err == nil {
		apiErr.Message = msg
		return apiErr
	}
	var detail struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(wrapped.Error, &detail); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}
	apiErr.Code = detail.Code
	apiErr.Message = detail.Message
	// details that fail to decode are dropped, never the code and message
	if len(detail.Details) > 0 {
		_ = json.Unmarshal(detail.Details, &apiErr.Details)
	}
	return apiErr
}
