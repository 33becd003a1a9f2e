package responses

import "time"

// APIResponse is the common envelope for all JSON API responses
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}
