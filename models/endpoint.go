package models

import (
	"time"
)

// Endpoint kinds
const (
	EndpointKindHTTP  = "http"
	EndpointKindQueue = "queue"
)

// Endpoint represents an addressable invocation target (endpoints table).
// Name is the unique target identifier calls address. For http endpoints URL
// receives mutating dispatches and QueryURL, when set, receives read-only
// dispatches. For queue endpoints Queue names the redis list workers consume.
type Endpoint struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	URL         string    `json:"url,omitempty"`
	QueryURL    string    `json:"query_url,omitempty"`
	Queue       string    `json:"queue,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EndpointListItem represents an endpoint in list view
type EndpointListItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEndpointRequest represents the request body for registering an endpoint
type CreateEndpointRequest struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	URL         string `json:"url"`
	QueryURL    string `json:"query_url"`
	Queue       string `json:"queue"`
	Description string `json:"description"`
}
