// Package models holds the wire-level DTOs exchanged over HTTP and MQTT.
// Nothing here is persisted: every type is a plain in-memory value.
package models

import "fmt"

// KeyExchange is the body of both key-exchange HTTP endpoints.
type KeyExchange struct {
	PublicKey string `json:"public_key" binding:"required"`
	Domain    string `json:"domain" binding:"required"`
}

// WorkerEndpoint is the connectivity data a worker publishes for a domain:
// where clients should point their WireGuard peer config.
type WorkerEndpoint struct {
	ExternalAddress string `json:"ExternalAddress"`
	Port            int    `json:"Port"`
	LinkAddress     string `json:"LinkAddress"`
	PublicKey       string `json:"PublicKey"`
}

// Validate checks the fields parsed off the wire are usable: LinkAddress is
// read straight from the message and never referenced before assignment.
func (w WorkerEndpoint) Validate() error {
	if w.ExternalAddress == "" {
		return fmt.Errorf("missing ExternalAddress")
	}
	if w.Port < 1 || w.Port > 65535 {
		return fmt.Errorf("port %d out of range", w.Port)
	}
	if w.LinkAddress == "" {
		return fmt.Errorf("missing LinkAddress")
	}
	return nil
}

// EndpointResponse is the shape returned to clients by the v2 key-exchange
// endpoint.
type EndpointResponse struct {
	Address    string   `json:"Address"`
	Port       string   `json:"Port"`
	AllowedIPs []string `json:"AllowedIPs"`
	PublicKey  string   `json:"PublicKey"`
}

// ErrorResponse is the envelope every failed HTTP call returns.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the human-readable message of an ErrorResponse.
type ErrorBody struct {
	Message string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse from any error.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: err.Error()}}
}
