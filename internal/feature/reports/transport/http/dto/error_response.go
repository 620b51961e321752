// Package dto defines data transfer objects for the reports HTTP API.
package dto

// Error kinds carried by ErrorResponse.
const (
	KindRetrievalFailure = "retrieval_failure"
	KindUnknownView      = "unknown_view"
	KindInternal         = "internal"
)

// ErrorResponse is the body of every failed report request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
