// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"
)

// Body is the JSON shape of every error response.
type Body struct {
	Status  string   `json:"status"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Write sends {"status":"error","error":msg} with the given HTTP status.
func Write(w http.ResponseWriter, status int, msg string) {
	WriteDetails(w, status, msg, nil)
}

// WriteDetails is Write with a list of field-level problems.
func WriteDetails(w http.ResponseWriter, status int, msg string, details []string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Status: "error", Error: msg, Details: details})
}
