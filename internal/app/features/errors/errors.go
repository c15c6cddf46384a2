// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// Handler is the errors feature handler.
// It answers unmatched routes with JSON instead of chi's plain-text defaults.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("route not found",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	Write(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Write(w, http.StatusMethodNotAllowed, "method not allowed")
}
