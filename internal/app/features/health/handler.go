package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/leadpulse/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger checks whether the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter reports how many visitor sessions are live.
type Counter interface {
	Len() int
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Backend Pinger
	Boards  Counter
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(backend Pinger, boards Counter, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: backend,
		Boards:  boards,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Boards  int    `json:"boards"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"reachable", "boards":3 }
//
// On backend failure: 503 and
//
//	{ "status":"error", "backend":"unreachable", "message":"Backend unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Backend: "reachable",
	}
	if h.Boards != nil {
		resp.Boards = h.Boards.Len()
	}

	if err := h.Backend.Ping(ctx); err != nil {
		h.Log.Error("health-check: backend ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Backend = "unreachable"
		resp.Message = "Backend unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
