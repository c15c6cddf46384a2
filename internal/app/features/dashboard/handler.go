// internal/app/features/dashboard/handler.go
package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/leadpulse/internal/app/features/errors"
	"github.com/dalemusser/leadpulse/internal/app/system/boards"
	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/dalemusser/leadpulse/internal/app/system/querystate"
	"github.com/dalemusser/leadpulse/internal/app/system/ratelimit"
	"github.com/dalemusser/leadpulse/internal/app/system/timeouts"
	"github.com/dalemusser/leadpulse/internal/app/system/visitor"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UnavailableMessage is shown for any failed dashboard fetch. The
// underlying error is logged, never returned.
const UnavailableMessage = "dashboard unavailable for this range"

type Handler struct {
	Boards *boards.Registry
	Loc    *time.Location
	Log    *zap.Logger

	// Refreshes throttles the refresh endpoints per visitor; nil disables it.
	Refreshes *ratelimit.Limiter

	validate *validator.Validate
}

func NewHandler(reg *boards.Registry, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Boards:   reg,
		Loc:      loc,
		Log:      logger,
		validate: newValidator(),
	}
}

// WithRefreshLimit enables per-visitor throttling of the refresh endpoints.
func (h *Handler) WithRefreshLimit(l *ratelimit.Limiter) *Handler {
	h.Refreshes = l
	return h
}

func visitorKey(r *http.Request) (string, bool) {
	return visitor.ID(r)
}

func (h *Handler) refreshLimited(w http.ResponseWriter, r *http.Request) {
	id, _ := visitor.ID(r)
	h.Log.Debug("refresh throttled", zap.String("visitor", id), zap.String("path", r.URL.Path))
	w.Header().Set("Retry-After", "1")
	uierrors.Write(w, http.StatusTooManyRequests, "too many refreshes, slow down")
}

// rangeJSON is the active range as yyyy-MM-dd days.
type rangeJSON struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

// viewResponse is the body of every dashboard response.
type viewResponse struct {
	Status string     `json:"status"`
	Seq    uint64     `json:"seq"`
	Range  *rangeJSON `json:"range"`
	Data   any        `json:"data,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// ServeManager handles GET /dashboard/manager.
func (h *Handler) ServeManager(w http.ResponseWriter, r *http.Request) {
	if s := h.session(w, r); s != nil {
		serveBoard(h, w, r, s.Manager)
	}
}

// ServeWorker handles GET /dashboard/worker.
func (h *Handler) ServeWorker(w http.ResponseWriter, r *http.Request) {
	if s := h.session(w, r); s != nil {
		serveBoard(h, w, r, s.Worker)
	}
}

// RefreshManager handles POST /dashboard/manager/refresh.
func (h *Handler) RefreshManager(w http.ResponseWriter, r *http.Request) {
	if s := h.session(w, r); s != nil {
		refreshBoard(h, w, r, s.Manager)
	}
}

// RefreshWorker handles POST /dashboard/worker/refresh.
func (h *Handler) RefreshWorker(w http.ResponseWriter, r *http.Request) {
	if s := h.session(w, r); s != nil {
		refreshBoard(h, w, r, s.Worker)
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *boards.Session {
	id, ok := visitor.ID(r)
	if !ok {
		h.Log.Error("dashboard request without visitor id")
		uierrors.Write(w, http.StatusInternalServerError, "internal error")
		return nil
	}
	s, err := h.Boards.Get(id)
	if err != nil {
		uierrors.Write(w, http.StatusServiceUnavailable, "service is shutting down")
		return nil
	}
	return s
}

// serveBoard proposes the query range (or the mount-time nil range on a
// board's first visit) and answers with the settled view.
func serveBoard[P, V any](h *Handler, w http.ResponseWriter, r *http.Request, b *boards.Board[P, V]) {
	cand, err := h.parseRange(r)
	if err != nil {
		var inv *errInvalidRange
		if errors.As(err, &inv) {
			uierrors.WriteDetails(w, http.StatusBadRequest, "invalid date range", inv.details)
			return
		}
		h.Log.Error("range validation failed", zap.Error(err))
		uierrors.Write(w, http.StatusInternalServerError, "internal error")
		return
	}

	if cand != nil || !b.Mounted() {
		rng, changed := b.Propose(cand)
		h.Log.Debug("dashboard range proposed",
			zap.String("board", b.Name()),
			zap.Stringer("range", rng),
			zap.Bool("changed", changed))
	}
	h.respond(w, r, b.Name(), awaitView(h, r, b))
}

func refreshBoard[P, V any](h *Handler, w http.ResponseWriter, r *http.Request, b *boards.Board[P, V]) {
	if b.Mounted() {
		b.Refresh()
	} else {
		b.Propose(nil)
	}
	h.respond(w, r, b.Name(), awaitView(h, r, b))
}

func awaitView[P, V any](h *Handler, r *http.Request, b *boards.Board[P, V]) viewResponse {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Await(), h.Log, "await "+b.Name()+" board")
	defer cancel()

	// On timeout Await still returns the view as it stands (loading).
	v, _ := b.Await(ctx)
	return toResponse(h, v)
}

func toResponse[V any](h *Handler, v boards.View[V]) viewResponse {
	resp := viewResponse{Status: string(v.Status), Seq: v.Seq, Range: h.rangeOf(v.Range)}
	if v.Pending {
		resp.Status = string(querystate.StatusLoading)
	}
	switch querystate.Status(resp.Status) {
	case querystate.StatusError:
		resp.Error = UnavailableMessage
	case querystate.StatusSuccess:
		// A nil *V must not become a non-nil interface.
		if v.Model != nil {
			resp.Data = v.Model
		}
	}
	return resp
}

func (h *Handler) rangeOf(rng *daterange.DateRange) *rangeJSON {
	if rng == nil {
		return nil
	}
	out := &rangeJSON{To: rng.To.In(h.Loc).Format(daterange.DayLayout)}
	if !rng.From.IsZero() {
		out.From = rng.From.In(h.Loc).Format(daterange.DayLayout)
	}
	return out
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, board string, resp viewResponse) {
	code := http.StatusOK
	switch querystate.Status(resp.Status) {
	case querystate.StatusLoading:
		code = http.StatusAccepted
	case querystate.StatusError:
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Warn("dashboard response write failed",
			zap.String("board", board),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}
