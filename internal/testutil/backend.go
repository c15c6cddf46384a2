package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// RecordedRequest is what the fake backend saw for one dashboard call.
type RecordedRequest struct {
	Path          string
	StartDate     string
	EndDate       string
	HasStart      bool
	HasEnd        bool
	Authorization string
	RequestID     string
}

// Reply controls one fake backend response.
//   - Body: string and []byte are written raw, anything else is JSON-encoded.
//   - Gate: if set, the response is held until the gate closes or the
//     client goes away.
type Reply struct {
	Status int
	Body   any
	Delay  time.Duration
	Gate   <-chan struct{}
}

// Responder picks a reply for a request.
type Responder func(req RecordedRequest) Reply

// Backend is an httptest server standing in for the dashboard aggregation API.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	manager  Responder
	worker   Responder
}

// NewBackend starts a fake backend that answers both dashboard endpoints
// with the default fixtures. It is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		manager: func(RecordedRequest) Reply { return Reply{Body: ManagerFixture()} },
		worker:  func(RecordedRequest) Reply { return Reply{Body: WorkerFixture()} },
	}
	router := chi.NewRouter()
	router.HandleFunc("/manager/dashboard", func(w http.ResponseWriter, r *http.Request) { b.serve(w, r, true) })
	router.HandleFunc("/worker/dashboard", func(w http.ResponseWriter, r *http.Request) { b.serve(w, r, false) })
	b.Server = httptest.NewServer(router)
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL to hand to the client.
func (b *Backend) URL() string { return b.Server.URL }

// OnManager replaces the manager responder.
func (b *Backend) OnManager(fn Responder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.manager = fn
}

// OnWorker replaces the worker responder.
func (b *Backend) OnWorker(fn Responder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.worker = fn
}

// Requests returns a copy of the POSTs received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request, manager bool) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body map[string]string
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &body)

	rec := RecordedRequest{
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
	}
	rec.StartDate, rec.HasStart = body["startDate"]
	rec.EndDate, rec.HasEnd = body["endDate"]

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	fn := b.worker
	if manager {
		fn = b.manager
	}
	b.mu.Unlock()

	reply := fn(rec)
	if reply.Gate != nil {
		select {
		case <-reply.Gate:
		case <-r.Context().Done():
			return
		}
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	switch v := reply.Body.(type) {
	case nil:
	case string:
		_, _ = io.WriteString(w, v)
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}
