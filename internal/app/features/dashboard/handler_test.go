package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/features/dashboard"
	"github.com/dalemusser/leadpulse/internal/app/store/dashapi"
	"github.com/dalemusser/leadpulse/internal/app/system/boards"
	"github.com/dalemusser/leadpulse/internal/app/system/ratelimit"
	"github.com/dalemusser/leadpulse/internal/app/system/timeouts"
	"github.com/dalemusser/leadpulse/internal/app/system/visitor"
	"github.com/dalemusser/leadpulse/internal/testutil"
	"go.uber.org/zap"
)

type fixture struct {
	backend  *testutil.Backend
	registry *boards.Registry
	router   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	be := testutil.NewBackend(t)
	client, err := dashapi.New(dashapi.Config{BaseURL: be.URL()}, zap.NewNop())
	if err != nil {
		t.Fatalf("dashapi.New: %v", err)
	}
	reg := boards.NewRegistry(client, zap.NewNop(), boards.SessionOptions{})
	t.Cleanup(reg.Close)

	h := dashboard.NewHandler(reg, time.UTC, zap.NewNop())
	return &fixture{backend: be, registry: reg, router: dashboard.Routes(h)}
}

type response struct {
	Status string `json:"status"`
	Seq    uint64 `json:"seq"`
	Range  *struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
}

func (f *fixture) do(t *testing.T, method, target, visitorID string) (int, response) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if visitorID != "" {
		req = req.WithContext(visitor.WithID(req.Context(), visitorID))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var body response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, target, err, rec.Body.String())
	}
	return rec.Code, body
}

func TestWorker_MountFetchesUnbounded(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodGet, "/worker", "v1")
	if code != http.StatusOK || body.Status != "success" {
		t.Fatalf("code=%d body=%+v", code, body)
	}
	var vm struct {
		KPIs struct {
			TotalAssignedLeads int `json:"totalAssignedLeads"`
		} `json:"kpis"`
	}
	if err := json.Unmarshal(body.Data, &vm); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if vm.KPIs.TotalAssignedLeads != 12 {
		t.Errorf("totalAssignedLeads = %d, want 12", vm.KPIs.TotalAssignedLeads)
	}

	reqs := f.backend.Requests()
	if len(reqs) != 1 || reqs[0].HasStart || reqs[0].HasEnd {
		t.Errorf("backend requests = %+v, want one without bounds", reqs)
	}
}

func TestManager_MountWithoutRangeIsIdle(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodGet, "/manager", "v1")
	if code != http.StatusOK || body.Status != "idle" {
		t.Errorf("code=%d body=%+v, want 200 idle", code, body)
	}
	if len(body.Data) != 0 {
		t.Errorf("idle response carried data: %s", body.Data)
	}
	if n := len(f.backend.Requests()); n != 0 {
		t.Errorf("backend requests = %d, want 0", n)
	}
}

func TestManager_Ranges(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		wantFrom, wantTo string
		wireFrom, wireTo string
	}{
		{"plain", "from=2024-01-01&to=2024-01-31", "2024-01-01", "2024-01-31", "2024/01/01", "2024/01/31"},
		{"swapped", "from=2024-01-31&to=2024-01-01", "2024-01-01", "2024-01-31", "2024/01/01", "2024/01/31"},
		{"clamped", "from=2024-01-01&to=2024-06-01", "2024-01-01", "2024-02-29", "2024/01/01", "2024/02/29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			code, body := f.do(t, http.MethodGet, "/manager?"+tt.query, "v1")
			if code != http.StatusOK || body.Status != "success" {
				t.Fatalf("code=%d body=%+v", code, body)
			}
			if body.Range == nil || body.Range.From != tt.wantFrom || body.Range.To != tt.wantTo {
				t.Errorf("range = %+v, want %s..%s", body.Range, tt.wantFrom, tt.wantTo)
			}
			reqs := f.backend.Requests()
			if len(reqs) != 1 || reqs[0].StartDate != tt.wireFrom || reqs[0].EndDate != tt.wireTo {
				t.Errorf("backend requests = %+v", reqs)
			}
		})
	}
}

func TestManager_RepeatRangeDoesNotRefetch(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/manager?from=2024-01-01&to=2024-01-31", "v1")
	_, body := f.do(t, http.MethodGet, "/manager?from=2024-01-01&to=2024-01-31", "v1")
	if body.Status != "success" {
		t.Errorf("status = %s", body.Status)
	}
	if n := len(f.backend.Requests()); n != 1 {
		t.Errorf("backend requests = %d, want 1", n)
	}
}

func TestManager_InvalidDate(t *testing.T) {
	f := newFixture(t)
	code, body := f.do(t, http.MethodGet, "/manager?from=01/02/2024", "v1")
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	if len(body.Details) != 1 || !strings.HasPrefix(body.Details[0], "from ") {
		t.Errorf("details = %v", body.Details)
	}
}

func TestManager_BackendErrorThenRefresh(t *testing.T) {
	f := newFixture(t)
	f.backend.OnManager(func(testutil.RecordedRequest) testutil.Reply {
		return testutil.Reply{Status: http.StatusBadGateway, Body: "upstream down"}
	})

	code, body := f.do(t, http.MethodGet, "/manager?from=2024-01-01&to=2024-01-31", "v1")
	if code != http.StatusServiceUnavailable || body.Error != dashboard.UnavailableMessage {
		t.Fatalf("code=%d body=%+v", code, body)
	}
	if len(body.Data) != 0 {
		t.Errorf("error response carried data: %s", body.Data)
	}

	f.backend.OnManager(func(testutil.RecordedRequest) testutil.Reply {
		return testutil.Reply{Body: testutil.ManagerFixture()}
	})
	code, body = f.do(t, http.MethodPost, "/manager/refresh", "v1")
	if code != http.StatusOK || body.Status != "success" {
		t.Errorf("after refresh code=%d body=%+v", code, body)
	}
	if body.Range == nil || body.Range.From != "2024-01-01" {
		t.Errorf("refresh lost the range: %+v", body.Range)
	}
}

func TestWorker_SlowBackendAnswersLoading(t *testing.T) {
	timeouts.Configure(timeouts.Config{Await: 30 * time.Millisecond})
	defer timeouts.Reset()

	f := newFixture(t)
	gate := make(chan struct{})
	defer close(gate)
	f.backend.OnWorker(func(testutil.RecordedRequest) testutil.Reply {
		return testutil.Reply{Gate: gate, Body: testutil.WorkerFixture()}
	})

	code, body := f.do(t, http.MethodGet, "/worker", "v1")
	if code != http.StatusAccepted || body.Status != "loading" {
		t.Errorf("code=%d body=%+v, want 202 loading", code, body)
	}
}

func TestVisitorsAreIsolated(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/manager?from=2024-01-01&to=2024-01-31", "v1")

	_, body := f.do(t, http.MethodGet, "/manager", "v2")
	if body.Status != "idle" {
		t.Errorf("v2 status = %s, want idle", body.Status)
	}
	if f.registry.Len() != 2 {
		t.Errorf("sessions = %d, want 2", f.registry.Len())
	}
}

func TestMissingVisitor(t *testing.T) {
	f := newFixture(t)
	code, _ := f.do(t, http.MethodGet, "/manager", "")
	if code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
}

func TestRegistryClosed(t *testing.T) {
	f := newFixture(t)
	f.registry.Close()
	code, _ := f.do(t, http.MethodGet, "/worker", "v1")
	if code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", code)
	}
}

func TestRefresh_ThrottledPerVisitor(t *testing.T) {
	be := testutil.NewBackend(t)
	client, err := dashapi.New(dashapi.Config{BaseURL: be.URL()}, zap.NewNop())
	if err != nil {
		t.Fatalf("dashapi.New: %v", err)
	}
	reg := boards.NewRegistry(client, zap.NewNop(), boards.SessionOptions{})
	t.Cleanup(reg.Close)
	h := dashboard.NewHandler(reg, time.UTC, zap.NewNop()).WithRefreshLimit(ratelimit.New(time.Hour, 1))
	f := &fixture{backend: be, registry: reg, router: dashboard.Routes(h)}

	if code, _ := f.do(t, http.MethodPost, "/worker/refresh", "v1"); code != http.StatusOK {
		t.Fatalf("first refresh code = %d", code)
	}
	code, body := f.do(t, http.MethodPost, "/manager/refresh", "v1")
	if code != http.StatusTooManyRequests || body.Status != "error" {
		t.Errorf("second refresh code=%d body=%+v, want 429", code, body)
	}
	if code, _ := f.do(t, http.MethodPost, "/worker/refresh", "v2"); code != http.StatusOK {
		t.Errorf("other visitor code = %d, want 200", code)
	}
	if code, _ := f.do(t, http.MethodGet, "/worker", "v1"); code != http.StatusOK {
		t.Errorf("GET is not throttled, got %d", code)
	}
}
