package testutil

import (
	"net/http"
	"strings"
	"testing"
)

func TestBackend_RecordsDashboardPosts(t *testing.T) {
	b := NewBackend(t)

	resp, err := http.Post(b.URL()+"/worker/dashboard", "application/json",
		strings.NewReader(`{"endDate":"2026/10/14"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	reqs := b.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	got := reqs[0]
	if got.Path != "/worker/dashboard" || got.HasStart || !got.HasEnd || got.EndDate != "2026/10/14" {
		t.Errorf("recorded %+v", got)
	}
}

func TestBackend_RejectsOtherMethods(t *testing.T) {
	b := NewBackend(t)

	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, _ := http.NewRequest(method, b.URL()+"/manager/dashboard", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("%s status = %d, want 405", method, resp.StatusCode)
		}
	}
	if n := len(b.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}
