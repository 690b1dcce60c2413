package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{counts: make(map[string]int64)}
}

func (f *fakeLimiterStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitPassesThroughWithoutStore(t *testing.T) {
	calls := 0
	policy := NewRateLimitPolicy("api", time.Minute, 1, 0)
	handler := RateLimit(policy, nil, nil)(okHandler(&calls))

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/panels", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected pass-through without store, got %d", resp.Code)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 handler calls, got %d", calls)
	}
}

func TestRateLimitBlocksIPOverLimit(t *testing.T) {
	calls := 0
	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("api", time.Minute, 2, 0)
	handler := RateLimit(policy, store, nil)(okHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/panels", nil)
		req.RemoteAddr = "203.0.113.7:51000"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/panels", nil)
	req.RemoteAddr = "203.0.113.7:51000"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
	if calls != 2 {
		t.Fatalf("blocked request must not reach the handler, got %d calls", calls)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/v1/panels", nil)
	other.RemoteAddr = "198.51.100.4:40000"
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, other)
	if resp.Code != http.StatusOK {
		t.Fatalf("a different client IP must have its own window, got %d", resp.Code)
	}
}

func TestRateLimitScopesBySession(t *testing.T) {
	calls := 0
	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("api", time.Minute, 0, 1)
	handler := RateLimit(policy, store, nil)(okHandler(&calls))

	send := func(session string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", nil)
		req.Header.Set("X-Session-Id", session)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("sess-a"); code != http.StatusOK {
		t.Fatalf("first request for sess-a should pass, got %d", code)
	}
	if code := send("sess-a"); code != http.StatusTooManyRequests {
		t.Fatalf("second request for sess-a should be limited, got %d", code)
	}
	if code := send("sess-b"); code != http.StatusOK {
		t.Fatalf("sess-b must not share sess-a's window, got %d", code)
	}
}

func TestRateLimitStoreFailureReportsDependency(t *testing.T) {
	store := newFakeLimiterStore()
	store.err = errors.New("redis down")
	calls := 0
	policy := NewRateLimitPolicy("api", time.Minute, 1, 0)
	handler := RateLimit(policy, store, nil)(okHandler(&calls))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/panels", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the counter store fails, got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatalf("handler must not run when limiting fails, got %d calls", calls)
	}
}
