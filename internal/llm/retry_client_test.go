package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/rankbot/internal/config"
	testHelpers "github.com/user/rankbot/internal/testing"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxAttempts != 5 {
		t.Errorf("Expected MaxAttempts 5, got %d", cfg.MaxAttempts)
	}
	if cfg.Multiplier != 1 {
		t.Errorf("Expected Multiplier 1, got %d", cfg.Multiplier)
	}
	if cfg.MaxWaitPerAttempt != 60*time.Second {
		t.Errorf("Expected MaxWaitPerAttempt 60s, got %v", cfg.MaxWaitPerAttempt)
	}
	if cfg.MaxTotalWait != 300*time.Second {
		t.Errorf("Expected MaxTotalWait 300s, got %v", cfg.MaxTotalWait)
	}
}

func TestRetryConfigFrom(t *testing.T) {
	rc := RetryConfigFrom(config.RetryConfig{})
	if rc.MaxAttempts != 5 || rc.MaxTotalWait != 300*time.Second {
		t.Errorf("Expected defaults for zero config, got %+v", rc)
	}

	rc = RetryConfigFrom(config.RetryConfig{
		MaxAttempts:       2,
		Multiplier:        3,
		MaxWaitPerAttempt: 10,
		MaxTotalWait:      30,
	})
	if rc.MaxAttempts != 2 {
		t.Errorf("Expected MaxAttempts 2, got %d", rc.MaxAttempts)
	}
	if rc.Multiplier != 3 {
		t.Errorf("Expected Multiplier 3, got %d", rc.Multiplier)
	}
	if rc.MaxWaitPerAttempt != 10*time.Second {
		t.Errorf("Expected MaxWaitPerAttempt 10s, got %v", rc.MaxWaitPerAttempt)
	}
	if rc.MaxTotalWait != 30*time.Second {
		t.Errorf("Expected MaxTotalWait 30s, got %v", rc.MaxTotalWait)
	}
}

func TestRetryClient_SuccessFirstAttempt(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewRetryClient(nil)
	req, _ := http.NewRequest("GET", server.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("Expected 1 request, got %d", requests)
	}
}

func TestRetryClient_RetriesServerError(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       3,
		Multiplier:        1,
		MaxWaitPerAttempt: 5 * time.Second,
		MaxTotalWait:      30 * time.Second,
	})
	req, _ := http.NewRequest("GET", server.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 after retry, got %d", resp.StatusCode)
	}
	if atomic.LoadInt32(&requests) != 2 {
		t.Errorf("Expected 2 requests, got %d", requests)
	}
}

func TestRetryClient_NoRetryOnClientError(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewRetryClient(nil)
	req, _ := http.NewRequest("GET", server.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 4xx responses are handed back to the caller untouched
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("Expected 1 request, got %d", requests)
	}
}

func TestRetryClient_ExhaustsAttempts(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       2,
		Multiplier:        1,
		MaxWaitPerAttempt: 5 * time.Second,
		MaxTotalWait:      30 * time.Second,
	})
	req, _ := http.NewRequest("GET", server.URL, nil)

	_, err := client.Do(req)
	if err == nil {
		t.Fatal("Expected error after exhausting attempts, got nil")
	}
	if atomic.LoadInt32(&requests) != 2 {
		t.Errorf("Expected 2 requests, got %d", requests)
	}
}

func TestRetryClient_RetriesRateLimit(t *testing.T) {
	handler := testHelpers.NewRetryHandler(1, http.StatusTooManyRequests,
		`{"error":"rate limited"}`,
		testHelpers.OpenRouterHandler(testHelpers.OpenRouterCompletion("ok")))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       3,
		Multiplier:        1,
		MaxWaitPerAttempt: 5 * time.Second,
		MaxTotalWait:      30 * time.Second,
	})
	req, _ := http.NewRequest("POST", server.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 after 429 retry, got %d", resp.StatusCode)
	}
	if handler.CallCount() != 2 {
		t.Errorf("Expected 2 calls, got %d", handler.CallCount())
	}
}

func TestRetryClient_MaxTotalWaitStopsEarly(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       5,
		Multiplier:        1,
		MaxWaitPerAttempt: 60 * time.Second,
		MaxTotalWait:      500 * time.Millisecond,
	})
	req, _ := http.NewRequest("GET", server.URL, nil)

	start := time.Now()
	_, err := client.Do(req)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Expected early stop, took %v", elapsed)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("Expected 1 request before budget ran out, got %d", requests)
	}
}

func TestRetryClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       5,
		Multiplier:        1,
		MaxWaitPerAttempt: 60 * time.Second,
		MaxTotalWait:      300 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", server.URL, nil)
	_, err := client.DoWithContext(ctx, req)
	if err == nil {
		t.Fatal("Expected context error, got nil")
	}
}

func TestRetryClient_RewindsBodyOnRetry(t *testing.T) {
	var requests int32
	var lastBody atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastBody.Store(string(body))
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       3,
		Multiplier:        1,
		MaxWaitPerAttempt: 5 * time.Second,
		MaxTotalWait:      30 * time.Second,
	})

	req, _ := http.NewRequest("POST", server.URL, bytes.NewReader([]byte(`{"prompt":"hi"}`)))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if got := lastBody.Load().(string); got != `{"prompt":"hi"}` {
		t.Errorf("Expected retried request to carry the body, got %q", got)
	}
}

func TestRetryClient_WaitBeforeHonorsRetryAfter(t *testing.T) {
	client := NewRetryClient(&RetryConfig{
		MaxAttempts:       3,
		Multiplier:        1,
		MaxWaitPerAttempt: 10 * time.Second,
		MaxTotalWait:      60 * time.Second,
	})

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "3")
	if wait := client.waitBefore(0, resp); wait != 3*time.Second {
		t.Errorf("Expected 3s from Retry-After, got %v", wait)
	}

	// Header values above the per-attempt ceiling are clamped
	resp.Header.Set("Retry-After", "600")
	if wait := client.waitBefore(0, resp); wait != 10*time.Second {
		t.Errorf("Expected clamp to 10s, got %v", wait)
	}

	// Without the header, exponential backoff applies
	if wait := client.waitBefore(2, nil); wait != 4*time.Second {
		t.Errorf("Expected 4s backoff for attempt 2, got %v", wait)
	}
}

func TestRetryClient_Timeout(t *testing.T) {
	client := NewRetryClientWithTimeout(42*time.Second, nil)
	if client.GetTimeout() != 42*time.Second {
		t.Errorf("Expected timeout 42s, got %v", client.GetTimeout())
	}
	client.SetTimeout(10 * time.Second)
	if client.GetTimeout() != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", client.GetTimeout())
	}
}
