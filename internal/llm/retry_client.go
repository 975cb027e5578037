package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/user/rankbot/internal/config"
)

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxAttempts       int           // Maximum number of retry attempts
	Multiplier        int           // Exponential backoff multiplier
	MaxWaitPerAttempt time.Duration // Maximum wait time per attempt
	MaxTotalWait      time.Duration // Maximum total wait time
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       5,
		Multiplier:        1,
		MaxWaitPerAttempt: 60 * time.Second,
		MaxTotalWait:      300 * time.Second,
	}
}

// RetryConfigFrom converts the application retry section into a RetryConfig
func RetryConfigFrom(cfg config.RetryConfig) *RetryConfig {
	rc := DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		rc.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.Multiplier > 0 {
		rc.Multiplier = cfg.Multiplier
	}
	if cfg.MaxWaitPerAttempt > 0 {
		rc.MaxWaitPerAttempt = time.Duration(cfg.MaxWaitPerAttempt) * time.Second
	}
	if cfg.MaxTotalWait > 0 {
		rc.MaxTotalWait = time.Duration(cfg.MaxTotalWait) * time.Second
	}
	return rc
}

// RetryClient wraps http.Client with retry logic for transient provider
// failures (429 and 5xx)
type RetryClient struct {
	client *http.Client
	config *RetryConfig
}

// NewRetryClient creates a new retry client
func NewRetryClient(config *RetryConfig) *RetryClient {
	return NewRetryClientWithTimeout(180*time.Second, config)
}

// NewRetryClientWithTimeout creates a retry client with custom timeout
func NewRetryClientWithTimeout(timeout time.Duration, config *RetryConfig) *RetryClient {
	if config == nil {
		config = DefaultRetryConfig()
	}

	return &RetryClient{
		client: &http.Client{
			Timeout: timeout,
		},
		config: config,
	}
}

// Do executes an HTTP request with retry logic
func (rc *RetryClient) Do(req *http.Request) (*http.Response, error) {
	return rc.DoWithContext(req.Context(), req)
}

// DoWithContext executes an HTTP request with retry logic and context
func (rc *RetryClient) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	totalStart := time.Now()

	for attempt := 0; attempt < rc.config.MaxAttempts; attempt++ {
		reqClone := req.Clone(ctx)
		// The request body can only be read once; restore it on retries.
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
			}
			reqClone.Body = body
		}

		resp, err = rc.client.Do(reqClone)

		if err == nil && resp != nil {
			// 429 and 5xx are retried; everything else is returned to the
			// caller, including 4xx error responses.
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return resp, nil
			}
		}

		waitTime := rc.waitBefore(attempt, resp)

		if time.Since(totalStart)+waitTime > rc.config.MaxTotalWait {
			break
		}

		if attempt < rc.config.MaxAttempts-1 {
			if resp != nil {
				_ = resp.Body.Close()
			}
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", rc.config.MaxAttempts, err)
	}

	if resp != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("request failed with status %d after %d attempts", resp.StatusCode, rc.config.MaxAttempts)
	}

	return nil, fmt.Errorf("request failed after %d attempts", rc.config.MaxAttempts)
}

// waitBefore calculates the wait before the next attempt, honoring a
// Retry-After header when present
func (rc *RetryClient) waitBefore(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				wait := time.Duration(secs) * time.Second
				if wait > rc.config.MaxWaitPerAttempt {
					wait = rc.config.MaxWaitPerAttempt
				}
				return wait
			}
		}
	}

	// Exponential backoff: 2^attempt * multiplier seconds
	baseWait := time.Duration(math.Pow(2, float64(attempt))) * time.Duration(rc.config.Multiplier) * time.Second
	if baseWait > rc.config.MaxWaitPerAttempt {
		baseWait = rc.config.MaxWaitPerAttempt
	}
	return baseWait
}

// SetTimeout updates the client timeout
func (rc *RetryClient) SetTimeout(timeout time.Duration) {
	rc.client.Timeout = timeout
}

// GetTimeout returns the current client timeout
func (rc *RetryClient) GetTimeout() time.Duration {
	return rc.client.Timeout
}
