// Package runtime talks to the live generated service through its own
// HTTP interface. Nothing here opens a store connection: the engine
// validates the same contract a real client observes.
package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/specgate/specgate/internal/domain"
)

// Client implements domain.ServiceClient against a base URL. Snapshot
// fetches are retried a bounded number of times with linear backoff;
// step execution is never retried because a re-sent write is not the
// same observation.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
}

func New(baseURL string, cfg domain.Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: cfg.ScenarioTimeout},
		retries: cfg.FetchRetries,
		backoff: cfg.FetchBackoff,
	}
}

// Ping verifies the service answers HTTP at all. Any response counts;
// reachability, not health, is the question.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("service unreachable at %s: %w", c.baseURL, err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) FetchCollection(ctx context.Context, collectionPath string) ([]domain.Record, error) {
	var records []domain.Record
	err := c.retryFetch(ctx, func() error {
		body, status, err := c.get(ctx, "/"+collectionPath)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("GET /%s returned %d", collectionPath, status)
		}
		return decodeCollection(body, &records)
	})
	return records, err
}

func (c *Client) FetchByID(ctx context.Context, collectionPath, id string) (domain.Record, error) {
	var record domain.Record
	err := c.retryFetch(ctx, func() error {
		body, status, err := c.get(ctx, "/"+collectionPath+"/"+id)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("GET /%s/%s returned %d", collectionPath, id, status)
		}
		return json.Unmarshal(body, &record)
	})
	return record, err
}

// Execute runs one test step and reports the observed status and body.
// A non-matching status is data for the caller, not an error here.
func (c *Client) Execute(ctx context.Context, step domain.TestStep) (*domain.StepResult, error) {
	var reqBody io.Reader
	if step.Body != nil {
		data, err := json.Marshal(step.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding step body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(step.Method), c.baseURL+step.Endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", step.Method, step.Endpoint, err)
	}
	defer resp.Body.Close()

	result := &domain.StepResult{Status: resp.StatusCode}
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &result.Body)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

// retryFetch runs fn up to retries+1 times with linear backoff,
// honoring context cancellation between attempts.
func (c *Client) retryFetch(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return lastErr
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

// decodeCollection accepts both a bare JSON array and the common
// {"items": [...]} / {"data": [...]} envelopes.
func decodeCollection(body []byte, out *[]domain.Record) error {
	if err := json.Unmarshal(body, out); err == nil {
		return nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decoding collection body: %w", err)
	}
	for _, field := range []string{"items", "data", "results"} {
		if raw, ok := envelope[field]; ok {
			return json.Unmarshal(raw, out)
		}
	}
	return fmt.Errorf("collection body has no recognizable list field")
}
