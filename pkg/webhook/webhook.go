// Package webhook posts parse run results to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ccollicutt/pssraw/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// maxResponseBody bounds how much of a response is kept.
const maxResponseBody = 1024 * 1024

// RunHeader carries the run identifier so receivers can drop duplicate deliveries.
const RunHeader = "X-Pssraw-Run"

// Trigger decides when a run is posted.
type Trigger string

const (
	TriggerOnSkipped Trigger = "on_skipped"
	TriggerAlways    Trigger = "always"
	TriggerNever     Trigger = "never"
)

// ParseTrigger validates a trigger name. Empty selects TriggerOnSkipped.
func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(s); t {
	case "":
		return TriggerOnSkipped, nil
	case TriggerOnSkipped, TriggerAlways, TriggerNever:
		return t, nil
	default:
		return "", fmt.Errorf("invalid webhook trigger %q (must be on_skipped, always, or never)", s)
	}
}

// Payload is the body posted for one run over one or more files.
type Payload struct {
	RunID   string           `json:"run_id"`
	Files   int              `json:"files"`
	Records int              `json:"records"`
	Skipped int              `json:"skipped"`
	Reports []*output.Report `json:"reports"`
}

// NewPayload bundles the reports of one run. The run identifier is taken from
// the first report.
func NewPayload(reports []*output.Report) *Payload {
	p := &Payload{Files: len(reports), Reports: reports}
	for _, r := range reports {
		if p.RunID == "" {
			p.RunID = r.Metadata.RunID
		}
		p.Records += r.Summary.Records
		p.Skipped += r.Summary.Skipped
	}
	return p
}

// ShouldSend reports whether the trigger fires for a payload.
func ShouldSend(trigger Trigger, p *Payload) bool {
	switch trigger {
	case TriggerAlways:
		return true
	case TriggerNever:
		return false
	default:
		return p.Skipped > 0
	}
}

// Client posts payloads to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout (uses DefaultTimeout if zero)
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts a payload. Failures are reported in the Response, never panicked
// or retried.
func (c *Client) Send(ctx context.Context, p *Payload, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fail(fmt.Errorf("failed to marshal payload: %w", err))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "pssraw-webhook")
	if p.RunID != "" {
		req.Header.Set(RunHeader, p.RunID)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return fail(fmt.Errorf("failed to read response: %w", err))
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(data)
	resp.Duration = time.Since(start)
	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp
}
