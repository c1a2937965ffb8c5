// internal/form/submit.go
//
// Onboard – Forms subsystem: remote submission.
//
// Context
//   A Submitter sends the accepted draft to the remote API.  HTTPSubmitter
//   POSTs the Values as JSON and hands back the response body untouched so
//   the front-end can show it.  There is no retry and no authentication.
//   Failures come back as errors; the caller decides how to surface them.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// DefaultEndpoint is the public demo API used when none is configured.
const DefaultEndpoint = "https://reqres.in/api/users"

// maxResponseBytes caps how much of a response body is kept.
const maxResponseBytes = 1 << 20

// ServerRecord is the remote API's answer to a successful submission.
type ServerRecord struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Pretty returns Data indented by two spaces, or the raw bytes when the body
// is not JSON.
func (r ServerRecord) Pretty() string {
	if len(r.Data) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Data, "", "  "); err != nil {
		return string(r.Data)
	}
	return buf.String()
}

// Submitter sends one accepted draft to the remote API.
type Submitter interface {
	Submit(ctx context.Context, vals Values) (ServerRecord, error)
}

// HTTPSubmitter posts Values as JSON to Endpoint.
type HTTPSubmitter struct {
	Endpoint string
	Client   *http.Client
	// Timeout bounds one request when > 0.
	Timeout time.Duration
}

// NewHTTPSubmitter returns a submitter for endpoint using a fresh client.  An
// empty endpoint selects DefaultEndpoint.
func NewHTTPSubmitter(endpoint string, timeout time.Duration) *HTTPSubmitter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPSubmitter{
		Endpoint: endpoint,
		Client:   &http.Client{},
		Timeout:  timeout,
	}
}

// Submit implements Submitter.  A non-2xx answer yields *StatusError.
func (s *HTTPSubmitter) Submit(ctx context.Context, vals Values) (ServerRecord, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(vals)
	if err != nil {
		return ServerRecord{}, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return ServerRecord{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return ServerRecord{}, fmt.Errorf("post %s: %w", s.Endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ServerRecord{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ServerRecord{}, &StatusError{Code: resp.StatusCode, Body: body}
	}
	return ServerRecord{Status: resp.StatusCode, Data: body}, nil
}
