// Package endpoint defines the narrow seam between the parameter engine and
// whatever actually talks HTTP: a request descriptor, a transport interface
// and a registry of the API resources this client knows about.
package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"scrapecloud/internal/params"
)

// Resource identifies one API resource family.
type Resource string

const (
	ResourceJobs     Resource = "jobs"
	ResourceItems    Resource = "items"
	ResourceActivity Resource = "activity"
)

// Request is a self-contained API call descriptor. Query and Body hold
// already-validated, flattened pair lists; the transport only encodes them.
type Request struct {
	Method string
	Path   string
	Query  params.Pairs
	Body   params.Pairs

	// RawBody bypasses form encoding for endpoints that post document
	// payloads (activity inserts). ContentType must be set with it.
	RawBody     []byte
	ContentType string

	Opts Options
}

// Options are per-call forwarding options for the transport.
type Options struct {
	Timeout time.Duration
	Headers map[string]string
}

// Response is the raw outcome of a call. The client core never inspects
// bodies; decode helpers are offered to callers for convenience.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

func (r *Response) String() string {
	return string(r.Body)
}

// Transport issues one prepared request. Implementations own auth headers,
// retries and timeouts; transport-level errors pass through untouched.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Endpoint is the common surface every resource client exposes, used by the
// registry for lookup and usage listings.
type Endpoint interface {
	Resource() Resource
	Operations() []string
}
