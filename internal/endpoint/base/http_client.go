// Package base implements the HTTP transport the resource clients call
// into. It owns auth, encoding, retries and request logging; the parameter
// engine never sees any of it.
package base

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"scrapecloud/internal/endpoint"
	"scrapecloud/internal/params"
)

// HTTPClient is the default endpoint.Transport. The API key rides as the
// basic-auth username with an empty password, the scheme the scraping cloud
// uses for every resource.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	retries uint64
}

// NewHTTPClient creates a transport for baseURL. A zero timeout falls back
// to 30 seconds; retries bounds how many times a transient failure is
// retried before giving up.
func NewHTTPClient(baseURL, apiKey string, timeoutSec int, retries uint64) *HTTPClient {
	if timeoutSec == 0 {
		timeoutSec = 30
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		retries: retries,
	}
}

// Do issues one prepared request, retrying network failures and 5xx
// responses with exponential backoff. Client errors (4xx) come back as a
// Response without retrying; the caller decides what they mean.
func (c *HTTPClient) Do(ctx context.Context, req endpoint.Request) (*endpoint.Response, error) {
	if req.Opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Opts.Timeout)
		defer cancel()
	}

	url := c.baseURL + req.Path
	if len(req.Query) > 0 {
		url += "?" + params.EncodePairs(req.Query)
	}

	log.Debug().
		Str("method", req.Method).
		Str("url", url).
		Msg("making API request")

	operation := func() (*endpoint.Response, error) {
		httpReq, err := c.newHTTPRequest(ctx, req, url)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.client.Do(httpReq)
		if err != nil {
			log.Warn().Str("url", url).Err(err).Msg("API request failed, may retry")
			return nil, err
		}
		out, err := readResponse(resp)
		if err != nil {
			return nil, err
		}
		if out.StatusCode >= 500 {
			log.Warn().Str("url", url).Int("status_code", out.StatusCode).
				Msg("server error, may retry")
			return nil, fmt.Errorf("server error: %d", out.StatusCode)
		}
		return out, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	out, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, &endpoint.Error{
			Code:    endpoint.ErrRequestFailed,
			Message: fmt.Sprintf("%s %s: %v", req.Method, req.Path, err),
		}
	}
	return out, nil
}

func (c *HTTPClient) newHTTPRequest(ctx context.Context, req endpoint.Request, url string) (*http.Request, error) {
	var body io.Reader
	contentType := ""
	switch {
	case req.RawBody != nil:
		body = bytes.NewReader(req.RawBody)
		contentType = req.ContentType
	case len(req.Body) > 0:
		body = strings.NewReader(params.EncodePairs(req.Body))
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.SetBasicAuth(c.apiKey, "")
	httpReq.Header.Set("User-Agent", "scrapecloud-go")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for key, value := range req.Opts.Headers {
		httpReq.Header.Set(key, value)
	}
	return httpReq, nil
}

func readResponse(resp *http.Response) (*endpoint.Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	out := &endpoint.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}
	log.Debug().
		Int("status_code", out.StatusCode).
		Int("body_length", len(body)).
		Msg("received API response")
	return out, nil
}
