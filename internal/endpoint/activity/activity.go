// Package activity covers the project activity feed: reading recent events
// and inserting new ones.
package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"scrapecloud/internal/endpoint"
	"scrapecloud/internal/params"
)

var listPolicy = params.Policy{
	Resource:       "activity",
	Formats:        []string{"json", "jsonlines"},
	DefaultFormat:  "json",
	PaginationKeys: []string{"count", "p", "pcount"},
}

// Client talks to the activity resource.
type Client struct {
	transport endpoint.Transport
	list      *params.Engine
}

// New creates an activity client. Parameter warnings go to logger.
func New(t endpoint.Transport, logger zerolog.Logger) *Client {
	return &Client{
		transport: t,
		list:      params.NewEngine(listPolicy, logger),
	}
}

func (c *Client) Resource() endpoint.Resource {
	return endpoint.ResourceActivity
}

func (c *Client) Operations() []string {
	return []string{"list", "post"}
}

// List fetches the activity feed for a project.
func (c *Client) List(ctx context.Context, project string, opts params.Pairs) (*endpoint.Response, error) {
	if err := endpoint.CheckProjectID(project); err != nil {
		return nil, err
	}
	set, err := c.list.Process(opts)
	if err != nil {
		return nil, err
	}
	query, err := set.Flatten()
	if err != nil {
		return nil, err
	}
	return c.transport.Do(ctx, endpoint.Request{
		Method: http.MethodGet,
		Path:   "/activity/" + project,
		Query:  query,
	})
}

// Post inserts activity events, one JSON document per line.
func (c *Client) Post(ctx context.Context, project string, events []any) (*endpoint.Response, error) {
	if err := endpoint.CheckProjectID(project); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, params.NewError("events", "required parameter not provided")
	}

	var body bytes.Buffer
	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to encode activity event: %w", err)
		}
		body.Write(line)
		body.WriteByte('\n')
	}

	return c.transport.Do(ctx, endpoint.Request{
		Method:      http.MethodPost,
		Path:        "/activity/" + project,
		RawBody:     body.Bytes(),
		ContentType: "application/x-jsonlines",
	})
}
