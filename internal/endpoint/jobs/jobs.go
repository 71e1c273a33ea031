// Package jobs covers the job-management resource: scheduling, listing,
// tagging and deleting crawl jobs.
package jobs

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"scrapecloud/internal/endpoint"
	"scrapecloud/internal/params"
)

var listPolicy = params.Policy{
	Resource:       "jobs",
	Formats:        []string{"json", "jsonlines"},
	DefaultFormat:  "json",
	PaginationKeys: []string{"count"},
	// has_tag and lacks_tag may repeat, so they pass through unchecked.
	Strings: []string{"spider", "state"},
}

var runPolicy = params.Policy{
	Resource:        "jobs",
	RequiredStrings: []string{"spider"},
	Ints:            []string{"priority", "units"},
	Strings:         []string{"job_settings"},
}

var updatePolicy = params.Policy{
	Resource:        "jobs",
	RequiredStrings: []string{"job"},
}

// Client talks to the jobs resource.
type Client struct {
	transport endpoint.Transport
	list      *params.Engine
	run       *params.Engine
	update    *params.Engine
}

// New creates a jobs client. Parameter warnings go to logger.
func New(t endpoint.Transport, logger zerolog.Logger) *Client {
	return &Client{
		transport: t,
		list:      params.NewEngine(listPolicy, logger),
		run:       params.NewEngine(runPolicy, logger),
		update:    params.NewEngine(updatePolicy, logger),
	}
}

func (c *Client) Resource() endpoint.Resource {
	return endpoint.ResourceJobs
}

func (c *Client) Operations() []string {
	return []string{"run", "list", "count", "update", "delete"}
}

// Run schedules a spider run. Opts must carry spider; add_tag, priority,
// units and job_settings pass through after validation.
func (c *Client) Run(ctx context.Context, project string, opts params.Pairs) (*endpoint.Response, error) {
	return c.post(ctx, c.run, "/api/run.json", project, opts)
}

// List fetches jobs for a project, optionally filtered by spider, state
// and tags.
func (c *Client) List(ctx context.Context, project string, opts params.Pairs) (*endpoint.Response, error) {
	return c.get(ctx, c.list, "/api/jobs/list.json", project, opts)
}

// Count returns the number of jobs matching the same filters List takes.
func (c *Client) Count(ctx context.Context, project string, opts params.Pairs) (*endpoint.Response, error) {
	return c.get(ctx, c.list, "/api/jobs/count.json", project, opts)
}

// Update adds or removes tags on a job.
func (c *Client) Update(ctx context.Context, project string, opts params.Pairs) (*endpoint.Response, error) {
	return c.post(ctx, c.update, "/api/jobs/update.json", project, opts)
}

// Delete removes a job.
func (c *Client) Delete(ctx context.Context, project string, opts params.Pairs) (*endpoint.Response, error) {
	return c.post(ctx, c.update, "/api/jobs/delete.json", project, opts)
}

func (c *Client) get(ctx context.Context, engine *params.Engine, path, project string, opts params.Pairs) (*endpoint.Response, error) {
	query, err := c.prepare(engine, project, opts)
	if err != nil {
		return nil, err
	}
	return c.transport.Do(ctx, endpoint.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

func (c *Client) post(ctx context.Context, engine *params.Engine, path, project string, opts params.Pairs) (*endpoint.Response, error) {
	body, err := c.prepare(engine, project, opts)
	if err != nil {
		return nil, err
	}
	return c.transport.Do(ctx, endpoint.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// prepare validates opts and returns the flattened pair list with the
// project id prepended.
func (c *Client) prepare(engine *params.Engine, project string, opts params.Pairs) (params.Pairs, error) {
	if err := endpoint.CheckProjectID(project); err != nil {
		return nil, err
	}
	set, err := engine.Process(opts)
	if err != nil {
		return nil, err
	}
	flat, err := set.Flatten()
	if err != nil {
		return nil, err
	}
	return append(params.Pairs{params.P("project", project)}, flat...), nil
}
