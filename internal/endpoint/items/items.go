// Package items covers the item storage resource: scraped item reads at
// job, item and field granularity.
package items

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"scrapecloud/internal/endpoint"
	"scrapecloud/internal/params"
)

var listPolicy = params.Policy{
	Resource:        "items",
	Formats:         []string{"json", "jsonlines", "xml", "csv", "text"},
	DefaultFormat:   "json",
	CSVKeys:         []string{"fields", "include_headers", "sep", "quote", "escape", "lineend"},
	MetaKeys:        []string{"_key", "_ts"},
	PaginationKeys:  []string{"count", "start", "startafter", "index"},
	NumericBooleans: true,
}

// fieldPolicy addresses a single item. nodata stays a native boolean here;
// the single-object endpoints take it that way.
var fieldPolicy = params.Policy{
	Resource:      "items",
	Formats:       []string{"json", "jsonlines"},
	DefaultFormat: "json",
	MetaKeys:      []string{"_key", "_ts"},
	RequiredInts:  []string{"item_index"},
	Strings:       []string{"field_name"},
}

// Client talks to the item storage resource.
type Client struct {
	transport endpoint.Transport
	list      *params.Engine
	field     *params.Engine
}

// New creates an items client. Parameter warnings go to logger.
func New(t endpoint.Transport, logger zerolog.Logger) *Client {
	return &Client{
		transport: t,
		list:      params.NewEngine(listPolicy, logger),
		field:     params.NewEngine(fieldPolicy, logger),
	}
}

func (c *Client) Resource() endpoint.Resource {
	return endpoint.ResourceItems
}

func (c *Client) Operations() []string {
	return []string{"list", "field"}
}

// List fetches items under id (project[/spider[/job]]), shaped by format,
// csv sub-options, meta, nodata and pagination.
func (c *Client) List(ctx context.Context, id string, opts params.Pairs) (*endpoint.Response, error) {
	if err := endpoint.CheckStorageID(id); err != nil {
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
		Path:   "/items/" + id,
		Query:  query,
	})
}

// Field fetches one item of a job, or one field of that item. Opts must
// carry item_index; field_name narrows the read to a single field. Both are
// validated as parameters and then spent on the path rather than the query.
func (c *Client) Field(ctx context.Context, jobID string, opts params.Pairs) (*endpoint.Response, error) {
	if err := endpoint.CheckStorageID(jobID); err != nil {
		return nil, err
	}
	if parts := endpoint.SplitID(jobID); len(parts) != 3 {
		return nil, params.NewError("id", "expected a job id with 3 sections")
	}

	set, err := c.field.Process(opts)
	if err != nil {
		return nil, err
	}

	index, _ := set.Extra.Get("item_index")
	path := "/items/" + jobID + "/" + cast.ToString(index)
	if field, ok := set.Extra.Get("field_name"); ok {
		path += "/" + strings.TrimPrefix(cast.ToString(field), "/")
	}

	set.Extra = set.Extra.Without("item_index", "field_name")
	query, err := set.Flatten()
	if err != nil {
		return nil, err
	}
	return c.transport.Do(ctx, endpoint.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}
