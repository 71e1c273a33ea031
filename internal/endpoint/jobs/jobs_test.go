package jobs

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapecloud/internal/endpoint"
	"scrapecloud/internal/params"
)

type fakeTransport struct {
	req endpoint.Request
}

func (f *fakeTransport) Do(ctx context.Context, req endpoint.Request) (*endpoint.Response, error) {
	f.req = req
	return &endpoint.Response{StatusCode: http.StatusOK}, nil
}

func newTestClient() (*Client, *fakeTransport) {
	transport := &fakeTransport{}
	return New(transport, zerolog.Nop()), transport
}

func TestList_BuildsQuery(t *testing.T) {
	client, transport := newTestClient()

	_, err := client.List(context.Background(), "123", params.Pairs{
		params.P("spider", "quotes"),
		params.P("pagination", params.Pairs{params.P("count", 10)}),
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, transport.req.Method)
	assert.Equal(t, "/api/jobs/list.json", transport.req.Path)
	assert.Equal(t, params.Pairs{
		params.P("project", "123"),
		params.P("format", "json"),
		params.P("count", "10"),
		params.P("spider", "quotes"),
	}, transport.req.Query)
}

func TestList_RejectsBadProjectID(t *testing.T) {
	client, _ := newTestClient()

	_, err := client.List(context.Background(), "abc", nil)

	var perr *params.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "project_id", perr.Param)
}

func TestRun_RequiresSpider(t *testing.T) {
	client, _ := newTestClient()

	_, err := client.Run(context.Background(), "123", nil)

	var perr *params.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "spider", perr.Param)
}

func TestRun_BuildsFormBody(t *testing.T) {
	client, transport := newTestClient()

	_, err := client.Run(context.Background(), "123", params.Pairs{
		params.P("spider", "quotes"),
		params.P("priority", 2),
		params.P("add_tag", []string{"nightly", "eu"}),
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, transport.req.Method)
	assert.Equal(t, "/api/run.json", transport.req.Path)
	assert.Empty(t, transport.req.Query)
	assert.Equal(t, params.Pairs{
		params.P("project", "123"),
		params.P("spider", "quotes"),
		params.P("priority", "2"),
		params.P("add_tag", "nightly"),
		params.P("add_tag", "eu"),
	}, transport.req.Body)
}

func TestUpdate_RequiresJob(t *testing.T) {
	client, _ := newTestClient()

	_, err := client.Update(context.Background(), "123", params.Pairs{
		params.P("add_tag", "done"),
	})

	var perr *params.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "job", perr.Param)
}

func TestDelete_BuildsBody(t *testing.T) {
	client, transport := newTestClient()

	_, err := client.Delete(context.Background(), "123", params.Pairs{
		params.P("job", "123/1/7"),
	})

	require.NoError(t, err)
	assert.Equal(t, "/api/jobs/delete.json", transport.req.Path)
	assert.Equal(t, params.Pairs{
		params.P("project", "123"),
		params.P("job", "123/1/7"),
	}, transport.req.Body)
}

func TestOperations(t *testing.T) {
	client, _ := newTestClient()
	assert.Equal(t, endpoint.ResourceJobs, client.Resource())
	assert.Contains(t, client.Operations(), "run")
}
