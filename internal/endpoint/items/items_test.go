package items

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

func TestList_FullPipeline(t *testing.T) {
	client, transport := newTestClient()

	_, err := client.List(context.Background(), "123/1/7", params.Pairs{
		params.P("format", params.Pairs{params.P("csv", params.Pairs{
			params.P("fields", []string{"id", "title"}),
		})}),
		params.P("no_data", false),
		params.P("pagination", params.Pairs{params.P("count", 50)}),
	})

	require.NoError(t, err)
	assert.Equal(t, "/items/123/1/7", transport.req.Path)
	assert.Equal(t, params.Pairs{
		params.P("format", "csv"),
		params.P("fields", "id"),
		params.P("fields", "title"),
		params.P("nodata", "0"),
		params.P("count", "50"),
	}, transport.req.Query)
}

func TestList_RejectsBadStorageID(t *testing.T) {
	client, _ := newTestClient()

	for _, id := range []string{"", "a/1/7", "1/2/3/4/5"} {
		_, err := client.List(context.Background(), id, nil)

		var perr *params.Error
		require.ErrorAs(t, err, &perr, "id %q", id)
		assert.Equal(t, "id", perr.Param)
	}
}

func TestField_BuildsPathFromValidatedExtras(t *testing.T) {
	client, transport := newTestClient()

	_, err := client.Field(context.Background(), "123/1/7", params.Pairs{
		params.P("item_index", 4),
		params.P("field_name", "title"),
	})

	require.NoError(t, err)
	assert.Equal(t, "/items/123/1/7/4/title", transport.req.Path)
	// item_index and field_name are spent on the path, not the query.
	assert.Equal(t, params.Pairs{params.P("format", "json")}, transport.req.Query)
}

func TestField_RequiresItemIndex(t *testing.T) {
	client, _ := newTestClient()

	_, err := client.Field(context.Background(), "123/1/7", nil)

	var perr *params.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "item_index", perr.Param)
}

func TestField_RequiresFullJobID(t *testing.T) {
	client, _ := newTestClient()

	_, err := client.Field(context.Background(), "123/1", params.Pairs{
		params.P("item_index", 0),
	})

	var perr *params.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "id", perr.Param)
}

func TestField_NoDataStaysNativeBoolean(t *testing.T) {
	client, transport := newTestClient()

	_, err := client.Field(context.Background(), "123/1/7", params.Pairs{
		params.P("item_index", 4),
		params.P("nodata", true),
	})

	require.NoError(t, err)
	assert.Contains(t, transport.req.Query, params.P("nodata", "true"))

	_, err = client.Field(context.Background(), "123/1/7", params.Pairs{
		params.P("item_index", 4),
		params.P("nodata", 1),
	})
	var perr *params.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "nodata", perr.Param)
}
