package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_ExpandsGroupsAndLists(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{
		P("format", Pairs{P("csv", Pairs{
			P("fields", []string{"id", "title"}),
			P("include_headers", 1),
		})}),
		P("meta", []string{"_key", "_ts"}),
		P("nodata", true),
		P("pagination", Pairs{P("count", 3), P("index", []int{1, 2})}),
		P("spider", "quotes"),
	})
	require.NoError(t, err)

	flat, err := set.Flatten()
	require.NoError(t, err)
	assert.Equal(t, Pairs{
		P("format", "csv"),
		P("fields", "id"),
		P("fields", "title"),
		P("include_headers", "1"),
		P("meta", "_key"),
		P("meta", "_ts"),
		P("nodata", "1"),
		P("count", "3"),
		P("index", "1"),
		P("index", "2"),
		P("spider", "quotes"),
	}, flat)
}

func TestFlatten_DropsAbsentAndEmpty(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{P("spider", "")})
	require.NoError(t, err)

	flat, err := set.Flatten()
	require.NoError(t, err)
	// Only the default format survives; the empty spider and the empty
	// pagination block contribute nothing.
	assert.Equal(t, Pairs{P("format", "json")}, flat)
}

func TestFlatten_ErrorShortCircuits(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, perr := engine.Process(Pairs{P("format", "yaml")})
	require.Error(t, perr)

	flat, err := set.Flatten()
	assert.Nil(t, flat)
	assert.Equal(t, perr, err)

	_, err = set.Encode()
	assert.Equal(t, perr, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{
		P("format", "xml"),
		P("pagination", Pairs{P("count", 3)}),
	})
	require.NoError(t, err)

	encoded, err := set.Encode()
	require.NoError(t, err)

	decoded, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"format": {"xml"},
		"count":  {"3"},
	}, decoded)
}

func TestEncode_RepeatedKeyMultiplicitySurvives(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{
		P("pagination", Pairs{P("index", 1), P("index", 2), P("index", []int{3, 4})}),
	})
	require.NoError(t, err)

	values, err := set.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, values["index"])
}

func TestProcess_ReprocessingFlattenedOutputIsStable(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{
		P("format", "xml"),
		P("pagination", Pairs{P("count", 3)}),
	})
	require.NoError(t, err)

	flat, err := set.Flatten()
	require.NoError(t, err)

	again, err := engine.Process(flat)
	require.NoError(t, err)

	flatAgain, err := again.Flatten()
	require.NoError(t, err)
	assert.Equal(t, flat, flatAgain)
}
