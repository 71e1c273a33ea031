package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureFormat_ScalarTagPassesThrough(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{P("format", "xml")})

	require.NoError(t, err)
	assert.Equal(t, "xml", set.Format)
	assert.Empty(t, set.CSVParams)
}

func TestConfigureFormat_CSVBlock(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{
		P("format", Pairs{P("csv", Pairs{P("fields", []string{"id"})})}),
	})

	require.NoError(t, err)
	assert.Equal(t, "csv", set.Format)
	assert.Equal(t, Pairs{P("fields", []string{"id"})}, set.CSVParams)
}

func TestConfigureFormat_CSVWithSiblingFails(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	misplaced := Pairs{
		P("csv", Pairs{P("fields", []string{"id"})}),
		P("sep", ","),
	}
	_, err := engine.Process(Pairs{P("format", misplaced)})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "format", perr.Param)
	assert.Contains(t, perr.Error(), "multiple values provided")
	// The message cites the literal misplaced structure, not a generic
	// bad-format complaint.
	assert.Contains(t, perr.Error(), "sep: ,")
}

func TestConfigureFormat_NonPairListFails(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	_, err := engine.Process(Pairs{P("format", []any{"csv", "xml"})})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "format", perr.Param)
	assert.Contains(t, perr.Error(), "unexpected list value")
}

func TestConfigureFormat_PairListWithoutCSVRejectedAsFormat(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	_, err := engine.Process(Pairs{P("format", Pairs{P("sep", ",")})})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "format", perr.Param)
	assert.Contains(t, perr.Error(), "must be one of")
}

func TestConfigureFormat_CSVWithoutFields(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	_, err := engine.Process(Pairs{
		P("format", Pairs{P("csv", Pairs{P("sep", ",")})}),
	})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "csv_param", perr.Param)
	assert.Contains(t, perr.Error(), "required attribute 'fields' not provided")
}

func TestConfigureFormat_DefaultApplied(t *testing.T) {
	engine, _ := newTestEngine(testPolicy())

	set, err := engine.Process(Pairs{})

	require.NoError(t, err)
	assert.Equal(t, "json", set.Format)
}
