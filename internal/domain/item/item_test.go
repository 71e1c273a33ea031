package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLines(t *testing.T) {
	body := []byte(`{"_key":"123/1/7/0","_ts":1609459200000,"title":"first"}
{"_key":"123/1/7/1","title":"second"}

`)

	items, err := DecodeLines(body)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "123/1/7/0", items[0].Key())
	assert.Equal(t, int64(1609459200000), items[0].Timestamp())
	assert.Equal(t, "first", items[0]["title"])

	assert.Equal(t, "123/1/7/1", items[1].Key())
	assert.Zero(t, items[1].Timestamp())
}

func TestDecodeLines_BadDocument(t *testing.T) {
	_, err := DecodeLines([]byte(`{"ok":1}` + "\n" + `{broken`))
	assert.Error(t, err)
}
