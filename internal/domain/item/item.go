// Package item holds the schemaless view of scraped items.
package item

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one scraped item. Fields are whatever the spider emitted, plus
// the storage metadata fields when they were requested via meta.
type Item map[string]any

// Key returns the _key metadata field, the item's full-form id.
func (i Item) Key() string {
	if k, ok := i["_key"].(string); ok {
		return k
	}
	return ""
}

// Timestamp returns the _ts metadata field in epoch milliseconds, zero
// when absent.
func (i Item) Timestamp() int64 {
	switch ts := i["_ts"].(type) {
	case float64:
		return int64(ts)
	case int64:
		return ts
	default:
		return 0
	}
}

// DecodeLines decodes a jsonlines body into items, one document per line.
func DecodeLines(body []byte) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var it Item
		if err := json.Unmarshal(line, &it); err != nil {
			return nil, fmt.Errorf("failed to decode item line: %w", err)
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
