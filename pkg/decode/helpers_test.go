package decode_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadJSON(t *testing.T, filePath string) any {
	t.Helper()

	b, err := os.ReadFile(filePath)
	require.NoError(t, err)

	var tree any
	require.NoError(t, json.Unmarshal(b, &tree))
	return tree
}

func loadFeed(t *testing.T) map[string]any {
	t.Helper()
	return loadJSON(t, "testdata/cve-feed.json").(map[string]any)
}

func obj(v any, keys ...string) map[string]any {
	m := v.(map[string]any)
	for _, k := range keys {
		m = m[k].(map[string]any)
	}
	return m
}

func feedItem(feed map[string]any, i int) map[string]any {
	return feed["CVE_Items"].([]any)[i].(map[string]any)
}
