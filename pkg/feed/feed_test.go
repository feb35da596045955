package feed_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/nvd-schema/pkg/decode"
	"github.com/aquasecurity/nvd-schema/pkg/feed"
	"github.com/aquasecurity/nvd-schema/pkg/override"
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

func open(t *testing.T, fileName string) *os.File {
	t.Helper()

	f, err := os.Open(fileName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func loadPatches(t *testing.T) *override.Patches {
	t.Helper()

	patches, err := override.Load("testdata/overrides")
	require.NoError(t, err)
	return patches
}

func TestReader_ReadCveFeed(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		withPatches bool
		wantIDs     []string
		wantKind    decode.Kind
		wantPath    string
	}{
		{
			name:     "happy path",
			fileName: "testdata/cve-feed.json",
			wantIDs:  []string{"CVE-2020-0001", "CVE-2020-0002"},
		},
		{
			name:        "upstream feed corrected by overrides",
			fileName:    "testdata/upstream-feed.json",
			withPatches: true,
			wantIDs:     []string{"CVE-2020-0001", "CVE-2020-0002"},
		},
		{
			name:     "upstream feed without overrides",
			fileName: "testdata/upstream-feed.json",
			wantKind: decode.LiteralViolation,
			wantPath: "CVE_Items[0].cve.CVE_data_meta.ASSIGNER",
		},
		{
			name:     "invalid second item",
			fileName: "testdata/invalid-item.json",
			wantKind: decode.LiteralViolation,
			wantPath: "CVE_Items[1].cve.data_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patches *override.Patches
			if tt.withPatches {
				patches = loadPatches(t)
			}
			r := feed.NewReader(nil, patches)

			got, err := r.ReadCveFeed(open(t, tt.fileName))
			if tt.wantKind != 0 {
				var de *decode.Error
				require.ErrorAs(t, err, &de)
				assert.Equal(t, tt.wantKind, de.Kind)
				assert.Equal(t, tt.wantPath, de.Path)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "CVE", got.DataType)
			assert.Equal(t, 2, got.NumberOfCVEs)

			var ids []string
			for _, item := range got.Items {
				ids = append(ids, item.ID())
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestReader_LoadCveFeed(t *testing.T) {
	r := feed.NewReader(nil, nil)

	got, err := r.LoadCveFeed("testdata/cve-feed.json")
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	_, err = r.LoadCveFeed("testdata/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file open error")

	_, err = r.LoadCveFeed("testdata/invalid-item.json")
	assert.True(t, decode.IsKind(err, decode.LiteralViolation))
}

func TestReader_StreamingMatchesWholeDocument(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		withPatches bool
	}{
		{
			name:     "plain feed",
			fileName: "testdata/cve-feed.json",
		},
		{
			name:        "patched feed",
			fileName:    "testdata/upstream-feed.json",
			withPatches: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patches *override.Patches
			if tt.withPatches {
				patches = loadPatches(t)
			}
			r := feed.NewReader(decode.New(decode.Options{VerifyVectors: true}), patches)

			whole, err := r.ReadCveFeed(open(t, tt.fileName))
			require.NoError(t, err)

			streamed, err := r.ReadCveItems(open(t, tt.fileName))
			require.NoError(t, err)

			assert.Equal(t, whole.Items, streamed)
		})
	}
}

func TestReader_WalkCveItems(t *testing.T) {
	t.Run("stops at the first invalid item", func(t *testing.T) {
		r := feed.NewReader(nil, nil)

		var seen []string
		err := r.WalkCveItems(open(t, "testdata/invalid-item.json"), func(item types.CveItem) error {
			seen = append(seen, item.ID())
			return nil
		})

		var de *decode.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "CVE_Items[1].cve.data_format", de.Path)
		assert.Equal(t, []string{"CVE-2020-0001"}, seen)
	})

	t.Run("stops when the callback fails", func(t *testing.T) {
		r := feed.NewReader(nil, nil)
		errStop := errors.New("stop")

		var calls int
		err := r.WalkCveItems(open(t, "testdata/cve-feed.json"), func(types.CveItem) error {
			calls++
			return errStop
		})
		require.ErrorIs(t, err, errStop)
		assert.Equal(t, 1, calls)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		r := feed.NewReader(nil, nil)

		err := r.WalkCveItems(strings.NewReader(`{"CVE_Items": [{"cve": `), func(types.CveItem) error {
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse NVD JSON")
	})
}

func TestReader_ReadCveItems(t *testing.T) {
	r := feed.NewReader(nil, nil)

	got, err := r.ReadCveItems(open(t, "testdata/invalid-item.json"))
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestReader_ReadCpeItems(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		withPatches bool
		wantNames   []string
		wantErr     bool
	}{
		{
			name:      "happy path",
			fileName:  "testdata/cpe-items.json",
			wantNames: []string{"cpe:/a:apache:http_server:2.4.41", "cpe:/a:1024cms:1024_cms:0.7"},
		},
		{
			name:        "bogus item removed by override",
			fileName:    "testdata/upstream-cpe-items.json",
			withPatches: true,
			wantNames:   []string{"cpe:/a:apache:http_server:2.4.41", "cpe:/a:1024cms:1024_cms:0.7"},
		},
		{
			name:     "bogus item without overrides",
			fileName: "testdata/upstream-cpe-items.json",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patches *override.Patches
			if tt.withPatches {
				patches = loadPatches(t)
			}
			r := feed.NewReader(nil, patches)

			got, err := r.ReadCpeItems(open(t, tt.fileName))
			if tt.wantErr {
				var de *decode.Error
				require.ErrorAs(t, err, &de)
				assert.Equal(t, decode.MissingField, de.Kind)
				assert.True(t, strings.HasPrefix(de.Path, "[2]."), de.Path)
				return
			}

			require.NoError(t, err)
			var names []string
			for _, item := range got {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.True(t, got[1].IsDeprecated())
		})
	}
}
