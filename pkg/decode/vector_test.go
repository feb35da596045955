package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/nvd-schema/pkg/decode"
)

func TestDecoder_VerifyVectors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(feed map[string]any)
		wantPath string
		wantErr  string
	}{
		{
			name:   "consistent vectors",
			mutate: func(map[string]any) {},
		},
		{
			name: "v3.0 vector",
			mutate: func(feed map[string]any) {
				cvss := obj(feedItem(feed, 0), "impact", "baseMetricV3", "cvssV3")
				cvss["version"] = "3.0"
				cvss["vectorString"] = "CVSS:3.0/AV:L/AC:L/PR:L/UI:N/S:U/C:H/I:H/A:H"
			},
		},
		{
			name: "v3 attack vector disagrees",
			mutate: func(feed map[string]any) {
				obj(feedItem(feed, 0), "impact", "baseMetricV3", "cvssV3")["vectorString"] = "CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:U/C:H/I:H/A:H"
			},
			wantPath: "CVE_Items[0].impact.baseMetricV3.cvssV3.attackVector",
			wantErr:  `expected value matching AV:N of vectorString, got "LOCAL"`,
		},
		{
			name: "v3 scope disagrees",
			mutate: func(feed map[string]any) {
				obj(feedItem(feed, 0), "impact", "baseMetricV3", "cvssV3")["scope"] = "CHANGED"
			},
			wantPath: "CVE_Items[0].impact.baseMetricV3.cvssV3.scope",
		},
		{
			name: "v2 authentication disagrees",
			mutate: func(feed map[string]any) {
				obj(feedItem(feed, 0), "impact", "baseMetricV2", "cvssV2")["authentication"] = "SINGLE"
			},
			wantPath: "CVE_Items[0].impact.baseMetricV2.cvssV2.authentication",
		},
		{
			name: "unparsable v3 vector",
			mutate: func(feed map[string]any) {
				obj(feedItem(feed, 0), "impact", "baseMetricV3", "cvssV3")["vectorString"] = "CVSS:2.0/AV:L"
			},
			wantPath: "CVE_Items[0].impact.baseMetricV3.cvssV3.vectorString",
		},
		{
			name: "unparsable v2 vector",
			mutate: func(feed map[string]any) {
				obj(feedItem(feed, 0), "impact", "baseMetricV2", "cvssV2")["vectorString"] = "AV:L/AC:L"
			},
			wantPath: "CVE_Items[0].impact.baseMetricV2.cvssV2.vectorString",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := loadFeed(t)
			tt.mutate(feed)

			d := decode.New(decode.Options{VerifyVectors: true})
			_, err := d.CveFeed(feed)
			if tt.wantPath == "" {
				require.NoError(t, err)
				return
			}

			var decodeErr *decode.Error
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, decode.VectorMismatch, decodeErr.Kind)
			assert.Equal(t, tt.wantPath, decodeErr.Path)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDecoder_VerifyVectorsDisabled(t *testing.T) {
	feed := loadFeed(t)
	obj(feedItem(feed, 0), "impact", "baseMetricV3", "cvssV3")["vectorString"] = "not a vector"

	_, err := decode.CveFeed(feed)
	assert.NoError(t, err)
}
