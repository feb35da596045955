package decode_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/aquasecurity/nvd-schema/pkg/decode"
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

var (
	apacheHTTPServer = types.CpeItem{
		Name: "cpe:/a:apache:http_server:2.4.41",
		Title: types.Description{
			Lang:  "en-US",
			Value: "Apache Software Foundation Apache HTTP Server 2.4.41",
		},
		References: types.CpeReferences{
			Reference: []types.CpeReference{
				{
					Value: "Change Log",
					Href:  "https://archive.apache.org/dist/httpd/CHANGES_2.4.41",
				},
			},
		},
		Cpe23Item: types.Cpe23Item{
			Name: "cpe:2.3:a:apache:http_server:2.4.41:*:*:*:*:*:*:*",
		},
	}

	cms1024 = types.CpeItem{
		Name:            "cpe:/a:1024cms:1024_cms:0.7",
		Deprecated:      lo.ToPtr(true),
		DeprecationDate: lo.ToPtr("2021-04-06T15:29:56.990Z"),
		Title: types.Description{
			Lang:  "en-US",
			Value: "1024cms.org 1024 CMS 0.7",
		},
		References: types.CpeReferences{
			Reference: []types.CpeReference{
				{
					Value: "Product",
					Href:  "http://www.1024cms.org/",
				},
				{
					Value: "Advisory",
					Href:  "https://www.exploit-db.com/exploits/11283",
				},
			},
		},
		Cpe23Item: types.Cpe23Item{
			Name: "cpe:2.3:a:1024cms:1024_cms:0.7:*:*:*:*:*:*:*",
			Deprecation: &types.Cpe23Deprecation{
				Date: "2021-04-06T15:29:56.990Z",
				DeprecatedBy: types.DeprecatedBy{
					Name: "cpe:2.3:a:1024cms:1024cms:0.7:*:*:*:*:*:*:*",
					Type: "NAME_CORRECTION",
				},
			},
		},
	}
)

func TestDecoder_CpeItems(t *testing.T) {
	d := decode.New(decode.Options{UnknownFields: decode.UnknownFieldsReject})
	got, err := d.CpeItems(loadJSON(t, "testdata/cpe-items.json"))
	require.NoError(t, err)
	assert.Equal(t, []types.CpeItem{apacheHTTPServer, cms1024}, got)

	assert.False(t, got[0].IsDeprecated())
	assert.True(t, got[1].IsDeprecated())
}

func TestDecoder_CpeItem_References(t *testing.T) {
	single := map[string]any{"value": "Vendor", "href": "https://example.com/vendor"}
	second := map[string]any{"value": "Advisory", "href": "https://example.com/advisory"}

	tests := []struct {
		name      string
		reference any
		want      []types.CpeReference
		wantPath  string
	}{
		{
			name:      "single object",
			reference: single,
			want: []types.CpeReference{
				{Value: "Vendor", Href: "https://example.com/vendor"},
			},
		},
		{
			name:      "one element array",
			reference: []any{single},
			want: []types.CpeReference{
				{Value: "Vendor", Href: "https://example.com/vendor"},
			},
		},
		{
			name:      "array keeps order",
			reference: []any{second, single},
			want: []types.CpeReference{
				{Value: "Advisory", Href: "https://example.com/advisory"},
				{Value: "Vendor", Href: "https://example.com/vendor"},
			},
		},
		{
			name:      "empty array",
			reference: []any{},
			want:      []types.CpeReference{},
		},
		{
			name:      "bad element in array",
			reference: []any{single, map[string]any{"value": "No link"}},
			wantPath:  "references.reference[1].href",
		},
		{
			name:      "bad single object",
			reference: map[string]any{"href": "https://example.com"},
			wantPath:  "references.reference.value",
		},
		{
			name:      "string",
			reference: "https://example.com",
			wantPath:  "references.reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]any{
				"name":       "cpe:/a:example:product:1.0",
				"title":      map[string]any{"lang": "en-US", "value": "Example Product 1.0"},
				"references": map[string]any{"reference": tt.reference},
				"cpe23-item": map[string]any{"name": "cpe:2.3:a:example:product:1.0:*:*:*:*:*:*:*"},
			}

			got, err := decode.CpeItem(input)
			if tt.wantPath != "" {
				var decodeErr *decode.Error
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, tt.wantPath, decodeErr.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.References.Reference)
			assert.Nil(t, got.Deprecated)
			assert.Nil(t, got.DeprecationDate)
			assert.Nil(t, got.Cpe23Item.Deprecation)
		})
	}
}

func TestDecoder_CpeItems_Violations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(items []any)
		wantKind decode.Kind
		wantPath string
	}{
		{
			name: "deprecated as string",
			mutate: func(items []any) {
				items[1].(map[string]any)["deprecated"] = "true"
			},
			wantKind: decode.TypeMismatch,
			wantPath: "[1].deprecated",
		},
		{
			name: "missing superseding name",
			mutate: func(items []any) {
				delete(obj(items[1], "cpe23-item", "deprecation", "deprecated-by"), "name")
			},
			wantKind: decode.MissingField,
			wantPath: "[1].cpe23-item.deprecation.deprecated-by.name",
		},
		{
			name: "title as list",
			mutate: func(items []any) {
				items[0].(map[string]any)["title"] = []any{}
			},
			wantKind: decode.TypeMismatch,
			wantPath: "[0].title",
		},
		{
			name: "missing cpe23-item",
			mutate: func(items []any) {
				delete(items[0].(map[string]any), "cpe23-item")
			},
			wantKind: decode.MissingField,
			wantPath: "[0].cpe23-item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := loadJSON(t, "testdata/cpe-items.json").([]any)
			tt.mutate(items)

			_, err := decode.New(decode.Options{}).CpeItems(items)
			var decodeErr *decode.Error
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.wantKind, decodeErr.Kind)
			assert.Equal(t, tt.wantPath, decodeErr.Path)
		})
	}
}

func TestDecoder_CpeItem_YAMLTree(t *testing.T) {
	doc := `
name: cpe:/a:apache:http_server:2.4.41
title:
  lang: en-US
  value: Apache Software Foundation Apache HTTP Server 2.4.41
references:
  reference:
    value: Change Log
    href: https://archive.apache.org/dist/httpd/CHANGES_2.4.41
cpe23-item:
  name: "cpe:2.3:a:apache:http_server:2.4.41:*:*:*:*:*:*:*"
`
	var tree any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &tree))
	require.IsType(t, map[any]any{}, tree)

	got, err := decode.CpeItem(tree)
	require.NoError(t, err)
	assert.Equal(t, apacheHTTPServer, got)
}

func TestDecoder_CpeItem_YAMLNonStringKey(t *testing.T) {
	var tree any
	require.NoError(t, yaml.Unmarshal([]byte("1: one\n"), &tree))

	_, err := decode.CpeItem(tree)
	assert.True(t, decode.IsKind(err, decode.TypeMismatch))
}

func TestEncode_CpeRoundTrip(t *testing.T) {
	first, err := decode.New(decode.Options{}).CpeItems(loadJSON(t, "testdata/cpe-items.json"))
	require.NoError(t, err)

	tree, err := decode.Encode(first)
	require.NoError(t, err)

	// single references come back as arrays
	refs := obj(tree.([]any)[0], "references")["reference"]
	assert.IsType(t, []any{}, refs)

	second, err := decode.New(decode.Options{}).CpeItems(tree)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
