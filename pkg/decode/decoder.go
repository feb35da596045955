// Package decode turns generic JSON trees into the typed NVD feed records of package types.
//
// Input is whatever a JSON or YAML parser yields for a document: map[string]any
// (or map[any]any), []any, string, bool, numbers and nil. Every fixed literal and
// closed enumeration is checked on the way in. Decoding stops at the first
// violation and returns an *Error naming the field path.
//
// A Decoder holds no mutable state and may be shared between goroutines.
package decode

import (
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

type Decoder struct {
	opts Options
}

func New(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

var defaultDecoder = New(Options{})

// CveFeed decodes v with the default options.
func CveFeed(v any) (types.CveFeed, error) {
	return defaultDecoder.CveFeed(v)
}

// CveItem decodes v with the default options.
func CveItem(v any) (types.CveItem, error) {
	return defaultDecoder.CveItem(v)
}

// CpeItem decodes v with the default options.
func CpeItem(v any) (types.CpeItem, error) {
	return defaultDecoder.CpeItem(v)
}

func (d *Decoder) CveFeed(v any) (types.CveFeed, error) {
	return d.cveFeed(v, "")
}

func (d *Decoder) CveItem(v any) (types.CveItem, error) {
	return d.cveItem(v, "")
}

// FeedItem decodes the index-th element of a feed's CVE_Items, reporting paths as
// CVE_Items[index].… so that errors line up with the whole document.
func (d *Decoder) FeedItem(v any, index int) (types.CveItem, error) {
	return d.cveItem(v, path("CVE_Items").index(index))
}

func (d *Decoder) Cve(v any) (types.Cve, error) {
	return d.cve(v, "")
}

func (d *Decoder) CveComment(v any) (types.CveComment, error) {
	return d.cveComment(v, "")
}

func (d *Decoder) CpeItem(v any) (types.CpeItem, error) {
	return d.cpeItem(v, "")
}

// CpeItems decodes a JSON array of CPE items; paths start with the element index, e.g. [2].title.
func (d *Decoder) CpeItems(v any) ([]types.CpeItem, error) {
	return listOf(d.cpeItem)(v, "")
}

// CpeListItem decodes the index-th element of a CPE item array with paths prefixed [index].
func (d *Decoder) CpeListItem(v any, index int) (types.CpeItem, error) {
	return d.cpeItem(v, path("").index(index))
}
