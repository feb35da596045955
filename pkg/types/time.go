package types

import (
	"time"

	"github.com/samber/oops"
)

// Layouts seen in NVD feeds, most common first:
// * 2019-01-01T00:00Z (publishedDate, lastModifiedDate)
// * 2020-04-22T07:00:03Z
// * 2020-04-22T07:00:03.123-04:00
// * 2007-09-14T17:36:49.090 (CPE deprecation dates)
// * 2019-10-02 (vendor comments)
var timeLayouts = []string{
	"2006-01-02T15:04Z",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses an NVD timestamp. Values without a zone are UTC.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, oops.With("value", value).Errorf("unknown timestamp layout")
}
