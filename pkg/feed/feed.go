// Package feed reads NVD JSON feed documents and hands them to the schema-validating decoder.
package feed

import (
	"encoding/json"
	"io"
	"os"

	"github.com/samber/oops"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/nvd-schema/pkg/decode"
	"github.com/aquasecurity/nvd-schema/pkg/log"
	"github.com/aquasecurity/nvd-schema/pkg/override"
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

type Reader struct {
	decoder *decode.Decoder
	patches *override.Patches
	logger  *log.Logger
}

// NewReader returns a Reader decoding with the given decoder, or the default one when nil.
// patches may be nil.
func NewReader(decoder *decode.Decoder, patches *override.Patches) Reader {
	if decoder == nil {
		decoder = decode.New(decode.Options{})
	}
	return Reader{
		decoder: decoder,
		patches: patches,
		logger:  log.WithPrefix("nvd"),
	}
}

// LoadCveFeed reads a whole CVE feed from a local JSON file.
func (r Reader) LoadCveFeed(fileName string) (types.CveFeed, error) {
	eb := oops.With("file_name", fileName)

	f, err := os.Open(fileName)
	if err != nil {
		return types.CveFeed{}, eb.Wrapf(err, "file open error")
	}
	defer f.Close()

	r.logger.Debug("Loading NVD CVE feed", log.FilePath(fileName))
	feed, err := r.ReadCveFeed(f)
	if err != nil {
		return types.CveFeed{}, eb.Wrap(err)
	}
	return feed, nil
}

// ReadCveFeed parses and decodes a complete CVE feed document. Either every item
// decodes or an error is returned.
func (r Reader) ReadCveFeed(rd io.Reader) (types.CveFeed, error) {
	dec := json.NewDecoder(rd)
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return types.CveFeed{}, xerrors.Errorf("failed to parse NVD JSON: %w", err)
	}

	if root, ok := tree.(map[string]any); ok {
		if items, ok := root["CVE_Items"].([]any); ok {
			patched, err := r.patchAll(items, cveID)
			if err != nil {
				return types.CveFeed{}, err
			}
			root["CVE_Items"] = patched
		}
	}

	feed, err := r.decoder.CveFeed(tree)
	if err != nil {
		return types.CveFeed{}, xerrors.Errorf("failed to decode NVD CVE feed: %w", err)
	}

	r.checkCount(feed.NumberOfCVEs, len(feed.Items))
	r.logger.Debug("Decoded NVD CVE feed", log.Int("items", len(feed.Items)))
	return feed, nil
}

// checkCount warns when the header count disagrees with the items read.
// Overrides that remove records are one legitimate cause.
func (r Reader) checkCount(header, items int) {
	if header != items {
		r.logger.Warn("Item count differs from the feed header",
			log.Int("header", header), log.Int("items", items))
	}
}

func (r Reader) patchAll(records []any, idOf func(any) string) ([]any, error) {
	if r.patches.Count() == 0 {
		return records, nil
	}

	patched := make([]any, 0, len(records))
	for _, record := range records {
		record, keep, err := r.patch(record, idOf(record))
		if err != nil {
			return nil, err
		} else if !keep {
			continue
		}
		patched = append(patched, record)
	}
	return patched, nil
}

// patch applies the override registered for id, if any.
// keep is false when the override removes the record.
func (r Reader) patch(record any, id string) (any, bool, error) {
	p, ok, err := r.patches.Match(id)
	if err != nil {
		return nil, false, xerrors.Errorf("override match error: %w", err)
	} else if !ok {
		return record, true, nil
	}

	patched, keep, err := p.Apply(record)
	if err != nil {
		return nil, false, xerrors.Errorf("override apply error: %w", err)
	}
	return patched, keep, nil
}

// cveID digs cve.CVE_data_meta.ID out of an undecoded CVE item.
func cveID(record any) string {
	return lookupString(record, "cve", "CVE_data_meta", "ID")
}

// cpeName digs the name out of an undecoded CPE item.
func cpeName(record any) string {
	return lookupString(record, "name")
}

func lookupString(v any, keys ...string) string {
	for _, key := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return ""
		}
		v = m[key]
	}
	s, _ := v.(string)
	return s
}
