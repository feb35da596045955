package feed

import (
	"bufio"
	"encoding/json"
	"io"
	"sync/atomic"

	"github.com/bcicen/jstream"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/nvd-schema/pkg/log"
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

const (
	cveItemsKey = "CVE_Items"
	// depth of the elements of a top-level CPE item array
	cpeItemDepth = 1
)

// WalkCveItems streams the CVE_Items of a feed document and calls fn with each decoded item,
// holding a single item in memory at a time. The remaining feed fields are validated once
// the document ends, so a feed is rejected exactly when ReadCveFeed rejects it.
// Walking stops at the first decode error or error from fn; items before it have
// already been passed to fn.
func (r Reader) WalkCveItems(rd io.Reader, fn func(types.CveItem) error) error {
	dec := json.NewDecoder(rd)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return xerrors.Errorf("failed to parse NVD JSON: %w", err)
	}
	if tok != json.Delim('{') {
		root, err := finishValue(dec, tok)
		if err != nil {
			return xerrors.Errorf("failed to parse NVD JSON: %w", err)
		}
		return r.checkHeader(root, 0)
	}

	var (
		header = make(map[string]any)
		count  int
	)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return xerrors.Errorf("failed to parse NVD JSON: %w", err)
		}
		key, _ := tok.(string)

		if tok, err = dec.Token(); err != nil {
			return xerrors.Errorf("failed to parse NVD JSON: %w", err)
		}

		if key != cveItemsKey || tok != json.Delim('[') {
			// Header fields and a malformed item list are checked with the rest of the feed
			if header[key], err = finishValue(dec, tok); err != nil {
				return xerrors.Errorf("failed to parse NVD JSON: %w", err)
			}
			continue
		}

		header[key] = []any{}
		if count, err = r.walkItems(dec, fn); err != nil {
			return err
		}
	}

	if _, err = dec.Token(); err != nil {
		return xerrors.Errorf("failed to parse NVD JSON: %w", err)
	}
	return r.checkHeader(header, count)
}

// walkItems decodes the elements of CVE_Items. The opening bracket has been consumed.
// It returns the number of items passed to fn.
func (r Reader) walkItems(dec *json.Decoder, fn func(types.CveItem) error) (int, error) {
	var count int
	for index := 0; dec.More(); index++ {
		var v any
		if err := dec.Decode(&v); err != nil {
			return 0, xerrors.Errorf("failed to parse NVD JSON: %w", err)
		}

		v, keep, err := r.patch(v, cveID(v))
		if err != nil {
			return 0, err
		} else if !keep {
			continue
		}

		item, err := r.decoder.FeedItem(v, index)
		if err != nil {
			return 0, xerrors.Errorf("failed to decode NVD CVE item: %w", err)
		}
		if err = fn(item); err != nil {
			return 0, err
		}
		count++
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return 0, xerrors.Errorf("failed to parse NVD JSON: %w", err)
	}
	return count, nil
}

// checkHeader validates everything but the items, which were decoded while streaming.
func (r Reader) checkHeader(header any, count int) error {
	feed, err := r.decoder.CveFeed(header)
	if err != nil {
		return xerrors.Errorf("failed to decode NVD CVE feed: %w", err)
	}
	r.checkCount(feed.NumberOfCVEs, count)
	return nil
}

// finishValue decodes the rest of a value whose first token has already been read.
func finishValue(dec *json.Decoder, tok json.Token) (any, error) {
	switch tok {
	case json.Delim('{'):
		m := make(map[string]any)
		for dec.More() {
			key, err := dec.Token()
			if err != nil {
				return nil, err
			}
			var v any
			if err = dec.Decode(&v); err != nil {
				return nil, err
			}
			m[key.(string)] = v
		}
		_, err := dec.Token()
		return m, err
	case json.Delim('['):
		a := make([]any, 0)
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			a = append(a, v)
		}
		_, err := dec.Token()
		return a, err
	}
	return tok, nil
}

// ReadCveItems streams the CVE_Items of a feed document. Either every item decodes
// or an error is returned.
func (r Reader) ReadCveItems(rd io.Reader) ([]types.CveItem, error) {
	items := make([]types.CveItem, 0)
	err := r.WalkCveItems(rd, func(item types.CveItem) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Decoded NVD CVE items", log.Int("items", len(items)))
	return items, nil
}

// ReadCpeItems streams a JSON array of CPE dictionary items. Either every item decodes
// or an error is returned.
func (r Reader) ReadCpeItems(rd io.Reader) ([]types.CpeItem, error) {
	br := bufio.NewReader(rd)
	first, err := firstByte(br)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse CPE JSON: %w", err)
	}
	if first != '[' {
		// Not a list: let the decoder report the root as it does for a whole document
		return r.readCpeDocument(br)
	}

	items := make([]types.CpeItem, 0)
	err = stream(br, cpeItemDepth, func(v any, index int) error {
		v, keep, err := r.patch(v, cpeName(v))
		if err != nil {
			return err
		} else if !keep {
			return nil
		}

		item, err := r.decoder.CpeListItem(v, index)
		if err != nil {
			return xerrors.Errorf("failed to decode CPE item: %w", err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Decoded CPE items", log.Int("items", len(items)))
	return items, nil
}

func (r Reader) readCpeDocument(rd io.Reader) ([]types.CpeItem, error) {
	dec := json.NewDecoder(rd)
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, xerrors.Errorf("failed to parse CPE JSON: %w", err)
	}

	items, err := r.decoder.CpeItems(tree)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode CPE items: %w", err)
	}
	return items, nil
}

// firstByte returns the first non-whitespace byte of br without consuming it.
func firstByte(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b, br.UnreadByte()
	}
}

// haltReader lets a stream be abandoned early. Once halted it reports EOF, so the
// jstream decoder runs out of input and closes its channel instead of parsing the
// rest of the document. jstream panics on any other read error.
type haltReader struct {
	r      io.Reader
	halted atomic.Bool
}

func (h *haltReader) Read(p []byte) (int, error) {
	if h.halted.Load() {
		return 0, io.EOF
	}
	return h.r.Read(p)
}

// stream calls fn with every value found at depth, along with its position.
// It stops at the first error returned by fn.
func stream(rd io.Reader, depth int, fn func(v any, index int) error) error {
	hr := &haltReader{r: rd}
	decoder := jstream.NewDecoder(hr, depth)

	var (
		index int
		fnErr error
	)
	for mv := range decoder.Stream() {
		if fnErr != nil {
			continue // drain
		}
		if fnErr = fn(mv.Value, index); fnErr != nil {
			hr.halted.Store(true)
		}
		index++
	}

	if fnErr != nil {
		return fnErr
	}
	if err := decoder.Err(); err != nil {
		return xerrors.Errorf("failed to parse CPE JSON: %w", err)
	}
	return nil
}
