package decode

import (
	"bytes"
	"encoding/json"

	"github.com/samber/oops"
)

// Encode converts a decoded value back into the generic tree form accepted by the decoder.
// Numbers come back as json.Number and CPE references always as an array.
func Encode(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, oops.Wrapf(err, "json encode error")
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var tree any
	if err = dec.Decode(&tree); err != nil {
		return nil, oops.Wrapf(err, "json decode error")
	}
	return tree, nil
}
