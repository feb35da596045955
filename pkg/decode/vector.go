package decode

import (
	"fmt"
	"strings"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"

	"github.com/aquasecurity/nvd-schema/pkg/types"
)

type vector interface {
	Get(abv string) (string, error)
}

// metric pairs a decoded enum field with its abbreviation in a CVSS vector.
// Every NVD enum value starts with the letter the vector uses for it,
// e.g. ADJACENT_NETWORK is AV:A and UNCHANGED is S:U.
type metric struct {
	key   string
	abv   string
	value string
}

func verifyV3(cvss types.CvssV3, p path) error {
	var (
		vec vector
		err error
	)
	switch {
	case strings.HasPrefix(cvss.VectorString, "CVSS:3.0/"):
		vec, err = parseV30(cvss.VectorString)
	case strings.HasPrefix(cvss.VectorString, "CVSS:3.1/"):
		vec, err = parseV31(cvss.VectorString)
	default:
		return invalidVector(p, "CVSS v3.0 or v3.1 vector", cvss.VectorString)
	}
	if err != nil {
		return invalidVector(p, "CVSS v3.0 or v3.1 vector", cvss.VectorString)
	}

	return verifyMetrics(vec, cvss.VectorString, p, []metric{
		{key: "attackVector", abv: "AV", value: string(cvss.AttackVector)},
		{key: "attackComplexity", abv: "AC", value: string(cvss.AttackComplexity)},
		{key: "privilegesRequired", abv: "PR", value: string(cvss.PrivilegesRequired)},
		{key: "userInteraction", abv: "UI", value: string(cvss.UserInteraction)},
		{key: "scope", abv: "S", value: string(cvss.Scope)},
		{key: "confidentialityImpact", abv: "C", value: string(cvss.ConfidentialityImpact)},
		{key: "integrityImpact", abv: "I", value: string(cvss.IntegrityImpact)},
		{key: "availabilityImpact", abv: "A", value: string(cvss.AvailabilityImpact)},
	})
}

func verifyV2(cvss types.CvssV2, p path) error {
	vec, err := gocvss20.ParseVector(cvss.VectorString)
	if err != nil {
		return invalidVector(p, "CVSS v2.0 vector", cvss.VectorString)
	}

	return verifyMetrics(vec, cvss.VectorString, p, []metric{
		{key: "accessVector", abv: "AV", value: string(cvss.AccessVector)},
		{key: "accessComplexity", abv: "AC", value: string(cvss.AccessComplexity)},
		{key: "authentication", abv: "Au", value: string(cvss.Authentication)},
		{key: "confidentialityImpact", abv: "C", value: string(cvss.ConfidentialityImpact)},
		{key: "integrityImpact", abv: "I", value: string(cvss.IntegrityImpact)},
		{key: "availabilityImpact", abv: "A", value: string(cvss.AvailabilityImpact)},
	})
}

func verifyMetrics(vec vector, raw string, p path, metrics []metric) error {
	for _, m := range metrics {
		got, err := vec.Get(m.abv)
		if err != nil {
			return invalidVector(p, "vector defining "+m.abv, raw)
		}
		if got != m.value[:1] {
			return &Error{
				Kind:     VectorMismatch,
				Path:     p.field(m.key).String(),
				Expected: fmt.Sprintf("value matching %s:%s of vectorString", m.abv, got),
				Actual:   m.value,
			}
		}
	}
	return nil
}

func invalidVector(p path, expected, actual string) error {
	return &Error{
		Kind:     VectorMismatch,
		Path:     p.field("vectorString").String(),
		Expected: expected,
		Actual:   actual,
	}
}

// The parsers return concrete pointers; wrapping them here keeps a nil result out of the interface.
func parseV30(s string) (vector, error) {
	v, err := gocvss30.ParseVector(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseV31(s string) (vector, error) {
	v, err := gocvss31.ParseVector(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}
