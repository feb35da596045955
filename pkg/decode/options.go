package decode

import (
	"strings"

	"github.com/samber/oops"
)

// UnknownFieldPolicy decides what happens to object keys the NVD schema does not declare.
type UnknownFieldPolicy int

const (
	// UnknownFieldsIgnore drops undeclared keys silently.
	UnknownFieldsIgnore UnknownFieldPolicy = iota
	// UnknownFieldsReject fails with UnknownField on the first undeclared key.
	UnknownFieldsReject
)

func (p UnknownFieldPolicy) String() string {
	if p == UnknownFieldsReject {
		return "reject"
	}
	return "ignore"
}

// ParseUnknownFieldPolicy accepts "ignore" or "reject", case-insensitively.
// An empty string selects the default, "ignore".
func ParseUnknownFieldPolicy(s string) (UnknownFieldPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return UnknownFieldsIgnore, nil
	case "reject":
		return UnknownFieldsReject, nil
	}
	return UnknownFieldsIgnore, oops.With("policy", s).Errorf("unknown field policy must be 'ignore' or 'reject'")
}

// Options configures a Decoder. The zero value ignores unknown fields and skips vector checks.
type Options struct {
	UnknownFields UnknownFieldPolicy

	// VerifyVectors cross-checks every CVSS metric against the vectorString of its block.
	VerifyVectors bool
}
