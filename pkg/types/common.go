package types

import "strings"

// Description is a language-tagged text, e.g. {"lang": "en", "value": "..."}.
// It is shared by CVE descriptions, CWE problem types and CPE titles.
type Description struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// FindDescription returns the first description in the given language with a non-empty value.
// When lang is empty, any language matches.
func FindDescription(descs []Description, lang string) (Description, bool) {
	for _, d := range descs {
		if d.Value == "" {
			continue
		}
		if lang == "" || strings.EqualFold(d.Lang, lang) {
			return d, true
		}
	}
	return Description{}, false
}
