package types

// CpeItem is an entry of the CPE dictionary.
type CpeItem struct {
	Name            string        `json:"name"`
	Deprecated      *bool         `json:"deprecated,omitempty"`
	DeprecationDate *string       `json:"deprecation_date,omitempty"`
	Title           Description   `json:"title"`
	References      CpeReferences `json:"references"`
	Cpe23Item       Cpe23Item     `json:"cpe23-item"`
}

// IsDeprecated reports whether the item is flagged deprecated, either on the item itself
// or through the deprecation block of its 2.3 name.
func (item CpeItem) IsDeprecated() bool {
	if item.Deprecated != nil && *item.Deprecated {
		return true
	}
	return item.Cpe23Item.Deprecation != nil
}

// CpeReferences always holds a list; the feed may carry a single object instead.
type CpeReferences struct {
	Reference []CpeReference `json:"reference"`
}

type CpeReference struct {
	Value string `json:"value"`
	Href  string `json:"href"`
}

type Cpe23Item struct {
	Name        string            `json:"name"`
	Deprecation *Cpe23Deprecation `json:"deprecation,omitempty"`
}

type Cpe23Deprecation struct {
	Date         string       `json:"date"`
	DeprecatedBy DeprecatedBy `json:"deprecated-by"`
}

// DeprecatedBy names the CPE superseding a deprecated one.
type DeprecatedBy struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
