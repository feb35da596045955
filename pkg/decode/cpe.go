package decode

import (
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

var (
	cpeItemKeys = []string{"name", "deprecated", "deprecation_date", "title", "references", "cpe23-item"}
	cpeRefsKeys = []string{"reference"}
	cpeRefKeys  = []string{"value", "href"}
	cpe23Keys   = []string{"name", "deprecation"}
	cpeDeprKeys = []string{"date", "deprecated-by"}
	cpeByKeys   = []string{"name", "type"}
)

func (d *Decoder) cpeItem(v any, p path) (types.CpeItem, error) {
	o := d.object(v, p, cpeItemKeys)
	item := types.CpeItem{
		Name:            field(o, "name", asString),
		Deprecated:      optional(o, "deprecated", asBool),
		DeprecationDate: optional(o, "deprecation_date", asString),
		Title:           field(o, "title", d.description),
		References:      field(o, "references", d.cpeReferences),
		Cpe23Item:       field(o, "cpe23-item", d.cpe23Item),
	}
	if o.err != nil {
		return types.CpeItem{}, o.err
	}
	return item, nil
}

// cpeReferences normalizes "reference", which the dictionary emits as a bare object
// when an item has exactly one reference.
func (d *Decoder) cpeReferences(v any, p path) (types.CpeReferences, error) {
	o := d.object(v, p, cpeRefsKeys)
	refs := types.CpeReferences{
		Reference: field(o, "reference", oneOrMany(d.cpeReference)),
	}
	if o.err != nil {
		return types.CpeReferences{}, o.err
	}
	return refs, nil
}

func (d *Decoder) cpeReference(v any, p path) (types.CpeReference, error) {
	o := d.object(v, p, cpeRefKeys)
	ref := types.CpeReference{
		Value: field(o, "value", asString),
		Href:  field(o, "href", asString),
	}
	if o.err != nil {
		return types.CpeReference{}, o.err
	}
	return ref, nil
}

func (d *Decoder) cpe23Item(v any, p path) (types.Cpe23Item, error) {
	o := d.object(v, p, cpe23Keys)
	item := types.Cpe23Item{
		Name:        field(o, "name", asString),
		Deprecation: optional(o, "deprecation", d.cpe23Deprecation),
	}
	if o.err != nil {
		return types.Cpe23Item{}, o.err
	}
	return item, nil
}

func (d *Decoder) cpe23Deprecation(v any, p path) (types.Cpe23Deprecation, error) {
	o := d.object(v, p, cpeDeprKeys)
	depr := types.Cpe23Deprecation{
		Date:         field(o, "date", asString),
		DeprecatedBy: field(o, "deprecated-by", d.deprecatedBy),
	}
	if o.err != nil {
		return types.Cpe23Deprecation{}, o.err
	}
	return depr, nil
}

func (d *Decoder) deprecatedBy(v any, p path) (types.DeprecatedBy, error) {
	o := d.object(v, p, cpeByKeys)
	by := types.DeprecatedBy{
		Name: field(o, "name", asString),
		Type: field(o, "type", asString),
	}
	if o.err != nil {
		return types.DeprecatedBy{}, o.err
	}
	return by, nil
}
