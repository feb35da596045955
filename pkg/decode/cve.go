package decode

import (
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

// Declared keys per object, used by UnknownFieldsReject.
var (
	cveFeedKeys = []string{"CVE_data_type", "CVE_data_format", "CVE_data_version",
		"CVE_data_numberOfCVEs", "CVE_data_timestamp", "CVE_Items"}
	cveItemKeys       = []string{"cve", "configurations", "impact", "publishedDate", "lastModifiedDate"}
	cveKeys           = []string{"data_type", "data_format", "data_version", "CVE_data_meta", "problemtype", "references", "description"}
	cveMetaKeys       = []string{"ID", "ASSIGNER"}
	problemTypeKeys   = []string{"problemtype_data"}
	problemDataKeys   = []string{"description"}
	cveReferencesKeys = []string{"reference_data"}
	cveReferenceKeys  = []string{"url", "name", "refsource", "tags"}
	cveDescKeys       = []string{"description_data"}
	descriptionKeys   = []string{"lang", "value"}
	cveCommentKeys    = []string{"value", "cvename", "organization", "lastmodified", "contributor"}
	configurationKeys = []string{"CVE_data_version", "nodes"}
	nodeKeys          = []string{"operator", "cpe_match"}
	cpeMatchKeys      = []string{"vulnerable", "cpe23Uri"}
)

func (d *Decoder) cveFeed(v any, p path) (types.CveFeed, error) {
	o := d.object(v, p, cveFeedKeys)
	feed := types.CveFeed{
		DataType:     field(o, "CVE_data_type", asString),
		DataFormat:   field(o, "CVE_data_format", asString),
		DataVersion:  field(o, "CVE_data_version", asNumeric),
		NumberOfCVEs: field(o, "CVE_data_numberOfCVEs", asCount),
		Timestamp:    field(o, "CVE_data_timestamp", asString),
		Items:        field(o, "CVE_Items", listOf(d.cveItem)),
	}
	if o.err != nil {
		return types.CveFeed{}, o.err
	}
	return feed, nil
}

func (d *Decoder) cveItem(v any, p path) (types.CveItem, error) {
	o := d.object(v, p, cveItemKeys)
	item := types.CveItem{
		Cve:              field(o, "cve", d.cve),
		Configurations:   field(o, "configurations", d.cpeConfiguration),
		Impact:           optional(o, "impact", d.impact),
		PublishedDate:    field(o, "publishedDate", asString),
		LastModifiedDate: field(o, "lastModifiedDate", asString),
	}
	if o.err != nil {
		return types.CveItem{}, o.err
	}
	return item, nil
}

func (d *Decoder) cve(v any, p path) (types.Cve, error) {
	o := d.object(v, p, cveKeys)
	cve := types.Cve{
		DataType:    literal(o, "data_type", types.DataTypeCVE),
		DataFormat:  literal(o, "data_format", types.DataFormatMITRE),
		DataVersion: field(o, "data_version", asString),
		Meta:        field(o, "CVE_data_meta", d.cveMeta),
		ProblemType: field(o, "problemtype", d.problemType),
		References:  field(o, "references", d.cveReferences),
		Description: field(o, "description", d.cveDescription),
	}
	if o.err != nil {
		return types.Cve{}, o.err
	}
	return cve, nil
}

func (d *Decoder) cveMeta(v any, p path) (types.CveMetaData, error) {
	o := d.object(v, p, cveMetaKeys)
	meta := types.CveMetaData{
		ID:       field(o, "ID", asString),
		Assigner: literal(o, "ASSIGNER", types.AssignerMITRE),
	}
	if o.err != nil {
		return types.CveMetaData{}, o.err
	}
	return meta, nil
}

func (d *Decoder) problemType(v any, p path) (types.ProblemType, error) {
	o := d.object(v, p, problemTypeKeys)
	pt := types.ProblemType{
		ProblemTypeData: field(o, "problemtype_data", listOf(d.problemTypeData)),
	}
	if o.err != nil {
		return types.ProblemType{}, o.err
	}
	return pt, nil
}

func (d *Decoder) problemTypeData(v any, p path) (types.ProblemTypeDataEntry, error) {
	o := d.object(v, p, problemDataKeys)
	entry := types.ProblemTypeDataEntry{
		Description: field(o, "description", listOf(d.description)),
	}
	if o.err != nil {
		return types.ProblemTypeDataEntry{}, o.err
	}
	return entry, nil
}

func (d *Decoder) cveReferences(v any, p path) (types.CveReferences, error) {
	o := d.object(v, p, cveReferencesKeys)
	refs := types.CveReferences{
		ReferenceData: field(o, "reference_data", listOf(d.cveReference)),
	}
	if o.err != nil {
		return types.CveReferences{}, o.err
	}
	return refs, nil
}

func (d *Decoder) cveReference(v any, p path) (types.CveReference, error) {
	o := d.object(v, p, cveReferenceKeys)
	ref := types.CveReference{
		URL:       field(o, "url", asString),
		Name:      field(o, "name", asString),
		Refsource: field(o, "refsource", asString),
		Tags:      field(o, "tags", listOf(asString)),
	}
	if o.err != nil {
		return types.CveReference{}, o.err
	}
	return ref, nil
}

func (d *Decoder) cveDescription(v any, p path) (types.CveDescription, error) {
	o := d.object(v, p, cveDescKeys)
	desc := types.CveDescription{
		DescriptionData: field(o, "description_data", listOf(d.description)),
	}
	if o.err != nil {
		return types.CveDescription{}, o.err
	}
	return desc, nil
}

func (d *Decoder) description(v any, p path) (types.Description, error) {
	o := d.object(v, p, descriptionKeys)
	desc := types.Description{
		Lang:  field(o, "lang", asString),
		Value: field(o, "value", asString),
	}
	if o.err != nil {
		return types.Description{}, o.err
	}
	return desc, nil
}

func (d *Decoder) cveComment(v any, p path) (types.CveComment, error) {
	o := d.object(v, p, cveCommentKeys)
	comment := types.CveComment{
		Value:        field(o, "value", asString),
		CveName:      field(o, "cvename", asString),
		Organization: field(o, "organization", asString),
		LastModified: field(o, "lastmodified", asString),
		Contributor:  optional(o, "contributor", asString),
	}
	if o.err != nil {
		return types.CveComment{}, o.err
	}
	return comment, nil
}

func (d *Decoder) cpeConfiguration(v any, p path) (types.CpeConfiguration, error) {
	o := d.object(v, p, configurationKeys)
	conf := types.CpeConfiguration{
		DataVersion: field(o, "CVE_data_version", asString),
		Nodes:       field(o, "nodes", listOf(d.configurationNode)),
	}
	if o.err != nil {
		return types.CpeConfiguration{}, o.err
	}
	return conf, nil
}

func (d *Decoder) configurationNode(v any, p path) (types.CpeConfigurationNode, error) {
	o := d.object(v, p, nodeKeys)
	node := types.CpeConfigurationNode{
		Operator: enum(o, "operator", types.Operators),
		CpeMatch: field(o, "cpe_match", listOf(d.cpeMatch)),
	}
	if o.err != nil {
		return types.CpeConfigurationNode{}, o.err
	}
	return node, nil
}

func (d *Decoder) cpeMatch(v any, p path) (types.CpeMatch, error) {
	o := d.object(v, p, cpeMatchKeys)
	m := types.CpeMatch{
		Vulnerable: field(o, "vulnerable", asBool),
		Cpe23URI:   field(o, "cpe23Uri", asString),
	}
	if o.err != nil {
		return types.CpeMatch{}, o.err
	}
	return m, nil
}
