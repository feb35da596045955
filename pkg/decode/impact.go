package decode

import (
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

var (
	impactKeys       = []string{"baseMetricV3", "baseMetricV2"}
	baseMetricV3Keys = []string{"cvssV3", "exploitabilityScore", "impactScore"}
	cvssV3Keys       = []string{"version", "vectorString", "attackVector", "attackComplexity",
		"privilegesRequired", "userInteraction", "scope", "confidentialityImpact",
		"integrityImpact", "availabilityImpact", "baseScore", "baseSeverity"}
	baseMetricV2Keys = []string{"cvssV2", "severity", "exploitabilityScore", "impactScore",
		"acInsufInfo", "obtainAllPrivilege", "obtainUserPrivilege", "obtainOtherPrivilege",
		"userInteractionRequired"}
	cvssV2Keys = []string{"version", "vectorString", "accessVector", "accessComplexity",
		"authentication", "confidentialityImpact", "integrityImpact", "availabilityImpact", "baseScore"}
)

func (d *Decoder) impact(v any, p path) (types.Impact, error) {
	o := d.object(v, p, impactKeys)
	impact := types.Impact{
		BaseMetricV3: optional(o, "baseMetricV3", d.baseMetricV3),
		BaseMetricV2: optional(o, "baseMetricV2", d.baseMetricV2),
	}
	if o.err != nil {
		return types.Impact{}, o.err
	}
	return impact, nil
}

func (d *Decoder) baseMetricV3(v any, p path) (types.BaseMetricV3, error) {
	o := d.object(v, p, baseMetricV3Keys)
	metric := types.BaseMetricV3{
		CvssV3:              field(o, "cvssV3", d.cvssV3),
		ExploitabilityScore: field(o, "exploitabilityScore", asNumber),
		ImpactScore:         field(o, "impactScore", asNumber),
	}
	if o.err != nil {
		return types.BaseMetricV3{}, o.err
	}
	return metric, nil
}

func (d *Decoder) cvssV3(v any, p path) (types.CvssV3, error) {
	o := d.object(v, p, cvssV3Keys)
	cvss := types.CvssV3{
		Version:               field(o, "version", asString),
		VectorString:          field(o, "vectorString", asString),
		AttackVector:          enum(o, "attackVector", types.AttackVectors),
		AttackComplexity:      enum(o, "attackComplexity", types.AttackComplexities),
		PrivilegesRequired:    enum(o, "privilegesRequired", types.PrivilegesRequireds),
		UserInteraction:       enum(o, "userInteraction", types.UserInteractions),
		Scope:                 enum(o, "scope", types.Scopes),
		ConfidentialityImpact: enum(o, "confidentialityImpact", types.ImpactsV3),
		IntegrityImpact:       enum(o, "integrityImpact", types.ImpactsV3),
		AvailabilityImpact:    enum(o, "availabilityImpact", types.ImpactsV3),
		BaseScore:             field(o, "baseScore", asNumber),
		BaseSeverity:          enum(o, "baseSeverity", types.SeveritiesV3),
	}
	if o.err != nil {
		return types.CvssV3{}, o.err
	}

	if d.opts.VerifyVectors {
		if err := verifyV3(cvss, p); err != nil {
			return types.CvssV3{}, err
		}
	}
	return cvss, nil
}

func (d *Decoder) baseMetricV2(v any, p path) (types.BaseMetricV2, error) {
	o := d.object(v, p, baseMetricV2Keys)
	metric := types.BaseMetricV2{
		CvssV2:                  field(o, "cvssV2", d.cvssV2),
		Severity:                enum(o, "severity", types.SeveritiesV2),
		ExploitabilityScore:     field(o, "exploitabilityScore", asNumber),
		ImpactScore:             field(o, "impactScore", asNumber),
		AcInsufInfo:             field(o, "acInsufInfo", asBool),
		ObtainAllPrivilege:      field(o, "obtainAllPrivilege", asBool),
		ObtainUserPrivilege:     field(o, "obtainUserPrivilege", asBool),
		ObtainOtherPrivilege:    field(o, "obtainOtherPrivilege", asBool),
		UserInteractionRequired: field(o, "userInteractionRequired", asBool),
	}
	if o.err != nil {
		return types.BaseMetricV2{}, o.err
	}
	return metric, nil
}

func (d *Decoder) cvssV2(v any, p path) (types.CvssV2, error) {
	o := d.object(v, p, cvssV2Keys)
	cvss := types.CvssV2{
		Version:               field(o, "version", asString),
		VectorString:          field(o, "vectorString", asString),
		AccessVector:          enum(o, "accessVector", types.AccessVectors),
		AccessComplexity:      enum(o, "accessComplexity", types.AccessComplexities),
		Authentication:        enum(o, "authentication", types.Authentications),
		ConfidentialityImpact: enum(o, "confidentialityImpact", types.ImpactsV2),
		IntegrityImpact:       enum(o, "integrityImpact", types.ImpactsV2),
		AvailabilityImpact:    enum(o, "availabilityImpact", types.ImpactsV2),
		BaseScore:             field(o, "baseScore", asNumber),
	}
	if o.err != nil {
		return types.CvssV2{}, o.err
	}

	if d.opts.VerifyVectors {
		if err := verifyV2(cvss, p); err != nil {
			return types.CvssV2{}, err
		}
	}
	return cvss, nil
}
