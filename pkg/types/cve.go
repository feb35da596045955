package types

import (
	"strings"
	"time"
)

// CveFeed is the top-level container of an NVD CVE JSON feed.
type CveFeed struct {
	DataType     string    `json:"CVE_data_type"`
	DataFormat   string    `json:"CVE_data_format"`
	DataVersion  float64   `json:"CVE_data_version"`
	NumberOfCVEs int       `json:"CVE_data_numberOfCVEs"`
	Timestamp    string    `json:"CVE_data_timestamp"`
	Items        []CveItem `json:"CVE_Items"`
}

// CveItem is one vulnerability record of a feed.
type CveItem struct {
	Cve              Cve              `json:"cve"`
	Configurations   CpeConfiguration `json:"configurations"`
	Impact           *Impact          `json:"impact,omitempty"`
	PublishedDate    string           `json:"publishedDate"`
	LastModifiedDate string           `json:"lastModifiedDate"`
}

// ID returns the CVE ID, e.g. CVE-2020-0001
func (item CveItem) ID() string {
	return item.Cve.Meta.ID
}

func (item CveItem) Published() (time.Time, error) {
	return ParseTime(item.PublishedDate)
}

func (item CveItem) LastModified() (time.Time, error) {
	return ParseTime(item.LastModifiedDate)
}

type Cve struct {
	DataType    DataType       `json:"data_type"`
	DataFormat  DataFormat     `json:"data_format"`
	DataVersion string         `json:"data_version"`
	Meta        CveMetaData    `json:"CVE_data_meta"`
	ProblemType ProblemType    `json:"problemtype"`
	References  CveReferences  `json:"references"`
	Description CveDescription `json:"description"`
}

type CveMetaData struct {
	ID       string   `json:"ID"`
	Assigner Assigner `json:"ASSIGNER"`
}

type ProblemType struct {
	ProblemTypeData []ProblemTypeDataEntry `json:"problemtype_data"`
}

type ProblemTypeDataEntry struct {
	Description []Description `json:"description"`
}

// CWEs returns the CWE IDs of the problem type in feed order, e.g. ["CWE-79"].
// Placeholders such as NVD-CWE-Other and NVD-CWE-noinfo are skipped.
func (p ProblemType) CWEs() []string {
	var cwes []string
	for _, data := range p.ProblemTypeData {
		for _, d := range data.Description {
			if strings.HasPrefix(d.Value, "CWE-") {
				cwes = append(cwes, d.Value)
			}
		}
	}
	return cwes
}

type CveReferences struct {
	ReferenceData []CveReference `json:"reference_data"`
}

type CveReference struct {
	URL       string   `json:"url"`
	Name      string   `json:"name"`
	Refsource string   `json:"refsource"`
	Tags      []string `json:"tags"`
}

type CveDescription struct {
	DescriptionData []Description `json:"description_data"`
}

// CveComment is a vendor statement about a CVE.
type CveComment struct {
	Value        string  `json:"value"`
	CveName      string  `json:"cvename"`
	Organization string  `json:"organization"`
	LastModified string  `json:"lastmodified"` // YYYY-MM-DD
	Contributor  *string `json:"contributor,omitempty"`
}

// CpeConfiguration holds the applicability statements of a CVE.
type CpeConfiguration struct {
	DataVersion string                 `json:"CVE_data_version"`
	Nodes       []CpeConfigurationNode `json:"nodes"`
}

type CpeConfigurationNode struct {
	Operator Operator   `json:"operator"`
	CpeMatch []CpeMatch `json:"cpe_match"`
}

type CpeMatch struct {
	Vulnerable bool   `json:"vulnerable"`
	Cpe23URI   string `json:"cpe23Uri"`
}

// VulnerableCPEs returns the CPE 2.3 URIs flagged as vulnerable, in feed order.
func (c CpeConfiguration) VulnerableCPEs() []string {
	var cpes []string
	for _, node := range c.Nodes {
		for _, m := range node.CpeMatch {
			if m.Vulnerable {
				cpes = append(cpes, m.Cpe23URI)
			}
		}
	}
	return cpes
}

// Impact holds the CVSS scores of a CVE. Either block may be absent.
type Impact struct {
	BaseMetricV3 *BaseMetricV3 `json:"baseMetricV3,omitempty"`
	BaseMetricV2 *BaseMetricV2 `json:"baseMetricV2,omitempty"`
}

type BaseMetricV3 struct {
	CvssV3              CvssV3  `json:"cvssV3"`
	ExploitabilityScore float64 `json:"exploitabilityScore"`
	ImpactScore         float64 `json:"impactScore"`
}

type CvssV3 struct {
	Version               string             `json:"version"`
	VectorString          string             `json:"vectorString"`
	AttackVector          AttackVector       `json:"attackVector"`
	AttackComplexity      AttackComplexity   `json:"attackComplexity"`
	PrivilegesRequired    PrivilegesRequired `json:"privilegesRequired"`
	UserInteraction       UserInteraction    `json:"userInteraction"`
	Scope                 Scope              `json:"scope"`
	ConfidentialityImpact ImpactV3           `json:"confidentialityImpact"`
	IntegrityImpact       ImpactV3           `json:"integrityImpact"`
	AvailabilityImpact    ImpactV3           `json:"availabilityImpact"`
	BaseScore             float64            `json:"baseScore"`
	BaseSeverity          SeverityV3         `json:"baseSeverity"`
}

type BaseMetricV2 struct {
	CvssV2                  CvssV2     `json:"cvssV2"`
	Severity                SeverityV2 `json:"severity"`
	ExploitabilityScore     float64    `json:"exploitabilityScore"`
	ImpactScore             float64    `json:"impactScore"`
	AcInsufInfo             bool       `json:"acInsufInfo"`
	ObtainAllPrivilege      bool       `json:"obtainAllPrivilege"`
	ObtainUserPrivilege     bool       `json:"obtainUserPrivilege"`
	ObtainOtherPrivilege    bool       `json:"obtainOtherPrivilege"`
	UserInteractionRequired bool       `json:"userInteractionRequired"`
}

type CvssV2 struct {
	Version               string           `json:"version"`
	VectorString          string           `json:"vectorString"`
	AccessVector          AccessVector     `json:"accessVector"`
	AccessComplexity      AccessComplexity `json:"accessComplexity"`
	Authentication        Authentication   `json:"authentication"`
	ConfidentialityImpact ImpactV2         `json:"confidentialityImpact"`
	IntegrityImpact       ImpactV2         `json:"integrityImpact"`
	AvailabilityImpact    ImpactV2         `json:"availabilityImpact"`
	BaseScore             float64          `json:"baseScore"`
}
