package types

// Fixed literals

type DataType string

type DataFormat string

type Assigner string

const (
	DataTypeCVE     DataType   = "CVE"
	DataFormatMITRE DataFormat = "MITRE"
	AssignerMITRE   Assigner   = "cve@mitre.org"
)

// CPE configuration

type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// CVSS v3

type AttackVector string

const (
	AttackVectorAdjacentNetwork AttackVector = "ADJACENT_NETWORK"
	AttackVectorLocal           AttackVector = "LOCAL"
	AttackVectorNetwork         AttackVector = "NETWORK"
	AttackVectorPhysical        AttackVector = "PHYSICAL"
)

type AttackComplexity string

const (
	AttackComplexityHigh AttackComplexity = "HIGH"
	AttackComplexityLow  AttackComplexity = "LOW"
)

type PrivilegesRequired string

const (
	PrivilegesRequiredHigh PrivilegesRequired = "HIGH"
	PrivilegesRequiredLow  PrivilegesRequired = "LOW"
	PrivilegesRequiredNone PrivilegesRequired = "NONE"
)

type UserInteraction string

const (
	UserInteractionNone     UserInteraction = "NONE"
	UserInteractionRequired UserInteraction = "REQUIRED"
)

type Scope string

const (
	ScopeChanged   Scope = "CHANGED"
	ScopeUnchanged Scope = "UNCHANGED"
)

// ImpactV3 is the confidentiality, integrity or availability impact of a v3 score.
type ImpactV3 string

const (
	ImpactV3High ImpactV3 = "HIGH"
	ImpactV3Low  ImpactV3 = "LOW"
	ImpactV3None ImpactV3 = "NONE"
)

type SeverityV3 string

const (
	SeverityV3Critical SeverityV3 = "CRITICAL"
	SeverityV3High     SeverityV3 = "HIGH"
	SeverityV3Medium   SeverityV3 = "MEDIUM"
	SeverityV3Low      SeverityV3 = "LOW"
)

// CVSS v2

type AccessVector string

const (
	AccessVectorAdjacentNetwork AccessVector = "ADJACENT_NETWORK"
	AccessVectorLocal           AccessVector = "LOCAL"
	AccessVectorNetwork         AccessVector = "NETWORK"
)

type AccessComplexity string

const (
	AccessComplexityHigh   AccessComplexity = "HIGH"
	AccessComplexityMedium AccessComplexity = "MEDIUM"
	AccessComplexityLow    AccessComplexity = "LOW"
)

type Authentication string

const (
	AuthenticationMultiple Authentication = "MULTIPLE"
	AuthenticationSingle   Authentication = "SINGLE"
	AuthenticationNone     Authentication = "NONE"
)

// ImpactV2 is the confidentiality, integrity or availability impact of a v2 score.
type ImpactV2 string

const (
	ImpactV2Complete ImpactV2 = "COMPLETE"
	ImpactV2None     ImpactV2 = "NONE"
	ImpactV2Partial  ImpactV2 = "PARTIAL"
)

type SeverityV2 string

const (
	SeverityV2High   SeverityV2 = "HIGH"
	SeverityV2Low    SeverityV2 = "LOW"
	SeverityV2Medium SeverityV2 = "MEDIUM"
)

// Permitted values of each enumeration, in the order the NVD schema lists them.
var (
	Operators           = []Operator{OperatorAnd, OperatorOr}
	AttackVectors       = []AttackVector{AttackVectorAdjacentNetwork, AttackVectorLocal, AttackVectorNetwork, AttackVectorPhysical}
	AttackComplexities  = []AttackComplexity{AttackComplexityHigh, AttackComplexityLow}
	PrivilegesRequireds = []PrivilegesRequired{PrivilegesRequiredHigh, PrivilegesRequiredLow, PrivilegesRequiredNone}
	UserInteractions    = []UserInteraction{UserInteractionNone, UserInteractionRequired}
	Scopes              = []Scope{ScopeChanged, ScopeUnchanged}
	ImpactsV3           = []ImpactV3{ImpactV3High, ImpactV3Low, ImpactV3None}
	SeveritiesV3        = []SeverityV3{SeverityV3Critical, SeverityV3High, SeverityV3Medium, SeverityV3Low}
	AccessVectors       = []AccessVector{AccessVectorAdjacentNetwork, AccessVectorLocal, AccessVectorNetwork}
	AccessComplexities  = []AccessComplexity{AccessComplexityHigh, AccessComplexityMedium, AccessComplexityLow}
	Authentications     = []Authentication{AuthenticationMultiple, AuthenticationSingle, AuthenticationNone}
	ImpactsV2           = []ImpactV2{ImpactV2Complete, ImpactV2None, ImpactV2Partial}
	SeveritiesV2        = []SeverityV2{SeverityV2High, SeverityV2Low, SeverityV2Medium}
)
