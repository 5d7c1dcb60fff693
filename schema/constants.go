package schema

// Custom string types for type safety.
type (
	// RiskRating represents the risk level of a calculation record.
	RiskRating string

	// ChartID identifies one chart in the fixed dashboard set.
	ChartID string

	// ElementType tags the kind of chart element a resolution produced.
	ElementType string

	// FilterField names the record field a chart filter matches against.
	FilterField string

	// RankFilter selects which profiles enter the high-risk ranking.
	RankFilter string

	// RankSort selects the ordering of ranked members.
	RankSort string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for record storage.
	DatabaseBackend string
)

// All risk ratings supported.
const (
	HighRisk    RiskRating = "High Risk"
	MediumRisk  RiskRating = "Medium Risk"
	LowRisk     RiskRating = "Low Risk"
	UnknownRisk RiskRating = "Unknown"
)

// All chart identifiers supported. The identifier space is fixed; unknown
// identifiers resolve to nil handlers rather than errors.
const (
	DiseaseChart                  ChartID = "diseaseChart"
	RiskChart                     ChartID = "riskChart"
	RiskBreakdownChart            ChartID = "riskBreakdownChart"
	PeoplePerConditionChart       ChartID = "peoplePerConditionChart"
	MultipleDiseasesChart         ChartID = "multipleDiseasesChart"
	MultipleDiseasesDetailedChart ChartID = "multipleDiseasesDetailedChart"
	DiseaseCombinationsChart      ChartID = "diseaseCombinationsChart"
	MultipleDiseaseRiskChart      ChartID = "multipleDiseaseRiskChart"
	MultipleDiseaseSeverityChart  ChartID = "multipleDiseaseSeverityChart"
	CalculationTypeChart          ChartID = "calculationTypeChart"
	CalcTypePerDiseaseChart       ChartID = "calculationTypePerDiseaseChart"
	RecordsOverTimeChart          ChartID = "recordsOverTimeChart"
	CommonCalcTypesChart          ChartID = "commonCalcTypesChart"
	DiseaseCooccurrenceChart      ChartID = "diseaseCooccurrenceChart"
	RiskByCalcTypeChart           ChartID = "riskByCalcTypeChart"
	ProtocolUsageChart            ChartID = "protocolUsageChart"
	HighRiskAnalysisChart         ChartID = "highRiskAnalysisChart"
	DataEntryPatternsChart        ChartID = "dataEntryPatternsChart"
	RiskTrendChart                ChartID = "riskTrendChart"
	CalcEffectivenessChart        ChartID = "calcMethodEffectivenessChart"
	DiseaseSeverityChart          ChartID = "diseaseSeverityChart"
	RiskPerProtocolChart          ChartID = "riskPerProtocolChart"
	HighRiskDiabetesChart         ChartID = "highRiskDiabetesChart"
)

// All element types supported.
const (
	SliceElement   ElementType = "slice"
	BarElement     ElementType = "bar"
	PointElement   ElementType = "point"
	GenericElement ElementType = "element"
)

// All filterable record fields.
const (
	DiseaseField  FilterField = "diseaseProtocol"
	RiskField     FilterField = "riskRating"
	CalcTypeField FilterField = "riskCalculationType"
	DateField     FilterField = "dateCalculated"
)

// All ranking filters supported.
const (
	AllMembers       RankFilter = "all" // default
	MultipleDiseases RankFilter = "multiple_diseases"
	SingleDisease    RankFilter = "single_disease"
)

// All ranking sorts supported.
const (
	RiskDesc     RankSort = "risk_desc" // default
	RiskAsc      RankSort = "risk_asc"
	DiseasesDesc RankSort = "diseases_desc"
	DiseasesAsc  RankSort = "diseases_asc"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllChartIDs lists every chart in dashboard display order.
var AllChartIDs = []ChartID{
	DiseaseChart,
	RiskChart,
	RiskBreakdownChart,
	PeoplePerConditionChart,
	MultipleDiseasesChart,
	MultipleDiseasesDetailedChart,
	DiseaseCombinationsChart,
	MultipleDiseaseRiskChart,
	MultipleDiseaseSeverityChart,
	CalculationTypeChart,
	CalcTypePerDiseaseChart,
	RecordsOverTimeChart,
	CommonCalcTypesChart,
	DiseaseCooccurrenceChart,
	RiskByCalcTypeChart,
	ProtocolUsageChart,
	HighRiskAnalysisChart,
	DataEntryPatternsChart,
	RiskTrendChart,
	CalcEffectivenessChart,
	DiseaseSeverityChart,
	RiskPerProtocolChart,
	HighRiskDiabetesChart,
}

// RankedRiskLevels lists the known ratings in fixed dataset order. Cross-tab
// charts emit one dataset per entry, in this order.
var RankedRiskLevels = []RiskRating{HighRisk, MediumRisk, LowRisk}

// ValidChartIDs lists all valid chart identifiers.
var ValidChartIDs = func() map[ChartID]struct{} {
	m := make(map[ChartID]struct{}, len(AllChartIDs))
	for _, id := range AllChartIDs {
		m[id] = struct{}{}
	}
	return m
}()

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRiskRatings lists all valid risk ratings.
var ValidRiskRatings = map[RiskRating]struct{}{
	HighRisk:    {},
	MediumRisk:  {},
	LowRisk:     {},
	UnknownRisk: {},
}

// ValidRankFilters lists all valid ranking filters.
var ValidRankFilters = map[RankFilter]struct{}{
	AllMembers:       {},
	MultipleDiseases: {},
	SingleDisease:    {},
}

// ValidRankSorts lists all valid ranking sorts.
var ValidRankSorts = map[RankSort]struct{}{
	RiskDesc:     {},
	RiskAsc:      {},
	DiseasesDesc: {},
	DiseasesAsc:  {},
}

// SeverityScore maps a risk rating to its numeric severity.
// Unknown ratings score 1, same as Low.
func SeverityScore(r RiskRating) int {
	switch r {
	case HighRisk:
		return 3
	case MediumRisk:
		return 2
	default:
		return 1
	}
}

// RiskOrder returns the comparison weight used to pick the highest-severity
// rating present in a set. Higher wins; ties break High > Medium > Low.
func RiskOrder(r RiskRating) int {
	switch r {
	case HighRisk:
		return 3
	case MediumRisk:
		return 2
	case LowRisk:
		return 1
	default:
		return 0
	}
}
