package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// FileKind classifies a file for the complexity analyzer.
	FileKind string

	// SkillLevel is the enumerated skill tier derived from a confidence value.
	SkillLevel string

	// SuitabilityTier is the coarse classification of a suitability score.
	SuitabilityTier string

	// RiskTier is the coarse classification of a risk score.
	RiskTier string

	// PathReason explains why a contribution path is shorter than requested.
	PathReason string

	// DatabaseBackend represents the database backend for result storage.
	DatabaseBackend string
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownCyclomatic  BreakdownKey = "cyclomatic"  // normalized cyclomatic count
	BreakdownNesting     BreakdownKey = "nesting"     // normalized nesting depth
	BreakdownSizePenalty BreakdownKey = "size"        // size penalty from lines of code
	BreakdownCentrality  BreakdownKey = "centrality"  // centrality factor in risk
	BreakdownComplexity  BreakdownKey = "complexity"  // complexity factor in risk
	BreakdownSkillGap    BreakdownKey = "skill_gap"   // 1 - skill confidence
	BreakdownSkill       BreakdownKey = "skill"       // skill confidence factor in suitability
	BreakdownEase        BreakdownKey = "ease"        // inverse adjusted complexity factor
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All file kinds supported. Only SourceKind files receive complexity scores.
const (
	SourceKind    FileKind = "source"
	TestKind      FileKind = "test"
	GeneratedKind FileKind = "generated"
	ConfigKind    FileKind = "config"
)

// All skill levels supported. NoSkill covers languages absent from a profile.
const (
	BeginnerLevel     SkillLevel = "beginner"
	IntermediateLevel SkillLevel = "intermediate"
	AdvancedLevel     SkillLevel = "advanced"
	ExpertLevel       SkillLevel = "expert"
	NoSkillLevel      SkillLevel = "none"
)

// Suitability tiers.
const (
	HighSuitability   SuitabilityTier = "High"
	MediumSuitability SuitabilityTier = "Medium"
	LowSuitability    SuitabilityTier = "Low"
)

// Risk tiers.
const (
	LowRisk    RiskTier = "Low"
	MediumRisk RiskTier = "Medium"
	HighRisk   RiskTier = "High"
)

// Path planner reason codes.
const (
	PathComplete     PathReason = "complete"      // target length was met
	PathShortfall    PathReason = "shortfall"     // fewer than MinPathLength candidates could be sequenced
	PathNoCandidates PathReason = "no_candidates" // the candidate set was empty
)

// All result store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Path planner sizing.
const (
	MinPathLength = 10
	MaxPathLength = 15
)

// Suitability threshold for path candidacy.
const PathCandidateThreshold = 0.6

// Centrality threshold for the independent high-impact flag.
const HighImpactThreshold = 80.0

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid result store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidConfidences lists the confidence values the profiling collaborator may supply.
var ValidConfidences = map[float64]struct{}{
	0.25: {},
	0.5:  {},
	0.75: {},
	1.0:  {},
}

// LevelForConfidence maps a profile confidence value to its skill level.
// Values outside the enumerated set resolve to NoSkillLevel; callers should
// have validated profiles before this point.
func LevelForConfidence(confidence float64) SkillLevel {
	switch confidence {
	case 0.25:
		return BeginnerLevel
	case 0.5:
		return IntermediateLevel
	case 0.75:
		return AdvancedLevel
	case 1.0:
		return ExpertLevel
	default:
		return NoSkillLevel
	}
}

// AdjustmentFactor returns the complexity rescaling factor for a skill level.
// The switch is exhaustive over the enumerated levels so a new level cannot
// be added without deciding its factor.
func AdjustmentFactor(level SkillLevel) float64 {
	switch level {
	case ExpertLevel:
		return 0.6
	case AdvancedLevel:
		return 0.75
	case IntermediateLevel:
		return 0.9
	case BeginnerLevel:
		return 1.0
	default: // NoSkillLevel
		return 1.2
	}
}

// GetDefaultComplexityWeights returns the default weight map for the
// complexity formula. Weights may be overridden from the config file.
func GetDefaultComplexityWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownCyclomatic:  0.4,
		BreakdownNesting:     0.3,
		BreakdownSizePenalty: 0.3,
	}
}

// GetDefaultRiskWeights returns the default weight map for the risk formula.
func GetDefaultRiskWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownCentrality: 0.4,
		BreakdownComplexity: 0.3,
		BreakdownSkillGap:   0.3,
	}
}
