package schema

// SuitabilityTierFor classifies a suitability value. The boundaries are
// inclusive on the Medium side: 0.4 and 0.7 are both Medium.
func SuitabilityTierFor(suitability float64) SuitabilityTier {
	switch {
	case suitability > 0.7:
		return HighSuitability
	case suitability >= 0.4:
		return MediumSuitability
	default:
		return LowSuitability
	}
}

// RiskTierFor classifies a risk score. The boundaries are inclusive on the
// Medium side: 0.4 and 0.7 are both Medium.
func RiskTierFor(riskScore float64) RiskTier {
	switch {
	case riskScore > 0.7:
		return HighRisk
	case riskScore >= 0.4:
		return MediumRisk
	default:
		return LowRisk
	}
}

// EffortBucketFor maps a 1-10 effort score into its hour range.
func EffortBucketFor(effortScore int) EffortBucket {
	switch {
	case effortScore <= 3:
		return EffortShort
	case effortScore <= 7:
		return EffortMedium
	default:
		return EffortLong
	}
}

// IsExcludedKind reports whether a file kind is excluded from complexity
// scoring and all downstream ranking.
func IsExcludedKind(kind FileKind) bool {
	switch kind {
	case TestKind, GeneratedKind, ConfigKind:
		return true
	default:
		return false
	}
}
