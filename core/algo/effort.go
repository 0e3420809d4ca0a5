package algo

import "math"

// Cognitive load weights and saturation points for effort estimation.
const (
	weightComplexity = 0.35
	weightDeps       = 0.25
	weightSize       = 0.20
	weightSkillGap   = 0.20

	maxEffortDeps = 10.0   // dependency count beyond this saturates
	maxEffortLOC  = 2000.0 // lines of code beyond this saturate
)

// EffortScore derives a 1-10 integer effort estimate from a candidate's
// cognitive load: complexity 35%, dependency count 25%, size 20%, skill
// gap 20%. The skill gap is 1 minus the user's confidence for the file's
// language.
func EffortScore(adjustedComplexity float64, depCount int, loc int, skillConfidence float64) int {
	load := weightComplexity*clamp01(adjustedComplexity/100) +
		weightDeps*clamp01(float64(depCount)/maxEffortDeps) +
		weightSize*clamp01(float64(loc)/maxEffortLOC) +
		weightSkillGap*clamp01(1-skillConfidence)

	return int(math.Round(clamp01(load)*9)) + 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
