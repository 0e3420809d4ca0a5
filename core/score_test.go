package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

func defaultFile(loc, cyclomatic, nesting int) *schema.FileNode {
	return &schema.FileNode{
		Path:        "pkg/thing.go",
		Language:    "go",
		LinesOfCode: loc,
		Functions: []schema.FunctionMetrics{
			{Name: "run", Cyclomatic: cyclomatic, Nesting: nesting},
		},
	}
}

func TestSizePenalty(t *testing.T) {
	assert.Equal(t, 0.0, sizePenalty(0))
	assert.Equal(t, 0.0, sizePenalty(500))
	assert.InDelta(t, 0.25, sizePenalty(1000), 1e-9)
	assert.Equal(t, 1.0, sizePenalty(2500))
	assert.Equal(t, 1.0, sizePenalty(100000))
}

func TestComputeComplexityBounds(t *testing.T) {
	weights := schema.GetDefaultComplexityWeights()

	empty := defaultFile(0, 0, 0)
	assert.Equal(t, 0.0, computeComplexity(empty, weights, nil))

	// Saturated on every factor still caps at 100.
	monster := defaultFile(10000, 500, 40)
	assert.Equal(t, 100.0, computeComplexity(monster, weights, nil))
}

func TestComputeComplexitySizeMatters(t *testing.T) {
	weights := schema.GetDefaultComplexityWeights()

	small := defaultFile(400, 10, 4)
	large := defaultFile(1200, 10, 4)
	assert.Greater(t, computeComplexity(large, weights, nil),
		computeComplexity(small, weights, nil),
		"same structure in a much larger file must score higher")
}

func TestComputeComplexityBreakdown(t *testing.T) {
	weights := schema.GetDefaultComplexityWeights()
	breakdown := make(map[schema.BreakdownKey]float64)

	f := defaultFile(1500, 15, 5)
	score := computeComplexity(f, weights, breakdown)

	sum := breakdown[schema.BreakdownCyclomatic] +
		breakdown[schema.BreakdownNesting] +
		breakdown[schema.BreakdownSizePenalty]
	assert.InDelta(t, score, sum, 1e-9, "factor contributions must sum to the score")
}

func TestPersonalizeAdjustment(t *testing.T) {
	expert := &schema.SkillProfile{UserID: "dev", Skills: map[string]float64{"go": 1.0}}
	stranger := &schema.SkillProfile{UserID: "dev", Skills: map[string]float64{}}

	out := personalize(expert, "go", 80)
	assert.Equal(t, schema.ExpertLevel, out.Level)
	assert.InDelta(t, 48.0, out.Adjusted, 1e-9)

	out = personalize(stranger, "go", 80)
	assert.Equal(t, schema.NoSkillLevel, out.Level)
	assert.InDelta(t, 96.0, out.Adjusted, 1e-9)

	// Inflation clamps at 100.
	out = personalize(stranger, "go", 95)
	assert.Equal(t, 100.0, out.Adjusted)
}

func TestPersonalizeSuitability(t *testing.T) {
	profile := &schema.SkillProfile{UserID: "dev", Skills: map[string]float64{"go": 0.75}}

	out := personalize(profile, "go", 40)
	// adjusted = 40 * 0.75 = 30; suitability = 0.75*0.6 + 0.7*0.4
	assert.InDelta(t, 0.73, out.Suitable, 1e-9)

	// Higher confidence never lowers suitability for the same complexity.
	levels := []float64{0, 0.25, 0.5, 0.75, 1.0}
	prev := -1.0
	for _, conf := range levels {
		p := &schema.SkillProfile{Skills: map[string]float64{"go": conf}}
		s := personalize(p, "go", 60).Suitable
		assert.GreaterOrEqual(t, s, prev, "suitability must be monotonic in confidence")
		prev = s
	}
}

func TestComputeRisk(t *testing.T) {
	weights := schema.GetDefaultRiskWeights()

	assert.Equal(t, 0.0, computeRisk(0, 0, 1.0, weights, nil))
	assert.Equal(t, 1.0, computeRisk(100, 100, 0, weights, nil))

	// 0.4*0.9 + 0.3*0.5 + 0.3*0.75
	got := computeRisk(90, 50, 0.25, weights, nil)
	assert.InDelta(t, 0.735, got, 1e-9)
}

func TestComputeRiskBreakdown(t *testing.T) {
	weights := schema.GetDefaultRiskWeights()
	breakdown := make(map[schema.BreakdownKey]float64)

	computeRisk(80, 60, 0.5, weights, breakdown)
	assert.InDelta(t, 0.8, breakdown[schema.BreakdownCentrality], 1e-9)
	assert.InDelta(t, 0.6, breakdown[schema.BreakdownComplexity], 1e-9)
	assert.InDelta(t, 0.5, breakdown[schema.BreakdownSkillGap], 1e-9)
}

func TestSanitizeProfile(t *testing.T) {
	clean, dropped := sanitizeProfile(nil)
	assert.NotNil(t, clean.Skills)
	assert.Zero(t, dropped)

	messy := &schema.SkillProfile{
		UserID: "dev",
		Skills: map[string]float64{"go": 0.75, "rust": -0.5, "python": 1.5, "ts": 0.6},
	}
	clean, dropped = sanitizeProfile(messy)
	assert.Equal(t, 3, dropped)
	assert.Equal(t, map[string]float64{"go": 0.75}, clean.Skills)
}

func TestSanitizeProfileEnforcesEnumeratedConfidences(t *testing.T) {
	// An in-range but off-enum confidence resolves to the no-skill level yet
	// would still earn skill credit in the suitability blend, so a less
	// confident user could outrank a more confident one. Sanitization must
	// drop it entirely.
	profile := &schema.SkillProfile{UserID: "dev", Skills: map[string]float64{"go": 0.6}}
	clean, dropped := sanitizeProfile(profile)
	assert.Equal(t, 1, dropped)
	assert.Empty(t, clean.Skills)

	intermediate := &schema.SkillProfile{Skills: map[string]float64{"go": 0.5}}
	sanitized := personalize(clean, "go", 70).Suitable
	valid := personalize(intermediate, "go", 70).Suitable
	assert.LessOrEqual(t, sanitized, valid,
		"a dropped off-enum entry must score as no-skill, below any valid confidence")
}
