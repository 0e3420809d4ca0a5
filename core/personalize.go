package core

import (
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// Perceived-difficulty weighting between skill confidence and ease.
const (
	suitabilityConfidenceWeight = 0.6
	suitabilityEaseWeight       = 0.4
)

// personalizeOutput carries the per-file skill adjustment results.
type personalizeOutput struct {
	Confidence float64
	Level      schema.SkillLevel
	Adjusted   float64
	Suitable   float64
}

// personalize maps a file's complexity through the user's skill in its
// language. A confident user sees a lower adjusted complexity; a user
// with no skill entry sees it inflated. Suitability combines confidence
// with the ease implied by the adjusted score.
func personalize(profile *schema.SkillProfile, language string, complexity float64) personalizeOutput {
	conf := profile.Confidence(language)
	level := schema.LevelForConfidence(conf)
	adjusted := contract.Clamp100(complexity * schema.AdjustmentFactor(level))
	suitable := contract.Clamp01(conf*suitabilityConfidenceWeight + ((100-adjusted)/100)*suitabilityEaseWeight)
	return personalizeOutput{
		Confidence: conf,
		Level:      level,
		Adjusted:   adjusted,
		Suitable:   suitable,
	}
}

// sanitizeProfile drops skill entries whose confidence is not one of the
// enumerated values and reports how many were discarded. An off-enum
// confidence would resolve to the no-skill level while still earning skill
// credit in the suitability blend. A nil profile yields an empty one so
// every lookup falls back to the no-skill default.
func sanitizeProfile(profile *schema.SkillProfile) (*schema.SkillProfile, int) {
	if profile == nil {
		return &schema.SkillProfile{Skills: map[string]float64{}}, 0
	}
	clean := &schema.SkillProfile{UserID: profile.UserID, Skills: make(map[string]float64, len(profile.Skills))}
	dropped := 0
	for lang, conf := range profile.Skills {
		if _, ok := schema.ValidConfidences[conf]; !ok {
			dropped++
			continue
		}
		clean.Skills[lang] = conf
	}
	return clean, dropped
}
