// Package extract loads the snapshot and skill profile inputs produced by
// the external extraction and profiling collaborators.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// LoadSnapshot reads and decodes a snapshot JSON file. The snapshot must
// carry an ID and at least one file record; everything else, including
// defective edges, is handled downstream by the graph builder.
func LoadSnapshot(path string) (*schema.Snapshot, error) {
	if path == "" {
		return nil, errors.New("snapshot path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap schema.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.ID == "" {
		return nil, fmt.Errorf("snapshot %s has no snapshot_id", path)
	}
	if len(snap.Files) == 0 {
		return nil, fmt.Errorf("snapshot %s has no files", path)
	}
	return &snap, nil
}

// LoadSkills reads and decodes a skill profile JSON file. An empty path
// yields an empty profile so analysis runs with everything at the no-skill
// default. Confidence values outside [0,1] are kept here and dropped with
// a diagnostic count during analysis.
func LoadSkills(path string) (*schema.SkillProfile, error) {
	if path == "" {
		return &schema.SkillProfile{Skills: map[string]float64{}}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill profile: %w", err)
	}
	var profile schema.SkillProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode skill profile %s: %w", path, err)
	}
	if profile.Skills == nil {
		profile.Skills = map[string]float64{}
	}
	return &profile, nil
}
