package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // danger / high tiers
	MediumColor = color.New(color.FgYellow)          // standard caution
	LowColor    = color.New(color.FgCyan)            // informational
	ImpactColor = color.New(color.FgMagenta, color.Bold)
)

// GetRiskLabel returns the risk tier label, colored when enabled.
func GetRiskLabel(tier schema.RiskTier, useColors bool) string {
	if !useColors {
		return string(tier)
	}
	switch tier {
	case schema.HighRisk:
		return HighColor.Sprint(string(tier))
	case schema.MediumRisk:
		return MediumColor.Sprint(string(tier))
	default:
		return LowColor.Sprint(string(tier))
	}
}

// GetSuitabilityLabel returns the suitability tier label, colored when
// enabled. High suitability is good news, so the palette inverts.
func GetSuitabilityLabel(tier schema.SuitabilityTier, useColors bool) string {
	if !useColors {
		return string(tier)
	}
	switch tier {
	case schema.HighSuitability:
		return LowColor.Sprint(string(tier))
	case schema.MediumSuitability:
		return MediumColor.Sprint(string(tier))
	default:
		return HighColor.Sprint(string(tier))
	}
}

// GetImpactLabel renders the independent high-impact marker.
func GetImpactLabel(highImpact bool, useColors bool) string {
	if !highImpact {
		return ""
	}
	if useColors {
		return ImpactColor.Sprint("High Impact")
	}
	return "High Impact"
}

// Clamp01 bounds a value to [0,1]. Scoring intermediates must never leave
// this range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp100 bounds a value to [0,100].
func Clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClassifyFile returns the extractor-supplied kind when present, otherwise
// falls back to path heuristics for tests, generated artifacts and
// configuration files.
func ClassifyFile(f *schema.FileNode) schema.FileKind {
	if f.Kind != "" {
		return f.Kind
	}
	path := strings.ToLower(f.Path)
	base := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		base = path[i+1:]
	}
	switch {
	case strings.Contains(base, "_test.") || strings.HasSuffix(base, ".spec.ts") || strings.HasSuffix(base, ".test.js"),
		strings.HasPrefix(path, "test/") || strings.Contains(path, "/test/") || strings.Contains(path, "/tests/"):
		return schema.TestKind
	case strings.Contains(base, ".gen.") || strings.HasSuffix(base, ".pb.go") || strings.Contains(path, "generated"):
		return schema.GeneratedKind
	case strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml") ||
		strings.HasSuffix(base, ".toml") || strings.HasSuffix(base, ".ini") || strings.HasSuffix(base, ".cfg"):
		return schema.ConfigKind
	default:
		return schema.SourceKind
	}
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if maxWidth > 3 && len(runes) > maxWidth {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning with an optional error.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
