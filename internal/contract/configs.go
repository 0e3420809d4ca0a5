package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strings"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers for the
// per-file metrics fan-out.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a prefix is supplied.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// WeightsRawInput holds custom scoring weight overrides from the config
// file. Only overridden fields are set; use float64 pointers for optional
// fields.
type WeightsRawInput struct {
	Complexity *ComplexityWeightsRaw `mapstructure:"complexity"`
	Risk       *RiskWeightsRaw       `mapstructure:"risk"`
}

// ComplexityWeightsRaw holds custom weights for the complexity formula.
type ComplexityWeightsRaw struct {
	Cyclomatic *float64 `mapstructure:"cyclomatic"`
	Nesting    *float64 `mapstructure:"nesting"`
	Size       *float64 `mapstructure:"size"`
}

// RiskWeightsRaw holds custom weights for the risk formula.
type RiskWeightsRaw struct {
	Centrality *float64 `mapstructure:"centrality"`
	Complexity *float64 `mapstructure:"complexity"`
	SkillGap   *float64 `mapstructure:"skill_gap"`
}

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	SnapshotPath string // Path to the extraction collaborator's snapshot JSON
	SkillsPath   string // Path to the profiling collaborator's skills JSON
	UserID       string // User to personalize for; overrides the skills file when set

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Explain     bool
	Detail      bool
	NoCache     bool // Skip the memoized result cache and force a fresh run
	Width       int  // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	// ComplexityWeights is the final weight map for the complexity formula,
	// computed from defaults plus config overrides.
	ComplexityWeights map[schema.BreakdownKey]float64

	// RiskWeights is the final weight map for the risk formula.
	RiskWeights map[schema.BreakdownKey]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	// Positional argument, set manually, so no tag
	SnapshotPathStr string

	Skills       string `mapstructure:"skills"`
	User         string `mapstructure:"user"`
	Limit        int    `mapstructure:"limit"`
	Workers      int    `mapstructure:"workers"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Explain      bool   `mapstructure:"explain"`
	Detail       bool   `mapstructure:"detail"`
	NoCache      bool   `mapstructure:"no-cache"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
	Emoji        string `mapstructure:"emoji"`
	CacheBackend string `mapstructure:"cache-backend"`
	CacheConnect string `mapstructure:"cache-db-connect"`
	RunBackend   string `mapstructure:"run-backend"`
	RunConnect   string `mapstructure:"run-db-connect"`

	Weights *WeightsRawInput `mapstructure:"weights"`
}

// BuildConfig validates the raw input and produces the final Config.
func BuildConfig(input *ConfigRawInput) (*Config, error) {
	cfg := &Config{
		SnapshotPath:   input.SnapshotPathStr,
		SkillsPath:     input.Skills,
		UserID:         input.User,
		ResultLimit:    input.Limit,
		Workers:        input.Workers,
		Precision:      input.Precision,
		OutputFile:     input.OutputFile,
		Explain:        input.Explain,
		Detail:         input.Detail,
		NoCache:        input.NoCache,
		Width:          input.Width,
		CacheDBConnect: input.CacheConnect,
		RunDBConnect:   input.RunConnect,
	}

	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.ResultLimit > MaxResultLimit {
		return nil, fmt.Errorf("limit cannot exceed %d results", MaxResultLimit)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	output := schema.OutputMode(strings.ToLower(input.Output))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return nil, fmt.Errorf("invalid output mode %q: must be text, csv, json, or parquet", input.Output)
	}
	cfg.Output = output

	cacheBackend, err := ParseBackend(input.CacheBackend, schema.SQLiteBackend)
	if err != nil {
		return nil, fmt.Errorf("invalid cache backend: %w", err)
	}
	cfg.CacheBackend = cacheBackend

	runBackend, err := ParseBackend(input.RunBackend, schema.NoneBackend)
	if err != nil {
		return nil, fmt.Errorf("invalid run backend: %w", err)
	}
	cfg.RunBackend = runBackend

	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return nil, fmt.Errorf("invalid cache backend connection: %w", err)
	}
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return nil, fmt.Errorf("invalid run backend connection: %w", err)
	}

	cfg.UseColors = parseBoolFlag(input.Color, true)
	cfg.UseEmojis = parseBoolFlag(input.Emoji, true)

	cfg.ComplexityWeights = schema.GetDefaultComplexityWeights()
	cfg.RiskWeights = schema.GetDefaultRiskWeights()
	if input.Weights != nil {
		applyWeightOverrides(cfg, input.Weights)
	}
	if err := validateWeights(cfg.ComplexityWeights, "complexity"); err != nil {
		return nil, err
	}
	if err := validateWeights(cfg.RiskWeights, "risk"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateDatabaseConnectionString performs basic sanity checks on the
// connection string for server backends. SQLite and None need nothing.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend resolves a backend string, falling back to a default for "".
func ParseBackend(raw string, fallback schema.DatabaseBackend) (schema.DatabaseBackend, error) {
	if raw == "" {
		return fallback, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(raw))
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return "", fmt.Errorf("%q is not one of sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// parseBoolFlag accepts yes/no/true/false/1/0 with a default for "".
func parseBoolFlag(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1":
		return true
	case "no", "false", "0":
		return false
	default:
		return fallback
	}
}

// applyWeightOverrides merges config-file weight overrides onto defaults.
func applyWeightOverrides(cfg *Config, in *WeightsRawInput) {
	if in.Complexity != nil {
		setWeight(cfg.ComplexityWeights, schema.BreakdownCyclomatic, in.Complexity.Cyclomatic)
		setWeight(cfg.ComplexityWeights, schema.BreakdownNesting, in.Complexity.Nesting)
		setWeight(cfg.ComplexityWeights, schema.BreakdownSizePenalty, in.Complexity.Size)
	}
	if in.Risk != nil {
		setWeight(cfg.RiskWeights, schema.BreakdownCentrality, in.Risk.Centrality)
		setWeight(cfg.RiskWeights, schema.BreakdownComplexity, in.Risk.Complexity)
		setWeight(cfg.RiskWeights, schema.BreakdownSkillGap, in.Risk.SkillGap)
	}
}

func setWeight(weights map[schema.BreakdownKey]float64, key schema.BreakdownKey, value *float64) {
	if value != nil {
		weights[key] = *value
	}
}

// validateWeights requires non-negative weights summing to 1 within a small
// tolerance, so custom weights cannot push scores out of their bounds.
func validateWeights(weights map[schema.BreakdownKey]float64, name string) error {
	sum := 0.0
	for key, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s weight %q must not be negative", name, key)
		}
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("%s weights must sum to 1.0, got %.3f", name, sum)
	}
	return nil
}

// Clone returns a copy of the config with independent weight maps, for
// callers that need per-request variations of a base config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ComplexityWeights = maps.Clone(c.ComplexityWeights)
	clone.RiskWeights = maps.Clone(c.RiskWeights)
	return &clone
}
