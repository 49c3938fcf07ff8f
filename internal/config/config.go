// Package config holds the tunables §6 exposes externally: the
// keyword-case policy, the resource-limit preset (and its individual
// overrides), and the semantic-analyzer flags. Values are plain structs
// built through functional options, in the teacher's style, and may be
// loaded from a YAML file via goccy/go-yaml.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/go-mbasic/internal/lexer"
)

// LimitPreset names one of the three named budget sets from §4.I/§6.
type LimitPreset string

const (
	PresetWeb       LimitPreset = "web"
	PresetLocal     LimitPreset = "local"
	PresetUnlimited LimitPreset = "unlimited"
)

// Limits is the resource-limiter budget, §4.I.
type Limits struct {
	Preset        LimitPreset   `yaml:"preset"`
	MaxGosubDepth int           `yaml:"max_gosub_depth"`
	MaxForDepth   int           `yaml:"max_for_depth"`
	MaxWhileDepth int           `yaml:"max_while_depth"`
	MaxArrayBytes int64         `yaml:"max_array_bytes"`
	MaxTotalBytes int64         `yaml:"max_total_bytes"`
	MaxStringLen  int           `yaml:"max_string_len"`
	MaxWallTimeMS int64         `yaml:"max_wall_time_ms"`
}

// presetLimits returns the fixed budget for a named preset (§4.I/§6);
// individual fields may be overridden afterward by the caller.
func presetLimits(p LimitPreset) Limits {
	switch p {
	case PresetWeb:
		return Limits{
			Preset: p, MaxGosubDepth: 64, MaxForDepth: 32, MaxWhileDepth: 32,
			MaxArrayBytes: 1 << 20, MaxTotalBytes: 4 << 20, MaxStringLen: 255,
			MaxWallTimeMS: 5000,
		}
	case PresetUnlimited:
		return Limits{Preset: p}
	default: // PresetLocal
		return Limits{
			Preset: p, MaxGosubDepth: 1024, MaxForDepth: 256, MaxWhileDepth: 256,
			MaxArrayBytes: 64 << 20, MaxTotalBytes: 256 << 20, MaxStringLen: 32767,
			MaxWallTimeMS: 0,
		}
	}
}

// SemanticFlags are the §6 "semantic-analysis flags": enable toggles plus
// the fixed-point iteration cap.
type SemanticFlags struct {
	EnableIntegerSizeInference bool `yaml:"enable_integer_size_inference"`
	StrictTypeRebinding         bool `yaml:"strict_type_rebinding"`
	MaxIterations               int  `yaml:"max_iterations"`
}

// Config bundles every externally tunable knob the core accepts (§6).
type Config struct {
	KeywordCase   lexer.KeywordCase `yaml:"-"`
	KeywordCaseName string          `yaml:"keyword_case"`
	Limits        Limits            `yaml:"limits"`
	Semantic      SemanticFlags     `yaml:"semantic"`
}

// Option configures a Config built with New.
type Option func(*Config)

// WithKeywordCase overrides the default keyword-case policy (ForceUpper).
func WithKeywordCase(kc lexer.KeywordCase) Option {
	return func(c *Config) { c.KeywordCase = kc }
}

// WithPreset selects a named resource-limit budget (§4.I).
func WithPreset(p LimitPreset) Option {
	return func(c *Config) { c.Limits = presetLimits(p) }
}

// WithSemanticFlags overrides the default semantic-analyzer flags.
func WithSemanticFlags(f SemanticFlags) Option {
	return func(c *Config) { c.Semantic = f }
}

// New builds a Config with the dialect defaults (force-upper keywords,
// the "local" limit preset, integer-size inference enabled, 10 fixed-point
// iterations) and applies opts on top.
func New(opts ...Option) *Config {
	c := &Config{
		KeywordCase: lexer.ForceUpper,
		Limits:      presetLimits(PresetLocal),
		Semantic: SemanticFlags{
			EnableIntegerSizeInference: true,
			MaxIterations:               10,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var keywordCaseNames = map[string]lexer.KeywordCase{
	"force_lower": lexer.ForceLower,
	"force_upper": lexer.ForceUpper,
	"first_wins":  lexer.FirstWins,
	"preserve":    lexer.Preserve,
	"error":       lexer.ErrorOnMixedCase,
}

// Load reads a YAML config file from path and applies it on top of the
// dialect defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := New()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if kc, ok := keywordCaseNames[c.KeywordCaseName]; ok {
		c.KeywordCase = kc
	}
	if c.Limits.Preset != "" {
		preset := presetLimits(c.Limits.Preset)
		if c.Limits.MaxGosubDepth == 0 {
			c.Limits.MaxGosubDepth = preset.MaxGosubDepth
		}
		if c.Limits.MaxForDepth == 0 {
			c.Limits.MaxForDepth = preset.MaxForDepth
		}
		if c.Limits.MaxWhileDepth == 0 {
			c.Limits.MaxWhileDepth = preset.MaxWhileDepth
		}
		if c.Limits.MaxArrayBytes == 0 {
			c.Limits.MaxArrayBytes = preset.MaxArrayBytes
		}
		if c.Limits.MaxTotalBytes == 0 {
			c.Limits.MaxTotalBytes = preset.MaxTotalBytes
		}
		if c.Limits.MaxStringLen == 0 {
			c.Limits.MaxStringLen = preset.MaxStringLen
		}
		if c.Limits.MaxWallTimeMS == 0 {
			c.Limits.MaxWallTimeMS = preset.MaxWallTimeMS
		}
	}
	if c.Semantic.MaxIterations == 0 {
		c.Semantic.MaxIterations = 10
	}
	return c, nil
}

// Save writes c to path as YAML.
func Save(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
