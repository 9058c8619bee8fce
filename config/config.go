// Package config holds runtime configuration for the mutation engine and
// block scanner defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chiselfs/chisel/internal/util"
)

// Default configuration values. See [Config] for field descriptions.
const (
	// DefaultTerminator is the line terminator used for splitting and
	// rejoining file content when a file carries no terminator of its own.
	DefaultTerminator = "\n"

	// DefaultClassHeader matches class/module-like construct headers.
	DefaultClassHeader = `^\s*(class|module)\b`

	// DefaultIndent is one indentation level, applied to content injected
	// at a construct's bottom.
	DefaultIndent = "  "
)

// Default marker sets. Open/close markers are counted per line by the block
// scanner; the class set also counts nested block openers so a construct's
// interior blocks keep the depth balanced.
var (
	DefaultBlockOpen  = []string{"do", "{"}
	DefaultBlockClose = []string{"end", "}"}
	DefaultClassOpen  = []string{"class", "module", "def", "do", "{"}
	DefaultClassClose = []string{"end", "}"}
)

// Config contains runtime configuration values for the mutation engine.
type Config struct {
	LogLvl      util.LogLevel // Logger verbosity (Default info)
	Terminator  string        // Line terminator for empty/new files (Default "\n")
	BlockOpen   []string      // Open markers for plain blocks (Default do, {)
	BlockClose  []string      // Close markers for plain blocks (Default end, })
	ClassOpen   []string      // Open markers for class/module scans (includes nested block openers)
	ClassClose  []string      // Close markers for class/module scans
	ClassHeader string        // Regexp source matching construct header lines
	Indent      string        // One indent level for class-bottom injection (Default two spaces)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	LogLvl      *util.LogLevel `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Terminator  *string        `yaml:"terminator,omitempty" json:"terminator,omitempty"`
	BlockOpen   []string       `yaml:"block_open,omitempty" json:"block_open,omitempty"`
	BlockClose  []string       `yaml:"block_close,omitempty" json:"block_close,omitempty"`
	ClassOpen   []string       `yaml:"class_open,omitempty" json:"class_open,omitempty"`
	ClassClose  []string       `yaml:"class_close,omitempty" json:"class_close,omitempty"`
	ClassHeader *string        `yaml:"class_header,omitempty" json:"class_header,omitempty"`
	Indent      *string        `yaml:"indent,omitempty" json:"indent,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:      util.InfoLevel,
		Terminator:  DefaultTerminator,
		BlockOpen:   DefaultBlockOpen,
		BlockClose:  DefaultBlockClose,
		ClassOpen:   DefaultClassOpen,
		ClassClose:  DefaultClassClose,
		ClassHeader: DefaultClassHeader,
		Indent:      DefaultIndent,
	}
}

// Merge applies non-nil values from override onto this Config. This allows
// partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
	if override.Terminator != nil {
		c.Terminator = *override.Terminator
	}
	if override.BlockOpen != nil {
		c.BlockOpen = override.BlockOpen
	}
	if override.BlockClose != nil {
		c.BlockClose = override.BlockClose
	}
	if override.ClassOpen != nil {
		c.ClassOpen = override.ClassOpen
	}
	if override.ClassClose != nil {
		c.ClassClose = override.ClassClose
	}
	if override.ClassHeader != nil {
		c.ClassHeader = *override.ClassHeader
	}
	if override.Indent != nil {
		c.Indent = *override.Indent
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
