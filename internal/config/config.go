// Package config loads argsel's YAML configuration. A project file
// (.argsel.yaml) is merged over the embedded defaults: keys it sets replace
// the default values, keys it omits keep them.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/corey/argsel/internal/domain/argsel"
)

// FileName is the project configuration file searched for in the root.
const FileName = ".argsel.yaml"

//go:embed default.yaml
var defaultYAML []byte

// Checks lists every check name a config may enable.
var Checks = []string{
	argsel.CheckArgumentSelection,
	argsel.CheckAssertOrder,
	argsel.CheckStructOrder,
	argsel.CheckNamedParams,
}

// Config is the YAML-serialized configuration.
type Config struct {
	Checks              []string `yaml:"checks"`
	PenaltyThreshold    float64  `yaml:"penalty_threshold"`
	LowInformationNames []string `yaml:"low_information_names"`
	ReversalWords       []string `yaml:"reversal_words"`
	SyntheticNames      string   `yaml:"synthetic_names"`
	Assert              Assert   `yaml:"assert"`
	Exclude             []string `yaml:"exclude"`
	Baseline            string   `yaml:"baseline"`

	// Source is the file the config was read from, "" for the defaults.
	Source string `yaml:"-"`
}

// Assert configures the assertion-order check.
type Assert struct {
	ExpectedPrefixes []string `yaml:"expected_prefixes"`
	ActualPrefixes   []string `yaml:"actual_prefixes"`
	GoPackages       []string `yaml:"go_packages"`
	GoFunctions      string   `yaml:"go_functions"`
	JavaMethods      string   `yaml:"java_methods"`
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Source string // file, "" for the defaults
	Field  string // YAML key path
	Err    error
}

func (e *ConfigError) Error() string {
	src := e.Source
	if src == "" {
		src = "default config"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", src, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", src, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Default returns the embedded default configuration.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return &c
}

// Load reads the configuration for a project. An explicit path must exist;
// otherwise FileName in root is used when present and the defaults when not.
func Load(root, explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(root, FileName)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case explicit == "" && errors.Is(err, fs.ErrNotExist):
		c := Default()
		return c, c.Validate()
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse merges YAML data over the defaults and validates the result.
// Unknown keys are an error.
func Parse(data []byte, source string) (*Config, error) {
	c := Default()
	c.Source = source
	if err := decodeStrict(data, c); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeStrict(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field and compiles every pattern once.
func (c *Config) Validate() error {
	fail := func(field string, err error) error {
		return &ConfigError{Source: c.Source, Field: field, Err: err}
	}
	for _, name := range c.Checks {
		if !slices.Contains(Checks, name) {
			return fail("checks", fmt.Errorf("unknown check %q", name))
		}
	}
	if c.PenaltyThreshold < 0 {
		return fail("penalty_threshold", fmt.Errorf("must not be negative, got %v", c.PenaltyThreshold))
	}
	if _, err := argsel.CompileNamePatterns(c.LowInformationNames); err != nil {
		return fail("low_information_names", err)
	}
	for field, pattern := range map[string]string{
		"synthetic_names":     c.SyntheticNames,
		"assert.go_functions": c.Assert.GoFunctions,
		"assert.java_methods": c.Assert.JavaMethods,
	} {
		if _, err := regexp.Compile(pattern); err != nil {
			return fail(field, err)
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fail("exclude", fmt.Errorf("bad glob %q", p))
		}
	}
	if c.Baseline == "" {
		return fail("baseline", errors.New("must not be empty"))
	}
	return nil
}

// Enabled reports whether a check is switched on.
func (c *Config) Enabled(check string) bool {
	return slices.Contains(c.Checks, check)
}

// Excluded reports whether a slash-separated path relative to the project
// root matches an exclude glob.
func (c *Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range c.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Engine returns the engine settings the config describes. Call Validate
// first; patterns that fail to compile are dropped here.
func (c *Config) Engine() argsel.Settings {
	s := argsel.DefaultSettings()
	s.PenaltyThreshold = c.PenaltyThreshold
	if patterns, err := argsel.CompileNamePatterns(c.LowInformationNames); err == nil {
		s.LowInformationNames = patterns
	}
	s.ReversalWords = c.ReversalWords
	s.SyntheticNames = compileOrNil(c.SyntheticNames)
	s.ExpectedPrefixes = c.Assert.ExpectedPrefixes
	s.ActualPrefixes = c.Assert.ActualPrefixes
	return s
}

// GoAssertFunctions returns the compiled assert.go_functions pattern.
func (c *Config) GoAssertFunctions() *regexp.Regexp { return compileOrNil(c.Assert.GoFunctions) }

// JavaAssertMethods returns the compiled assert.java_methods pattern.
func (c *Config) JavaAssertMethods() *regexp.Regexp { return compileOrNil(c.Assert.JavaMethods) }

// BaselinePath resolves the baseline database path against root.
func (c *Config) BaselinePath(root string) string {
	if filepath.IsAbs(c.Baseline) {
		return c.Baseline
	}
	return filepath.Join(root, c.Baseline)
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func compileOrNil(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}
