// Package config loads the settings of a test run from a YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/networkteam/contactform-e2e/browser"
	"github.com/networkteam/contactform-e2e/qubika"
)

// Config holds all settings of a run.
type Config struct {
	// Engines to run against, all supported engines if empty
	Engines  []string      `yaml:"engines"`
	Headless bool          `yaml:"headless"`
	SlowMo   time.Duration `yaml:"slowMo"`
	// Timeout is the default action timeout of a page
	Timeout time.Duration `yaml:"timeout"`
	// Parallel is the number of engines run at the same time
	Parallel      int    `yaml:"parallel"`
	TraceCapacity uint64 `yaml:"traceCapacity"`
	// ArtifactsDir receives screenshots and traces of failed runs, disabled if empty
	ArtifactsDir string `yaml:"artifactsDir"`
	// Live enables tests against the public site
	Live         bool   `yaml:"live"`
	EntryURL     string `yaml:"entryURL"`
	CanonicalURL string `yaml:"canonicalURL"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Headless:      true,
		Timeout:       30 * time.Second,
		Parallel:      1,
		TraceCapacity: 500,
		EntryURL:      qubika.EntryURL,
		CanonicalURL:  qubika.CanonicalURL,
	}
}

// Environment variables read by Load
const (
	EnvConfig        = "E2E_CONFIG"
	EnvHeadless      = "HEADLESS"
	EnvEngines       = "E2E_ENGINES"
	EnvSlowMo        = "E2E_SLOWMO"
	EnvTimeout       = "E2E_TIMEOUT"
	EnvParallel      = "E2E_PARALLEL"
	EnvTraceCapacity = "E2E_TRACE_CAPACITY"
	EnvArtifactsDir  = "E2E_ARTIFACTS_DIR"
	EnvLive          = "E2E_LIVE"
	EnvEntryURL      = "E2E_ENTRY_URL"
	EnvCanonicalURL  = "E2E_CANONICAL_URL"
)

// Load reads the optional .env file of the working directory into the environment, then builds the configuration
// from defaults, the YAML file at path (or E2E_CONFIG if path is empty) and finally the environment.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHeadless); ok {
		// Only an explicit "false" shows the browser
		c.Headless = v != "false"
	}
	if v, ok := lookup(EnvEngines); ok && v != "" {
		c.Engines = strings.Split(v, ",")
	}
	if v, ok := lookup(EnvSlowMo); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSlowMo, err)
		}
		c.SlowMo = d
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvParallel); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvParallel, err)
		}
		c.Parallel = n
	}
	if v, ok := lookup(EnvTraceCapacity); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTraceCapacity, err)
		}
		c.TraceCapacity = n
	}
	if v, ok := lookup(EnvArtifactsDir); ok {
		c.ArtifactsDir = v
	}
	if v, ok := lookup(EnvLive); ok {
		c.Live = v == "true" || v == "1"
	}
	if v, ok := lookup(EnvEntryURL); ok && v != "" {
		c.EntryURL = v
	}
	if v, ok := lookup(EnvCanonicalURL); ok && v != "" {
		c.CanonicalURL = v
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if _, err := browser.ParseEngines(c.Engines...); err != nil {
		return err
	}
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}
	if c.TraceCapacity == 0 {
		return errors.New("trace capacity must be greater than 0")
	}
	if c.EntryURL == "" || c.CanonicalURL == "" {
		return errors.New("entry and canonical URL must be set")
	}
	return nil
}

// SelectedEngines returns the engines to run in run order.
func (c Config) SelectedEngines() []browser.Engine {
	engines, err := browser.ParseEngines(c.Engines...)
	if err != nil {
		return nil
	}
	return engines
}

// BrowserOptions returns the launch options for a session.
func (c Config) BrowserOptions() browser.Options {
	return browser.Options{
		Headless: c.Headless,
		SlowMo:   c.SlowMo,
		Timeout:  c.Timeout,
	}
}

// Target returns the site to run against.
func (c Config) Target() qubika.Target {
	return qubika.Target{
		EntryURL:     c.EntryURL,
		CanonicalURL: c.CanonicalURL,
	}
}
