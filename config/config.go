package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/guest"
	"github.com/wippyai/anyvalue/types"
)

const (
	DefaultWorkers  = 1
	DefaultLogLevel = "info"
)

// Config describes one guest export to call and how to call it.
type Config struct {
	// Module is a URL or path of the wasm binary. Relative locations resolve
	// against the directory of the config document.
	Module           string   `yaml:"module" json:"module"`
	Function         string   `yaml:"function,omitempty" json:"function,omitempty"`
	Params           []string `yaml:"params,omitempty" json:"params,omitempty"`
	Result           string   `yaml:"result,omitempty" json:"result,omitempty"`
	Results          []string `yaml:"results,omitempty" json:"results,omitempty"`
	Workers          int      `yaml:"workers,omitempty" json:"workers,omitempty"`
	MemoryLimitPages uint32   `yaml:"memoryLimitPages,omitempty" json:"memoryLimitPages,omitempty"`
	Inputs           []string `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Log              *Log     `yaml:"log,omitempty" json:"log,omitempty"`

	baseURL string
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level,omitempty" json:"level,omitempty"`
	Development bool   `yaml:"development,omitempty" json:"development,omitempty"`
}

// Load downloads a YAML document from any afs URL, parses and validates it.
func Load(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("download config %q: %w", URL, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", URL, err)
	}
	if i := strings.LastIndex(URL, "/"); i >= 0 {
		cfg.baseURL = URL[:i]
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", URL, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ParseFailed("config", err)
	}
	cfg.Init()
	return &cfg, nil
}

// Init applies defaults.
func (c *Config) Init() {
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks field values. Function is optional so that a config can
// back commands that only inspect the module.
func (c *Config) Validate() error {
	if c.Module == "" {
		return invalid("module", "module location is required")
	}
	if c.Workers < 1 {
		return invalid("workers", fmt.Sprintf("workers must be positive, got %d", c.Workers))
	}
	if c.Result != "" && c.Results != nil {
		return invalid("results", "result and results are mutually exclusive")
	}
	if c.hasKinds() && c.Function == "" {
		return invalid("function", "params and results need a function")
	}
	if _, err := c.Signature(); err != nil {
		return err
	}
	if c.Log != nil {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return invalid("log.level", err.Error())
		}
	}
	return nil
}

func (c *Config) hasKinds() bool {
	return c.Params != nil || c.Result != "" || c.Results != nil
}

// Signature returns the declared signature, or nil when kinds should be
// inferred from the module. Declaring params without results means the
// function returns nothing.
func (c *Config) Signature() (*guest.Signature, error) {
	if !c.hasKinds() {
		return nil, nil
	}
	params, err := parseKinds("params", c.Params)
	if err != nil {
		return nil, err
	}
	names := c.Results
	if c.Result != "" && !strings.EqualFold(c.Result, types.KindEmpty.String()) {
		names = []string{c.Result}
	}
	results, err := parseKinds("results", names)
	if err != nil {
		return nil, err
	}
	return &guest.Signature{Params: params, Results: results}, nil
}

func parseKinds(field string, names []string) ([]types.Kind, error) {
	kinds := make([]types.Kind, len(names))
	for i, name := range names {
		k, ok := types.ParseKind(name)
		if !ok || !k.IsFixedWidth() {
			return nil, errors.New(errors.PhaseConfig, errors.KindUnsupported).
				Path(field, fmt.Sprint(i)).
				Value(name).
				Detail("%q is not a fixed-width scalar kind", name).
				Build()
		}
		kinds[i] = k
	}
	return kinds, nil
}

// ModuleURL resolves Module against the config location.
func (c *Config) ModuleURL() string {
	if c.baseURL == "" || strings.Contains(c.Module, "://") || path.IsAbs(c.Module) {
		return c.Module
	}
	return c.baseURL + "/" + c.Module
}

// LoadModule downloads the configured wasm binary.
func (c *Config) LoadModule(ctx context.Context) ([]byte, error) {
	URL := c.ModuleURL()
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("download module %q", URL), err)
	}
	return data, nil
}

// EngineConfig returns the guest engine settings.
func (c *Config) EngineConfig() *guest.EngineConfig {
	return &guest.EngineConfig{MemoryLimitPages: c.MemoryLimitPages}
}

// Build creates a zap logger for the configured level.
func (l *Log) Build() (*zap.Logger, error) {
	if l == nil {
		l = &Log{}
	}
	level := l.Level
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, invalid("log.level", err.Error())
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func invalid(field, detail string) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Path(field).
		Detail("%s", detail).
		Build()
}
