package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"esfront/internal/dialect"
)

// ConfigFileName is the project configuration file LoadConfig looks for.
const ConfigFileName = "esfront.toml"

// Config is the decoded esfront.toml. The zero value is usable and means
// "defaults everywhere".
type Config struct {
	// Path is the file the config was read from, empty for defaults.
	Path    string                     `toml:"-"`
	Parse   ParseConfig                `toml:"parse"`
	Dialect map[string]DialectOverride `toml:"dialect"`
	Cache   CacheConfig                `toml:"cache"`
	Log     LogConfig                  `toml:"log"`
}

type ParseConfig struct {
	MaxDiagnostics int   `toml:"max_diagnostics"`
	Jobs           int   `toml:"jobs"`
	Decorators     *bool `toml:"decorators"`
	// Suppress applies suppression directives before reporting.
	Suppress *bool `toml:"suppress"`
}

// DialectOverride adjusts the configuration derived from one extension.
// Keys of [dialect] are extensions without the dot: js, cjs, ts, "d.ts".
type DialectOverride struct {
	JSX                        *bool `toml:"jsx"`
	TypeSyntax                 *bool `toml:"types"`
	StrictDirectives           *bool `toml:"strict"`
	AllowReturnOutsideFunction *bool `toml:"allow_return_outside_function"`
	Decorators                 *bool `toml:"decorators"`
	Module                     *bool `toml:"module"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// FindConfig walks up from startDir to locate esfront.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig finds and decodes esfront.toml above startDir. A missing file
// yields the zero Config and no error.
func LoadConfig(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Config{}, nil
	}
	return ReadConfig(path)
}

// ReadConfig decodes one config file. Unknown keys are an error so typos do
// not silently fall back to defaults.
func ReadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Parse.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [parse].max_diagnostics must not be negative", path)
	}
	if cfg.Parse.Jobs < 0 {
		return nil, fmt.Errorf("%s: [parse].jobs must not be negative", path)
	}
	cfg.Path = path
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.Cache.Dir))
	}
	return &cfg, nil
}

// DialectFor derives the dialect for path and applies the overrides.
func (c *Config) DialectFor(path string) dialect.Config {
	cfg := dialect.ForPath(path)
	if c == nil {
		return cfg
	}
	if c.Parse.Decorators != nil {
		cfg.Decorators = *c.Parse.Decorators
	}
	if o, ok := c.overrideFor(path); ok {
		set := func(dst *bool, v *bool) {
			if v != nil {
				*dst = *v
			}
		}
		set(&cfg.JSX, o.JSX)
		set(&cfg.TypeSyntax, o.TypeSyntax)
		set(&cfg.StrictDirectives, o.StrictDirectives)
		set(&cfg.AllowReturnOutsideFunction, o.AllowReturnOutsideFunction)
		set(&cfg.Decorators, o.Decorators)
		set(&cfg.Module, o.Module)
	}
	return cfg
}

func (c *Config) overrideFor(path string) (DialectOverride, bool) {
	if len(c.Dialect) == 0 {
		return DialectOverride{}, false
	}
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".d.ts") {
		if o, ok := c.Dialect["d.ts"]; ok {
			return o, true
		}
	}
	o, ok := c.Dialect[strings.TrimPrefix(filepath.Ext(base), ".")]
	return o, ok
}

// SuppressEnabled reports whether directives filter diagnostics; on unless
// the config turns it off.
func (c *Config) SuppressEnabled() bool {
	return c == nil || c.Parse.Suppress == nil || *c.Parse.Suppress
}
