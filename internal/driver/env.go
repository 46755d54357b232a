package driver

import (
	"fmt"
	"os"

	"github.com/mstoykov/envconfig"
)

// envOverrides are the ESFRONT_* variables that take precedence over
// esfront.toml.
type envOverrides struct {
	MaxDiagnostics *int    `envconfig:"ESFRONT_MAX_DIAGNOSTICS"`
	Jobs           *int    `envconfig:"ESFRONT_JOBS"`
	Suppress       *bool   `envconfig:"ESFRONT_SUPPRESS"`
	Cache          *bool   `envconfig:"ESFRONT_CACHE"`
	CacheDir       *string `envconfig:"ESFRONT_CACHE_DIR"`
	LogLevel       *string `envconfig:"ESFRONT_LOG_LEVEL"`
}

// ApplyEnv overlays ESFRONT_* variables read through lookup, or the process
// environment when lookup is nil.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var env envOverrides
	if err := envconfig.Process("", &env, lookup); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if env.MaxDiagnostics != nil {
		if *env.MaxDiagnostics < 0 {
			return fmt.Errorf("ESFRONT_MAX_DIAGNOSTICS must not be negative")
		}
		c.Parse.MaxDiagnostics = *env.MaxDiagnostics
	}
	if env.Jobs != nil {
		if *env.Jobs < 0 {
			return fmt.Errorf("ESFRONT_JOBS must not be negative")
		}
		c.Parse.Jobs = *env.Jobs
	}
	if env.Suppress != nil {
		c.Parse.Suppress = env.Suppress
	}
	if env.Cache != nil {
		c.Cache.Enabled = *env.Cache
	}
	if env.CacheDir != nil {
		c.Cache.Dir = *env.CacheDir
	}
	if env.LogLevel != nil {
		c.Log.Level = *env.LogLevel
	}
	return nil
}
