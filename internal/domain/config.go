package domain

import (
	"fmt"
	"time"
)

// RegressionPattern is a text signature previously linked to a defect.
// Pattern is a regular expression matched per line of source.
type RegressionPattern struct {
	Name     string `json:"name" yaml:"name"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	Severity string `json:"severity" yaml:"severity"`
	FixHint  string `json:"fix_hint,omitempty" yaml:"fix_hint,omitempty"`
}

// Config is the tool configuration, loaded from .specgate.yaml with
// defaults applied for anything unset.
type Config struct {
	RegressionPatterns []RegressionPattern `json:"regression_patterns" yaml:"regression_patterns"`
	AllowedImports     []string            `json:"allowed_imports" yaml:"allowed_imports"`
	ActionSuffixes     []string            `json:"action_suffixes" yaml:"action_suffixes"`
	ExcludePaths       []string            `json:"exclude_paths" yaml:"exclude_paths"`

	FileTimeout     time.Duration `json:"file_timeout" yaml:"file_timeout"`
	ScenarioTimeout time.Duration `json:"scenario_timeout" yaml:"scenario_timeout"`
	FetchRetries    int           `json:"fetch_retries" yaml:"fetch_retries"`
	FetchBackoff    time.Duration `json:"fetch_backoff" yaml:"fetch_backoff"`

	// Policies overrides the built-in environment tiers, keyed by
	// environment name.
	Policies map[string]EnvironmentPolicy `json:"policies,omitempty" yaml:"policies,omitempty"`
}

// DefaultConfig returns the configuration used when no .specgate.yaml
// exists.
func DefaultConfig() Config {
	return Config{
		RegressionPatterns: []RegressionPattern{
			{Name: "todo_placeholder", Pattern: `TODO:? implement`, Severity: SeverityWarning, FixHint: "implement the marked body"},
			{Name: "not_implemented", Pattern: `NotImplementedError|ErrNotImplemented|panic\("not implemented"\)`, Severity: SeverityError, FixHint: "replace the stub with a real implementation"},
			{Name: "debug_print", Pattern: `console\.log\(|fmt\.Println\(|print\(f?"DEBUG`, Severity: SeverityWarning, FixHint: "remove debug output"},
			{Name: "hardcoded_localhost", Pattern: `https?://localhost[:/]|127\.0\.0\.1`, Severity: SeverityWarning, FixHint: "read the address from configuration"},
			{Name: "swallowed_exception", Pattern: `except\s+\w*\s*:\s*pass|catch\s*\(\w*\)\s*\{\s*\}`, Severity: SeverityError, FixHint: "handle or propagate the error"},
			{Name: "placeholder_secret", Pattern: `(api_key|secret|password)\s*=\s*["'](changeme|xxx+|your[-_])`, Severity: SeverityError, FixHint: "inject the secret from the environment"},
		},
		AllowedImports: []string{
			"fastapi", "pydantic", "sqlalchemy", "starlette", "uvicorn",
			"express", "axios",
			"github.com/", "golang.org/x/", "gopkg.in/",
		},
		ActionSuffixes: []string{
			"activate", "deactivate", "checkout", "pay", "cancel",
			"clear", "items", "submit", "approve", "reject", "complete",
		},
		ExcludePaths:    []string{"node_modules", "__pycache__", ".venv", "vendor", "dist"},
		FileTimeout:     2 * time.Second,
		ScenarioTimeout: 30 * time.Second,
		FetchRetries:    3,
		FetchBackoff:    500 * time.Millisecond,
	}
}

// Validate checks user-supplied values before they are merged over
// defaults.
func (c Config) Validate() error {
	for _, p := range c.RegressionPatterns {
		if p.Pattern == "" {
			return fmt.Errorf("regression pattern %q has no pattern", p.Name)
		}
		switch p.Severity {
		case "", SeverityError, SeverityWarning, SeverityInfo:
		default:
			return fmt.Errorf("regression pattern %q has unknown severity %q", p.Name, p.Severity)
		}
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch_retries must be non-negative")
	}
	for env, p := range c.Policies {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("policy for %s: %w", env, err)
		}
	}
	return nil
}

// MergeConfig overlays explicit (non-zero) overrides on defaults.
func MergeConfig(base, override Config) Config {
	result := base
	if len(override.RegressionPatterns) > 0 {
		result.RegressionPatterns = override.RegressionPatterns
	}
	if len(override.AllowedImports) > 0 {
		result.AllowedImports = override.AllowedImports
	}
	if len(override.ActionSuffixes) > 0 {
		result.ActionSuffixes = override.ActionSuffixes
	}
	if len(override.ExcludePaths) > 0 {
		result.ExcludePaths = override.ExcludePaths
	}
	if override.FileTimeout > 0 {
		result.FileTimeout = override.FileTimeout
	}
	if override.ScenarioTimeout > 0 {
		result.ScenarioTimeout = override.ScenarioTimeout
	}
	if override.FetchRetries > 0 {
		result.FetchRetries = override.FetchRetries
	}
	if override.FetchBackoff > 0 {
		result.FetchBackoff = override.FetchBackoff
	}
	if len(override.Policies) > 0 {
		result.Policies = override.Policies
	}
	return result
}

// PolicyFor resolves the effective policy for an environment, preferring
// a configured override over the built-in tier.
func (c Config) PolicyFor(env string) (EnvironmentPolicy, error) {
	if p, ok := c.Policies[env]; ok {
		if err := p.Validate(); err != nil {
			return EnvironmentPolicy{}, err
		}
		return p, nil
	}
	return PolicyFor(env)
}
