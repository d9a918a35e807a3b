package domain_test

import (
	"testing"
	"time"

	"github.com/specgate/specgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.RegressionPatterns)
	assert.NotEmpty(t, cfg.AllowedImports)
	assert.NotEmpty(t, cfg.ActionSuffixes)
	assert.Equal(t, 2*time.Second, cfg.FileTimeout)
	assert.Equal(t, 3, cfg.FetchRetries)
}

func TestConfig_ValidateRejectsBadPattern(t *testing.T) {
	cfg := domain.Config{
		RegressionPatterns: []domain.RegressionPattern{{Name: "empty"}},
	}
	assert.Error(t, cfg.Validate())

	cfg = domain.Config{
		RegressionPatterns: []domain.RegressionPattern{{Name: "bad", Pattern: "x", Severity: "critical"}},
	}
	assert.Error(t, cfg.Validate())
}

func TestMergeConfig_OverridesWin(t *testing.T) {
	base := domain.DefaultConfig()
	merged := domain.MergeConfig(base, domain.Config{
		AllowedImports: []string{"flask"},
		FileTimeout:    5 * time.Second,
	})

	assert.Equal(t, []string{"flask"}, merged.AllowedImports)
	assert.Equal(t, 5*time.Second, merged.FileTimeout)
	// Unset sections keep defaults.
	assert.Equal(t, base.RegressionPatterns, merged.RegressionPatterns)
	assert.Equal(t, base.ScenarioTimeout, merged.ScenarioTimeout)
}

func TestConfig_PolicyForPrefersOverride(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Policies = map[string]domain.EnvironmentPolicy{
		"dev": {MinSemanticCompliance: 0.1, MinIRComplianceRelaxed: 0.2, MinIRComplianceStrict: 0.3, MaxErrors: 99},
	}

	p, err := cfg.PolicyFor("dev")
	require.NoError(t, err)
	assert.Equal(t, 99, p.MaxErrors)

	// Environments without an override fall back to the built-in tier.
	staging, err := cfg.PolicyFor("staging")
	require.NoError(t, err)
	assert.Equal(t, 0.8, staging.MinSemanticCompliance)
}

func TestConfig_PolicyForRejectsInvalidOverride(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Policies = map[string]domain.EnvironmentPolicy{
		"dev": {MinSemanticCompliance: 7},
	}
	_, err := cfg.PolicyFor("dev")
	assert.Error(t, err)
}
