package domain

import "fmt"

// Deployment environments, from most lenient to strictest.
const (
	EnvDev        = "dev"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// EnvironmentPolicy holds the thresholds the quality gate applies for one
// environment tier. The built-in tiers are monotone by construction:
// every minimum threshold is non-decreasing and every tolerance
// (max errors/warnings, allow flags) non-increasing from dev to
// production, so a pass under a stricter tier implies a pass under a
// more lenient one for every monotone check.
type EnvironmentPolicy struct {
	MinSemanticCompliance  float64 `json:"min_semantic_compliance" yaml:"min_semantic_compliance"`
	MinIRComplianceRelaxed float64 `json:"min_ir_compliance_relaxed" yaml:"min_ir_compliance_relaxed"`
	MinIRComplianceStrict  float64 `json:"min_ir_compliance_strict" yaml:"min_ir_compliance_strict"`
	AllowWarnings          bool    `json:"allow_warnings" yaml:"allow_warnings"`
	AllowRegressions       bool    `json:"allow_regressions" yaml:"allow_regressions"`
	MaxErrors              int     `json:"max_errors" yaml:"max_errors"`
	MaxWarnings            int     `json:"max_warnings" yaml:"max_warnings"`
	RequireInfraHealth     bool    `json:"require_infra_health" yaml:"require_infra_health"`
	RequireServiceStartup  bool    `json:"require_service_startup" yaml:"require_service_startup"`
	RequireNSuccessfulRuns int     `json:"require_n_successful_runs" yaml:"require_n_successful_runs"`
	// ShortCircuit stops gate evaluation at the first unconditional
	// failure instead of aggregating every check.
	ShortCircuit bool `json:"short_circuit" yaml:"short_circuit"`
}

// PolicyFor returns the built-in policy for an environment tier.
func PolicyFor(env string) (EnvironmentPolicy, error) {
	switch env {
	case EnvDev:
		return EnvironmentPolicy{
			MinSemanticCompliance:  0.6,
			MinIRComplianceRelaxed: 0.7,
			MinIRComplianceStrict:  0.8,
			AllowWarnings:          true,
			AllowRegressions:       true,
			MaxErrors:              5,
			MaxWarnings:            20,
		}, nil
	case EnvStaging:
		return EnvironmentPolicy{
			MinSemanticCompliance:  0.8,
			MinIRComplianceRelaxed: 0.8,
			MinIRComplianceStrict:  0.9,
			AllowWarnings:          true,
			MaxErrors:              2,
			MaxWarnings:            10,
			RequireInfraHealth:     true,
			RequireServiceStartup:  true,
			RequireNSuccessfulRuns: 1,
		}, nil
	case EnvProduction:
		return EnvironmentPolicy{
			MinSemanticCompliance:  0.95,
			MinIRComplianceRelaxed: 0.9,
			MinIRComplianceStrict:  1.0,
			MaxErrors:              0,
			MaxWarnings:            0,
			RequireInfraHealth:     true,
			RequireServiceStartup:  true,
			RequireNSuccessfulRuns: 3,
			ShortCircuit:           true,
		}, nil
	}
	return EnvironmentPolicy{}, fmt.Errorf("unknown environment %q (want dev, staging or production)", env)
}

// IRComplianceThreshold returns the coverage threshold the gate applies:
// the strict one for production, the relaxed one everywhere else.
func (p EnvironmentPolicy) IRComplianceThreshold(env string) float64 {
	if env == EnvProduction {
		return p.MinIRComplianceStrict
	}
	return p.MinIRComplianceRelaxed
}

// Validate rejects malformed policies. A bad policy is the one condition
// that aborts a run instead of becoming a stage failure.
func (p EnvironmentPolicy) Validate() error {
	for name, v := range map[string]float64{
		"min_semantic_compliance":   p.MinSemanticCompliance,
		"min_ir_compliance_relaxed": p.MinIRComplianceRelaxed,
		"min_ir_compliance_strict":  p.MinIRComplianceStrict,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("policy field %s must be in [0,1], got %v", name, v)
		}
	}
	if p.MaxErrors < 0 || p.MaxWarnings < 0 || p.RequireNSuccessfulRuns < 0 {
		return fmt.Errorf("policy counts must be non-negative")
	}
	if p.MinIRComplianceStrict < p.MinIRComplianceRelaxed {
		return fmt.Errorf("min_ir_compliance_strict (%v) below min_ir_compliance_relaxed (%v)",
			p.MinIRComplianceStrict, p.MinIRComplianceRelaxed)
	}
	return nil
}
