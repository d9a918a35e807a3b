package gate_test

import (
	"testing"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policy(t *testing.T, env string) domain.EnvironmentPolicy {
	t.Helper()
	p, err := domain.PolicyFor(env)
	require.NoError(t, err)
	return p
}

func cleanInputs() gate.Inputs {
	reachable := true
	healthy := true
	return gate.Inputs{
		Validation:       &domain.ValidationResult{Passed: true},
		PreValidation:    &domain.PreValidationResult{CoverageRate: 1.0},
		ScenariosRun:     10,
		ScenariosPassed:  10,
		SuccessfulRuns:   3,
		ServiceReachable: &reachable,
		InfraHealthy:     &healthy,
	}
}

func TestEvaluate_CleanCandidatePassesEveryTier(t *testing.T) {
	for _, env := range []string{domain.EnvDev, domain.EnvStaging, domain.EnvProduction} {
		v := gate.Evaluate(env, policy(t, env), cleanInputs())
		assert.True(t, v.Passed, env)
		assert.Empty(t, v.UnmetRequirements, env)
	}
}

func TestEvaluate_BlockingViolationFailsEveryTier(t *testing.T) {
	in := cleanInputs()
	in.Violations = []domain.ViolationReport{{
		ViolationType: domain.ViolationForbiddenFile,
		FilePath:      ".env",
		Blocked:       true,
	}}

	for _, env := range []string{domain.EnvDev, domain.EnvStaging, domain.EnvProduction} {
		v := gate.Evaluate(env, policy(t, env), in)
		assert.False(t, v.Passed, env)
	}
}

func TestEvaluate_ProductionShortCircuitsAtFirstFailure(t *testing.T) {
	in := cleanInputs()
	in.Violations = []domain.ViolationReport{{Blocked: true}}
	in.Validation = &domain.ValidationResult{
		Passed: false,
		Errors: []domain.Finding{{Severity: domain.SeverityError}},
	}

	v := gate.Evaluate(domain.EnvProduction, policy(t, domain.EnvProduction), in)
	assert.False(t, v.Passed)
	// Only the guardrail check ran.
	require.Len(t, v.Checks, 1)
	assert.Equal(t, "guardrail", v.Checks[0].Name)
}

func TestEvaluate_DevAggregatesAllFailures(t *testing.T) {
	in := cleanInputs()
	in.Violations = []domain.ViolationReport{{Blocked: true}}
	in.PreValidation = &domain.PreValidationResult{CoverageRate: 0.1}

	v := gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in)
	assert.False(t, v.Passed)
	assert.GreaterOrEqual(t, len(v.Checks), 3)
	assert.GreaterOrEqual(t, len(v.UnmetRequirements), 2)
}

func TestEvaluate_WarningsBlockOnlyStrictTiers(t *testing.T) {
	in := cleanInputs()
	in.Validation = &domain.ValidationResult{
		Passed:   true,
		Warnings: []domain.Finding{{Severity: domain.SeverityWarning}},
	}

	assert.True(t, gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in).Passed)
	assert.True(t, gate.Evaluate(domain.EnvStaging, policy(t, domain.EnvStaging), in).Passed)
	assert.False(t, gate.Evaluate(domain.EnvProduction, policy(t, domain.EnvProduction), in).Passed)
}

func TestEvaluate_CoverageThresholdPerTier(t *testing.T) {
	in := cleanInputs()
	in.PreValidation = &domain.PreValidationResult{CoverageRate: 0.85}

	assert.True(t, gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in).Passed)
	assert.True(t, gate.Evaluate(domain.EnvStaging, policy(t, domain.EnvStaging), in).Passed)
	// Production requires full coverage.
	assert.False(t, gate.Evaluate(domain.EnvProduction, policy(t, domain.EnvProduction), in).Passed)
}

func TestEvaluate_StartupRequiredButNeverVerified(t *testing.T) {
	in := cleanInputs()
	in.ServiceReachable = nil

	// Dev does not require startup; staging does.
	assert.True(t, gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in).Passed)

	v := gate.Evaluate(domain.EnvStaging, policy(t, domain.EnvStaging), in)
	assert.False(t, v.Passed)
	require.NotEmpty(t, v.UnmetRequirements)
	assert.Contains(t, v.UnmetRequirements[0], "never verified")
}

func TestEvaluate_ScenarioPassRate(t *testing.T) {
	in := cleanInputs()
	in.ScenariosRun = 10
	in.ScenariosPassed = 7

	assert.True(t, gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in).Passed)
	assert.False(t, gate.Evaluate(domain.EnvStaging, policy(t, domain.EnvStaging), in).Passed)
}

func TestEvaluate_NoScenariosIsSkipNotFail(t *testing.T) {
	in := cleanInputs()
	in.ScenariosRun = 0
	in.ScenariosPassed = 0

	v := gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in)
	assert.True(t, v.Passed)

	var scenarioCheck *gate.CheckResult
	for i := range v.Checks {
		if v.Checks[i].Name == "semantic_compliance" {
			scenarioCheck = &v.Checks[i]
		}
	}
	require.NotNil(t, scenarioCheck)
	assert.Equal(t, domain.GateSkip, scenarioCheck.Status)
}

func TestEvaluate_MissingRunsWarnsWhenRegressionsAllowed(t *testing.T) {
	// Staging requires one successful run but tolerates no regressions,
	// so a missing run fails there.
	in := cleanInputs()
	in.SuccessfulRuns = 0

	v := gate.Evaluate(domain.EnvStaging, policy(t, domain.EnvStaging), in)
	assert.False(t, v.Passed)

	// A dev override that keeps AllowRegressions downgrades it to warn.
	p := policy(t, domain.EnvDev)
	p.RequireNSuccessfulRuns = 1
	v = gate.Evaluate(domain.EnvDev, p, in)
	assert.True(t, v.Passed)
	assert.NotEmpty(t, v.UnmetRequirements)
}

func TestEvaluate_StrictPassImpliesLenientPass(t *testing.T) {
	// A candidate accepted for production is accepted for every more
	// lenient tier given the same evidence.
	inputs := []gate.Inputs{cleanInputs()}

	withWarning := cleanInputs()
	withWarning.ScenariosPassed = 10
	inputs = append(inputs, withWarning)

	for _, in := range inputs {
		if gate.Evaluate(domain.EnvProduction, policy(t, domain.EnvProduction), in).Passed {
			assert.True(t, gate.Evaluate(domain.EnvStaging, policy(t, domain.EnvStaging), in).Passed)
			assert.True(t, gate.Evaluate(domain.EnvDev, policy(t, domain.EnvDev), in).Passed)
		}
	}
}

func TestEvaluate_IsPure(t *testing.T) {
	in := cleanInputs()
	p := policy(t, domain.EnvStaging)

	first := gate.Evaluate(domain.EnvStaging, p, in)
	second := gate.Evaluate(domain.EnvStaging, p, in)
	assert.Equal(t, first, second)
}
