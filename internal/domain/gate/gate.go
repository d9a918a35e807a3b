// Package gate composes the outputs of every validation stage into one
// deterministic verdict under an environment policy. Evaluation is a
// pure function of its inputs: identical inputs and policy always render
// the same verdict.
package gate

import (
	"fmt"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/guardrail"
)

// Inputs carries whatever stage outputs are available for the configured
// QA level. Nil sections were not produced and their checks are skipped
// unless the policy requires them.
type Inputs struct {
	Violations    []domain.ViolationReport    `json:"violations,omitempty"`
	Validation    *domain.ValidationResult    `json:"validation,omitempty"`
	PreValidation *domain.PreValidationResult `json:"pre_validation,omitempty"`
	QA            *domain.QAResult            `json:"qa,omitempty"`

	ScenariosRun    int `json:"scenarios_run"`
	ScenariosPassed int `json:"scenarios_passed"`
	SuccessfulRuns  int `json:"successful_runs"`

	// ServiceReachable is nil when the snapshot engine never ran.
	ServiceReachable *bool `json:"service_reachable,omitempty"`
	// InfraHealthy is nil when infrastructure health was not probed.
	InfraHealthy *bool `json:"infra_healthy,omitempty"`
}

// CheckResult is the status of one gate dimension.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

/// Verdict is the gate's complete output: per-check statuses, the overall
// decision, and the unmet requirements a repair collaborator acts on.
type Verdict struct {
	Environment       string        `json:"environment"`
	Passed            bool          `json:"passed"`
	Checks            []CheckResult `json:"checks"`
	UnmetRequirements []string      `json:"unmet_requirements,omitempty"`
}

// Evaluate renders the verdict for one environment. Under a
// short-circuiting policy it stops at the first unconditional failure;
// otherwise it evaluates every check and aggregates.
func Evaluate(env string, policy domain.EnvironmentPolicy, in Inputs) *Verdict {
	v := &Verdict{Environment: env, Passed: true}

	add := func(c CheckResult) bool {
		v.Checks = append(v.Checks, c)
		switch c.Status {
		case domain.GateFail:
			v.Passed = false
			v.UnmetRequirements = append(v.UnmetRequirements, c.Detail)
		case domain.GateWarn:
			v.UnmetRequirements = append(v.UnmetRequirements, c.Detail)
		}
		return c.Status == domain.GateFail && policy.ShortCircuit
	}

	// 1. Guardrail violations block unconditionally, in every
	// environment. Policy cannot override this.
	if stop := add(checkGuardrail(in.Violations)); stop {
		return v
	}

	// 2. Static findings against the error/warning budget.
	if stop := add(checkStatic(policy, in.Validation)); stop {
		return v
	}

	// 3. Declared-surface coverage against the tier threshold.
	if stop := add(checkCoverage(env, policy, in.PreValidation)); stop {
		return v
	}

	// 4. Service reachability.
	if stop := add(checkStartup(policy, in.ServiceReachable)); stop {
		return v
	}

	// 5. Scenario pass rate.
	if stop := add(checkScenarios(policy, in.ScenariosRun, in.ScenariosPassed)); stop {
		return v
	}

	// Remaining requirements may downgrade to warn when the tier
	// tolerates regressions.
	add(checkSuccessfulRuns(policy, in.SuccessfulRuns))
	add(checkInfraHealth(policy, in.InfraHealthy))

	return v
}

func checkGuardrail(violations []domain.ViolationReport) CheckResult {
	c := CheckResult{Name: "guardrail"}
	if guardrail.HasBlocking(violations) {
		c.Status = domain.GateFail
		c.Detail = fmt.Sprintf("%d blocking guardrail violation(s)", countBlocking(violations))
		return c
	}
	c.Status = domain.GatePass
	return c
}

func checkStatic(policy domain.EnvironmentPolicy, vr *domain.ValidationResult) CheckResult {
	c := CheckResult{Name: "static_checks"}
	if vr == nil {
		c.Status = domain.GateSkip
		c.Detail = "fast checker did not run"
		return c
	}
	switch {
	case len(vr.Errors) > policy.MaxErrors:
		c.Status = domain.GateFail
		c.Detail = fmt.Sprintf("%d static error(s), budget is %d", len(vr.Errors), policy.MaxErrors)
	case !policy.AllowWarnings && len(vr.Warnings) > 0:
		c.Status = domain.GateFail
		c.Detail = fmt.Sprintf("%d warning(s) present and warnings are not allowed", len(vr.Warnings))
	case len(vr.Warnings) > policy.MaxWarnings:
		c.Status = domain.GateFail
		c.Detail = fmt.Sprintf("%d warning(s), budget is %d", len(vr.Warnings), policy.MaxWarnings)
	default:
		c.Status = domain.GatePass
	}
	return c
}

func checkCoverage(env string, policy domain.EnvironmentPolicy, pv *domain.PreValidationResult) CheckResult {
	c := CheckResult{Name: "ir_compliance"}
	if pv == nil {
		c.Status = domain.GateSkip
		c.Detail = "endpoint coverage did not run"
		return c
	}
	threshold := policy.IRComplianceThreshold(env)
	if pv.CoverageRate < threshold {
		c.Status = domain.GateFail
		c.Detail = fmt.Sprintf("endpoint coverage %.2f below threshold %.2f (%d missing)",
			pv.CoverageRate, threshold, len(pv.Missing))
		return c
	}
	c.Status = domain.GatePass
	return c
}

func checkStartup(policy domain.EnvironmentPolicy, reachable *bool) CheckResult {
	c := CheckResult{Name: "service_startup"}
	if !policy.RequireServiceStartup {
		c.Status = domain.GateSkip
		return c
	}
	switch {
	case reachable == nil:
		c.Status = domain.GateFail
		c.Detail = "service startup required but reachability was never verified"
	case !*reachable:
		c.Status = domain.GateFail
		c.Detail = "service unreachable"
	default:
		c.Status = domain.GatePass
	}
	return c
}

func checkScenarios(policy domain.EnvironmentPolicy, run, passed int) CheckResult {
	c := CheckResult{Name: "semantic_compliance"}
	if run == 0 {
		c.Status = domain.GateSkip
		c.Detail = "no scenarios executed"
		return c
	}
	rate := float64(passed) / float64(run)
	if rate < policy.MinSemanticCompliance {
		c.Status = domain.GateFail
		c.Detail = fmt.Sprintf("scenario pass rate %.2f below %.2f (%d/%d)",
			rate, policy.MinSemanticCompliance, passed, run)
		return c
	}
	c.Status = domain.GatePass
	return c
}

func checkSuccessfulRuns(policy domain.EnvironmentPolicy, runs int) CheckResult {
	c := CheckResult{Name: "successful_runs"}
	if policy.RequireNSuccessfulRuns == 0 {
		c.Status = domain.GateSkip
		return c
	}
	if runs >= policy.RequireNSuccessfulRuns {
		c.Status = domain.GatePass
		return c
	}
	c.Detail = fmt.Sprintf("%d successful run(s), %d required", runs, policy.RequireNSuccessfulRuns)
	if policy.AllowRegressions {
		c.Status = domain.GateWarn
	} else {
		c.Status = domain.GateFail
	}
	return c
}

func checkInfraHealth(policy domain.EnvironmentPolicy, healthy *bool) CheckResult {
	c := CheckResult{Name: "infra_health"}
	if !policy.RequireInfraHealth {
		c.Status = domain.GateSkip
		return c
	}
	if healthy != nil && *healthy {
		c.Status = domain.GatePass
		return c
	}
	if healthy == nil {
		c.Detail = "infrastructure health required but never probed"
	} else {
		c.Detail = "infrastructure unhealthy"
	}
	if policy.AllowRegressions {
		c.Status = domain.GateWarn
	} else {
		c.Status = domain.GateFail
	}
	return c
}

func countBlocking(violations []domain.ViolationReport) int {
	n := 0
	for _, r := range violations {
		if r.Blocked {
			n++
		}
	}
	return n
}
