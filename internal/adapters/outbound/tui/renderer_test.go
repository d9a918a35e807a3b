package tui_test

import (
	"testing"

	"github.com/specgate/specgate/internal/adapters/outbound/tui"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/gate"
	"github.com/stretchr/testify/assert"
)

func TestRenderGateReport(t *testing.T) {
	report := &application.GateReport{
		Verdict: &gate.Verdict{
			Environment: "staging",
			Passed:      false,
			Checks: []gate.CheckResult{
				{Name: "guardrail_compliance", Status: domain.GatePass},
				{Name: "static_validation", Status: domain.GateFail, Detail: "2 blocking findings"},
				{Name: "scenario_pass_rate", Status: domain.GateSkip},
			},
			UnmetRequirements: []string{"static_validation: 2 blocking findings"},
		},
		QA: &domain.QAResult{Stages: []domain.QAStageResult{
			{Stage: domain.StageSyntax, Passed: true},
			{Stage: domain.StageScenarioTest, Skipped: true, SkipReason: "fast checks failed under strict policy"},
		}},
		Validation: &domain.ValidationResult{
			Errors: []domain.Finding{
				{Severity: domain.SeverityError, Category: "regression", File: "app/pay.py", Line: 12, Message: "NotImplementedError raised"},
			},
		},
		Violations: []domain.ViolationReport{
			{FilePath: ".env", Reason: "matches forbidden file pattern", Blocked: true},
		},
	}

	out := tui.RenderGateReport(report)
	assert.Contains(t, out, "specgate")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "quality gate · staging")
	assert.Contains(t, out, "static_validation")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "Guardrail Violations")
	assert.Contains(t, out, ".env")
	assert.Contains(t, out, "app/pay.py:12")
	assert.Contains(t, out, "Unmet Requirements")
}

func TestRenderCoverage(t *testing.T) {
	out := tui.RenderCoverage(&domain.PreValidationResult{
		CoverageRate: 0.75,
		Missing: []domain.EndpointGap{
			{Method: "POST", Path: "/carts/{cart_id}/checkout", IsAction: true},
		},
		Extra:       []string{"GET /debug"},
		Diagnostics: []string{"declared and implemented endpoints share no paths"},
	})

	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "/carts/{cart_id}/checkout")
	assert.Contains(t, out, "action")
	assert.Contains(t, out, "GET /debug")
	assert.Contains(t, out, "share no paths")
}

func TestRenderScenarios(t *testing.T) {
	out := tui.RenderScenarios([]domain.TestScenario{{
		ID:   "SCN-0001",
		Name: "order create succeeds",
		Type: domain.ScenarioHappyPath,
		Steps: []domain.TestStep{
			{Order: 1, Method: "POST", Endpoint: "/orders", ExpectedStatus: 201},
		},
	}})

	assert.Contains(t, out, "SCN-0001")
	assert.Contains(t, out, "order create succeeds")
	assert.Contains(t, out, "/orders")
	assert.Contains(t, out, "→ 201")

	assert.Contains(t, tui.RenderScenarios(nil), "No scenarios generated.")
}

func TestRenderDiff(t *testing.T) {
	out := tui.RenderDiff(&domain.SnapshotDiff{
		CreatedCount: 1,
		UpdatedCount: 1,
		Changes: []domain.EntityChange{
			{EntityType: "Order", EntityID: "o1", ChangeType: domain.ChangeCreated},
			{EntityType: "Cart", EntityID: "c1", ChangeType: domain.ChangeUpdated, ChangedFields: []string{"status", "total"}},
		},
	})

	assert.Contains(t, out, "+1")
	assert.Contains(t, out, "Order:o1")
	assert.Contains(t, out, "Cart:c1")
	assert.Contains(t, out, "status, total")
}
