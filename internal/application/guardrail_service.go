package application

import (
	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/guardrail"
)

// GuardrailService checks where a generation pass wrote. The touched
// set comes from an explicit list when the orchestrator provides one,
// otherwise from the worktree status of the generated repo.
type GuardrailService struct {
	tracker domain.ChangeTracker
	metrics domain.MetricsSink
}

func NewGuardrailService(tracker domain.ChangeTracker, metrics domain.MetricsSink) *GuardrailService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &GuardrailService{tracker: tracker, metrics: metrics}
}

// Enforce matches the touched files against the slot manifest. Any
// returned report with Blocked set fails the whole generation pass.
func (s *GuardrailService) Enforce(repoPath string, manifest domain.SlotManifest, touched []string) ([]domain.ViolationReport, error) {
	if len(touched) == 0 {
		var err error
		touched, err = s.tracker.TouchedFiles(repoPath)
		if err != nil {
			return nil, err
		}
	}

	reports := guardrail.NewEnforcer(manifest).Enforce(touched)
	for range reports {
		s.metrics.Incr("guardrail.violation")
	}
	return reports, nil
}
