package application

import (
	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/scenario"
)

// ScenarioService derives executable scenarios from the behavior IR and
// optional transition maps. One generator per call keeps ids unique
// within a run.
type ScenarioService struct{}

func NewScenarioService() *ScenarioService {
	return &ScenarioService{}
}

// Generate returns behavior scenarios followed by transition scenarios,
// in IR order.
func (s *ScenarioService) Generate(ir *domain.BehaviorIR, transitions []domain.EntityTransitions) []domain.TestScenario {
	gen := scenario.NewGenerator()

	var scenarios []domain.TestScenario
	if ir != nil {
		scenarios = append(scenarios, gen.FromBehavior(ir)...)
	}
	for _, et := range transitions {
		scenarios = append(scenarios, gen.FromTransitions(et)...)
	}
	return scenarios
}
