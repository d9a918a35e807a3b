package scenario

import (
	"fmt"
	"sort"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/snapshot"
)

// InvalidStatus is the synthetic out-of-band status used to probe
// transition rejection. No real state machine may contain it.
const InvalidStatus = "__specgate_invalid__"

// FromTransitions emits one transition_valid scenario per allowed edge
// and exactly one transition_invalid scenario per from-status, targeting
// the synthetic status and expecting rejection.
func (g *Generator) FromTransitions(et domain.EntityTransitions) []domain.TestScenario {
	collection := snapshot.CollectionPath(et.Entity)
	endpoint := "/" + collection + "/{id}"

	froms := make([]string, 0, len(et.Transitions))
	for from := range et.Transitions {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	var scenarios []domain.TestScenario
	for _, from := range froms {
		for _, to := range et.Transitions[from] {
			scenarios = append(scenarios, domain.TestScenario{
				ID:     g.id(),
				Name:   fmt.Sprintf("%s transition %s -> %s allowed", humanize(et.Entity), from, to),
				Type:   domain.ScenarioTransitionValid,
				Entity: et.Entity,
				Steps: []domain.TestStep{{
					Order:          1,
					Method:         "PUT",
					Endpoint:       endpoint,
					Body:           map[string]any{"status": to},
					ExpectedStatus: 200,
					ExpectedInResponse: map[string]any{
						"status": to,
					},
				}},
				Preconditions:   []string{fmt.Sprintf("%s status is %q", et.Entity, from)},
				ExpectedOutcome: fmt.Sprintf("status moves from %s to %s", from, to),
			})
		}

		scenarios = append(scenarios, domain.TestScenario{
			ID:     g.id(),
			Name:   fmt.Sprintf("%s transition %s -> out-of-band rejected", humanize(et.Entity), from),
			Type:   domain.ScenarioTransitionInvalid,
			Entity: et.Entity,
			Steps: []domain.TestStep{{
				Order:          1,
				Method:         "PUT",
				Endpoint:       endpoint,
				Body:           map[string]any{"status": InvalidStatus},
				ExpectedStatus: 422,
			}},
			Preconditions:   []string{fmt.Sprintf("%s status is %q", et.Entity, from)},
			ExpectedOutcome: fmt.Sprintf("status %s rejects unknown target statuses", from),
		})
	}
	return scenarios
}
