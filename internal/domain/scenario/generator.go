// Package scenario derives executable test scenarios from the behavior
// IR: the happy path of every flow, one guard violation per documented
// precondition, invariant checks, and status-transition probes.
package scenario

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/specgate/specgate/internal/domain"
)

// Generator assigns scenario ids from a counter scoped to one instance.
// Ids are unique within a generation run, not stable across runs.
type Generator struct {
	nextID int
}

func NewGenerator() *Generator {
	return &Generator{nextID: 1}
}

func (g *Generator) id() string {
	id := fmt.Sprintf("SCN-%04d", g.nextID)
	g.nextID++
	return id
}

// FromBehavior emits, per flow, one happy-path scenario plus one guard
// violation per precondition, and one invariant check per invariant.
func (g *Generator) FromBehavior(ir *domain.BehaviorIR) []domain.TestScenario {
	var scenarios []domain.TestScenario

	for _, flow := range ir.Flows {
		method := InferMethod(flow.Endpoint)
		scenarios = append(scenarios, domain.TestScenario{
			ID:     g.id(),
			Name:   fmt.Sprintf("%s succeeds", humanize(flow.ID)),
			Type:   domain.ScenarioHappyPath,
			FlowID: flow.ID,
			Entity: flow.Entity,
			Steps: []domain.TestStep{{
				Order:          1,
				Method:         method,
				Endpoint:       flow.Endpoint,
				ExpectedStatus: ExpectedStatus(method),
			}},
			Preconditions:   flow.Preconditions,
			ExpectedOutcome: fmt.Sprintf("flow %s completes with status %d", flow.ID, ExpectedStatus(method)),
		})

		// Every documented guard clause gets exercised, not just the
		// happy path.
		for _, pre := range flow.Preconditions {
			scenarios = append(scenarios, domain.TestScenario{
				ID:     g.id(),
				Name:   fmt.Sprintf("%s rejected when not %s", humanize(flow.ID), humanize(pre)),
				Type:   domain.ScenarioGuardViolation,
				FlowID: flow.ID,
				Entity: flow.Entity,
				Steps: []domain.TestStep{{
					Order:          1,
					Method:         method,
					Endpoint:       flow.Endpoint,
					ExpectedStatus: 422,
				}},
				Preconditions:   []string{"NOT " + pre},
				ExpectedOutcome: fmt.Sprintf("guard %q rejects the request with 422", pre),
			})
		}
	}

	// Invariant checks carry no steps; they are verified through the
	// snapshot diff after an unrelated operation.
	for _, inv := range ir.Invariants {
		scenarios = append(scenarios, domain.TestScenario{
			ID:              g.id(),
			Name:            fmt.Sprintf("%s invariant: %s", strings.ToLower(inv.Entity), inv.Description),
			Type:            domain.ScenarioInvariantCheck,
			Entity:          inv.Entity,
			ExpectedOutcome: inv.Description,
		})
	}

	return scenarios
}

// InferMethod guesses the HTTP method from path shape: an /items segment
// followed by a parameter is an append (POST), a trailing parameter
// without /items is an update (PUT), anything else defaults to POST.
func InferMethod(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	hasItems := false
	for _, s := range segs {
		if s == "items" {
			hasItems = true
		}
	}
	if hasItems {
		return "POST"
	}
	if len(segs) > 0 && strings.HasPrefix(segs[len(segs)-1], "{") {
		return "PUT"
	}
	return "POST"
}

// ExpectedStatus maps a method to its conventional success status.
func ExpectedStatus(method string) int {
	switch strings.ToUpper(method) {
	case "POST":
		return 201
	case "DELETE":
		return 204
	default:
		return 200
	}
}

// humanize turns flow/guard identifiers like "CartCheckout" or
// "cart_not_empty" into lowercase words.
func humanize(ident string) string {
	ident = strings.ReplaceAll(ident, "_", " ")
	ident = strings.ReplaceAll(ident, "-", " ")
	var words []string
	for _, part := range strings.Fields(ident) {
		for _, w := range camelcase.Split(part) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, " ")
}
