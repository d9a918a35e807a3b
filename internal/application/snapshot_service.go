package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/snapshot"
)

// ScenarioOutcome is the observed result of executing one scenario
// against a live instance.
type ScenarioOutcome struct {
	ScenarioID    string               `json:"scenario_id"`
	Name          string               `json:"name"`
	Type          string               `json:"type"`
	Passed        bool                 `json:"passed"`
	Skipped       bool                 `json:"skipped"`
	Cancelled     bool                 `json:"cancelled"`
	FailureReason string               `json:"failure_reason,omitempty"`
	StepResults   []domain.StepResult  `json:"step_results,omitempty"`
	Diff          *domain.SnapshotDiff `json:"diff,omitempty"`
}

// SnapshotService captures entity state through the service's external
// interface and executes scenarios against it. One service instance
// wraps one live instance; scenario execution is serialized through mu
// so no two scenarios' snapshots interleave. Independent instances get
// independent services and run fully in parallel.
type SnapshotService struct {
	client  domain.ServiceClient
	metrics domain.MetricsSink
	mu      sync.Mutex
}

func NewSnapshotService(client domain.ServiceClient, metrics domain.MetricsSink) *SnapshotService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &SnapshotService{client: client, metrics: metrics}
}

// Reachable reports whether the instance answers HTTP at all.
func (s *SnapshotService) Reachable(ctx context.Context) bool {
	return s.client.Ping(ctx) == nil
}

// Capture snapshots the listed entity types. A fetch failure for one
// type leaves that type out of the snapshot instead of failing the whole
// capture; the diff stays computable over whatever was captured. ids,
// when non-empty for a type, scopes the fetch to those records.
func (s *SnapshotService) Capture(ctx context.Context, entityTypes []string, ids map[string][]string) snapshot.Snapshot {
	snap := make(snapshot.Snapshot)
	for _, entityType := range entityTypes {
		collection := snapshot.CollectionPath(entityType)

		if scoped := ids[entityType]; len(scoped) > 0 {
			for _, id := range scoped {
				rec, err := s.client.FetchByID(ctx, collection, id)
				if err != nil {
					s.metrics.Incr("snapshot.fetch_failure")
					continue
				}
				snap[snapshot.Key(entityType, id)] = rec
			}
			continue
		}

		records, err := s.client.FetchCollection(ctx, collection)
		if err != nil {
			s.metrics.Incr("snapshot.fetch_failure")
			continue
		}
		for _, rec := range records {
			id := snapshot.RecordID(rec)
			if id == "" {
				continue
			}
			snap[snapshot.Key(entityType, id)] = rec
		}
	}
	return snap
}

// RunScenario executes one scenario between a before and after snapshot
// and diffs the two. Invariant-check scenarios carry no steps and are
// reported as skipped; their verification rides on the diffs of other
// scenarios. A cancellation mid-scenario discards the diff entirely so
// no partially-applied side effects are ever reported.
func (s *SnapshotService) RunScenario(ctx context.Context, sc domain.TestScenario, entityTypes []string) *ScenarioOutcome {
	outcome := &ScenarioOutcome{
		ScenarioID: sc.ID,
		Name:       sc.Name,
		Type:       sc.Type,
	}
	if len(sc.Steps) == 0 {
		outcome.Skipped = true
		return outcome
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.Capture(ctx, entityTypes, nil)

	outcome.Passed = true
	for _, step := range sc.Steps {
		if ctx.Err() != nil {
			outcome.Cancelled = true
			outcome.Passed = false
			outcome.Diff = nil
			outcome.FailureReason = "cancelled mid-scenario; diff discarded"
			s.metrics.Incr("scenario.cancelled")
			return outcome
		}

		res, err := s.client.Execute(ctx, step)
		if err != nil {
			if ctx.Err() != nil {
				outcome.Cancelled = true
				outcome.Passed = false
				outcome.FailureReason = "cancelled mid-scenario; diff discarded"
				s.metrics.Incr("scenario.cancelled")
				return outcome
			}
			outcome.Passed = false
			outcome.FailureReason = fmt.Sprintf("step %d: %v", step.Order, err)
			break
		}
		outcome.StepResults = append(outcome.StepResults, *res)

		if res.Status != step.ExpectedStatus {
			outcome.Passed = false
			outcome.FailureReason = fmt.Sprintf("step %d: expected status %d, got %d",
				step.Order, step.ExpectedStatus, res.Status)
		}
		if outcome.Passed && len(step.ExpectedInResponse) > 0 {
			if field, ok := missingExpectation(step.ExpectedInResponse, res.Body); !ok {
				outcome.Passed = false
				outcome.FailureReason = fmt.Sprintf("step %d: response field %q does not match expectation",
					step.Order, field)
			}
		}
	}

	if ctx.Err() != nil {
		outcome.Cancelled = true
		outcome.Passed = false
		outcome.Diff = nil
		outcome.FailureReason = "cancelled mid-scenario; diff discarded"
		s.metrics.Incr("scenario.cancelled")
		return outcome
	}

	after := s.Capture(ctx, entityTypes, nil)
	outcome.Diff = snapshot.Diff(before, after)

	if outcome.Passed {
		s.metrics.Incr("scenario.passed")
	} else {
		s.metrics.Incr("scenario.failed")
	}
	return outcome
}

// missingExpectation reports the first expected field whose observed
// value differs. Comparison is on the string form, which tolerates JSON
// number decoding.
func missingExpectation(expected map[string]any, body map[string]any) (string, bool) {
	for field, want := range expected {
		got, ok := body[field]
		if !ok || fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return field, false
		}
	}
	return "", true
}
