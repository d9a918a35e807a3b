package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient simulates a live instance with in-memory collections and a
// scripted response per step.
type fakeClient struct {
	pingErr     error
	collections map[string][]domain.Record
	fetchErr    map[string]error
	execute     func(step domain.TestStep) (*domain.StepResult, error)
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) FetchCollection(_ context.Context, collectionPath string) ([]domain.Record, error) {
	if err := f.fetchErr[collectionPath]; err != nil {
		return nil, err
	}
	return f.collections[collectionPath], nil
}

func (f *fakeClient) FetchByID(_ context.Context, collectionPath, id string) (domain.Record, error) {
	for _, rec := range f.collections[collectionPath] {
		if rec["id"] == id {
			return rec, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeClient) Execute(_ context.Context, step domain.TestStep) (*domain.StepResult, error) {
	return f.execute(step)
}

func TestSnapshotService_CapturePartialOnFetchFailure(t *testing.T) {
	client := &fakeClient{
		collections: map[string][]domain.Record{
			"orders": {{"id": "o1", "status": "pending"}},
		},
		fetchErr: map[string]error{"carts": errors.New("boom")},
	}
	svc := application.NewSnapshotService(client, nil)

	snap := svc.Capture(context.Background(), []string{"Order", "Cart"}, nil)

	// The failed type is absent; the captured one is intact.
	require.Len(t, snap, 1)
	assert.Equal(t, "pending", snap["Order:o1"]["status"])
}

func TestSnapshotService_RunScenarioPassesAndDiffs(t *testing.T) {
	client := &fakeClient{
		collections: map[string][]domain.Record{"orders": nil},
	}
	// Executing the step creates a record, so the after snapshot differs.
	client.execute = func(step domain.TestStep) (*domain.StepResult, error) {
		client.collections["orders"] = []domain.Record{{"id": "o1", "status": "pending"}}
		return &domain.StepResult{Status: 201}, nil
	}
	svc := application.NewSnapshotService(client, nil)

	outcome := svc.RunScenario(context.Background(), domain.TestScenario{
		ID:   "SCN-0001",
		Name: "order create succeeds",
		Type: domain.ScenarioHappyPath,
		Steps: []domain.TestStep{{
			Order: 1, Method: "POST", Endpoint: "/orders", ExpectedStatus: 201,
		}},
	}, []string{"Order"})

	assert.True(t, outcome.Passed)
	assert.False(t, outcome.Skipped)
	require.NotNil(t, outcome.Diff)
	assert.Equal(t, 1, outcome.Diff.CreatedCount)
	assert.Equal(t, "Order", outcome.Diff.Changes[0].EntityType)
}

func TestSnapshotService_StatusMismatchFails(t *testing.T) {
	client := &fakeClient{
		collections: map[string][]domain.Record{"orders": nil},
		execute: func(step domain.TestStep) (*domain.StepResult, error) {
			return &domain.StepResult{Status: 500}, nil
		},
	}
	svc := application.NewSnapshotService(client, nil)

	outcome := svc.RunScenario(context.Background(), domain.TestScenario{
		ID:    "SCN-0002",
		Steps: []domain.TestStep{{Order: 1, Method: "POST", Endpoint: "/orders", ExpectedStatus: 201}},
	}, []string{"Order"})

	assert.False(t, outcome.Passed)
	assert.Contains(t, outcome.FailureReason, "expected status 201")
	// The diff is still computed for failed scenarios.
	assert.NotNil(t, outcome.Diff)
}

func TestSnapshotService_ExpectedResponseFieldMismatch(t *testing.T) {
	client := &fakeClient{
		collections: map[string][]domain.Record{"orders": nil},
		execute: func(step domain.TestStep) (*domain.StepResult, error) {
			return &domain.StepResult{Status: 200, Body: map[string]any{"status": "pending"}}, nil
		},
	}
	svc := application.NewSnapshotService(client, nil)

	outcome := svc.RunScenario(context.Background(), domain.TestScenario{
		ID: "SCN-0003",
		Steps: []domain.TestStep{{
			Order: 1, Method: "PUT", Endpoint: "/orders/{id}",
			ExpectedStatus:     200,
			ExpectedInResponse: map[string]any{"status": "paid"},
		}},
	}, []string{"Order"})

	assert.False(t, outcome.Passed)
	assert.Contains(t, outcome.FailureReason, "status")
}

func TestSnapshotService_InvariantScenarioIsSkipped(t *testing.T) {
	svc := application.NewSnapshotService(&fakeClient{}, nil)

	outcome := svc.RunScenario(context.Background(), domain.TestScenario{
		ID:   "SCN-0004",
		Type: domain.ScenarioInvariantCheck,
	}, []string{"Order"})

	assert.True(t, outcome.Skipped)
	assert.False(t, outcome.Passed)
	assert.Nil(t, outcome.Diff)
}

func TestSnapshotService_CancellationDiscardsDiff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{
		collections: map[string][]domain.Record{"orders": nil},
		execute: func(step domain.TestStep) (*domain.StepResult, error) {
			cancel()
			return &domain.StepResult{Status: 201}, nil
		},
	}
	svc := application.NewSnapshotService(client, nil)

	outcome := svc.RunScenario(ctx, domain.TestScenario{
		ID: "SCN-0005",
		Steps: []domain.TestStep{
			{Order: 1, Method: "POST", Endpoint: "/orders", ExpectedStatus: 201},
			{Order: 2, Method: "POST", Endpoint: "/orders", ExpectedStatus: 201},
		},
	}, []string{"Order"})

	assert.True(t, outcome.Cancelled)
	assert.False(t, outcome.Passed)
	assert.Nil(t, outcome.Diff)
	assert.Contains(t, outcome.FailureReason, "discarded")
}

func TestSnapshotService_Reachable(t *testing.T) {
	assert.True(t, application.NewSnapshotService(&fakeClient{}, nil).Reachable(context.Background()))
	assert.False(t, application.NewSnapshotService(&fakeClient{pingErr: errors.New("down")}, nil).Reachable(context.Background()))
}
