package application_test

import (
	"testing"

	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTracker struct {
	files []string
	err   error
}

func (f *fakeTracker) TouchedFiles(string) ([]string, error) { return f.files, f.err }

func TestGuardrailService_ExplicitListSkipsTracker(t *testing.T) {
	svc := application.NewGuardrailService(&fakeTracker{err: assert.AnError}, nil)

	reports, err := svc.Enforce("/repo", domain.SlotManifest{
		AllowedSlots: []string{"app/**"},
	}, []string{"app/routes/orders.py", "secrets/key.pem"})

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "secrets/key.pem", reports[0].FilePath)
	assert.True(t, reports[0].Blocked)
}

func TestGuardrailService_FallsBackToWorktree(t *testing.T) {
	svc := application.NewGuardrailService(&fakeTracker{files: []string{"README.md"}}, nil)

	reports, err := svc.Enforce("/repo", domain.SlotManifest{
		AllowedSlots: []string{"app/**"},
	}, nil)

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.ViolationOutsideSlots, reports[0].ViolationType)
}

func TestGuardrailService_TrackerErrorPropagates(t *testing.T) {
	svc := application.NewGuardrailService(&fakeTracker{err: assert.AnError}, nil)
	_, err := svc.Enforce("/repo", domain.SlotManifest{AllowedSlots: []string{"app/**"}}, nil)
	assert.Error(t, err)
}
