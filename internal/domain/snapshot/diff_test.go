package snapshot_test

import (
	"testing"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_CreatedUpdatedDeleted(t *testing.T) {
	before := snapshot.Snapshot{
		"Cart:c1":  {"id": "c1", "status": "active", "items": 2},
		"Order:o9": {"id": "o9", "status": "pending"},
	}
	after := snapshot.Snapshot{
		"Cart:c1":  {"id": "c1", "status": "checked_out", "items": 2},
		"Order:o1": {"id": "o1", "status": "pending"},
	}

	diff := snapshot.Diff(before, after)

	assert.Equal(t, 1, diff.CreatedCount)
	assert.Equal(t, 1, diff.UpdatedCount)
	assert.Equal(t, 1, diff.DeletedCount)

	byType := map[string]domain.EntityChange{}
	for _, ch := range diff.Changes {
		byType[ch.ChangeType] = ch
	}

	created := byType[domain.ChangeCreated]
	assert.Equal(t, "Order", created.EntityType)
	assert.Equal(t, "o1", created.EntityID)
	assert.NotNil(t, created.NewValues)
	assert.Nil(t, created.OldValues)

	updated := byType[domain.ChangeUpdated]
	assert.Equal(t, []string{"status"}, updated.ChangedFields)

	deleted := byType[domain.ChangeDeleted]
	assert.Equal(t, "o9", deleted.EntityID)
	assert.NotNil(t, deleted.OldValues)
}

func TestDiff_NoChanges(t *testing.T) {
	snap := snapshot.Snapshot{
		"Cart:c1": {"id": "c1", "status": "active"},
	}
	diff := snapshot.Diff(snap, snap)
	assert.Empty(t, diff.Changes)
	assert.Equal(t, 0, diff.CreatedCount+diff.UpdatedCount+diff.DeletedCount)
}

func TestDiff_ChangedFieldsAreSymmetric(t *testing.T) {
	before := snapshot.Snapshot{
		"Order:o1": {"id": "o1", "discount": 5},
	}
	after := snapshot.Snapshot{
		"Order:o1": {"id": "o1", "tracking": "abc"},
	}

	diff := snapshot.Diff(before, after)
	require.Len(t, diff.Changes, 1)
	// A field present on either side only still counts as changed.
	assert.Equal(t, []string{"discount", "tracking"}, diff.Changes[0].ChangedFields)
}

func TestDiff_Deterministic(t *testing.T) {
	before := snapshot.Snapshot{}
	after := snapshot.Snapshot{
		"Order:o2": {"id": "o2"},
		"Cart:c1":  {"id": "c1"},
		"Order:o1": {"id": "o1"},
	}

	first := snapshot.Diff(before, after)
	second := snapshot.Diff(before, after)
	require.Equal(t, len(first.Changes), len(second.Changes))
	for i := range first.Changes {
		assert.Equal(t, first.Changes[i].EntityID, second.Changes[i].EntityID)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key := snapshot.Key("OrderItem", "42")
	assert.Equal(t, "OrderItem:42", key)
	entityType, id := snapshot.SplitKey(key)
	assert.Equal(t, "OrderItem", entityType)
	assert.Equal(t, "42", id)
}

func TestCollectionPath(t *testing.T) {
	tests := []struct {
		entity string
		want   string
	}{
		{"Order", "orders"},
		{"OrderItem", "order_items"},
		{"Category", "categories"},
		{"Box", "boxes"},
		{"Cart", "carts"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, snapshot.CollectionPath(tt.entity), tt.entity)
	}
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "7", snapshot.RecordID(domain.Record{"id": 7}))
	assert.Equal(t, "u-1", snapshot.RecordID(domain.Record{"uuid": "u-1"}))
	assert.Equal(t, "9", snapshot.RecordID(domain.Record{"pk": "9"}))
	assert.Equal(t, "", snapshot.RecordID(domain.Record{"name": "no id"}))
}
