package snapshot

import (
	"reflect"
	"sort"

	"github.com/specgate/specgate/internal/domain"
)

// Diff computes the typed difference between two snapshots. Keys only in
// after are creations, keys only in before are deletions; keys in both
// with deep-unequal records are updates, with ChangedFields holding the
// symmetric set of field names whose values differ (a field present on
// one side only counts as changed).
func Diff(before, after Snapshot) *domain.SnapshotDiff {
	keys := make([]string, 0, len(before)+len(after))
	seen := make(map[string]bool, len(before)+len(after))
	for k := range before {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range after {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []domain.EntityChange
	for _, k := range keys {
		entityType, id := SplitKey(k)
		oldRec, inBefore := before[k]
		newRec, inAfter := after[k]

		switch {
		case !inBefore:
			changes = append(changes, domain.EntityChange{
				EntityType: entityType,
				EntityID:   id,
				ChangeType: domain.ChangeCreated,
				NewValues:  newRec,
			})
		case !inAfter:
			changes = append(changes, domain.EntityChange{
				EntityType: entityType,
				EntityID:   id,
				ChangeType: domain.ChangeDeleted,
				OldValues:  oldRec,
			})
		default:
			fields := changedFields(oldRec, newRec)
			if len(fields) == 0 {
				continue
			}
			changes = append(changes, domain.EntityChange{
				EntityType:    entityType,
				EntityID:      id,
				ChangeType:    domain.ChangeUpdated,
				OldValues:     oldRec,
				NewValues:     newRec,
				ChangedFields: fields,
			})
		}
	}

	return domain.NewSnapshotDiff(changes)
}

func changedFields(oldRec, newRec domain.Record) []string {
	fieldSet := make(map[string]bool)
	for f, oldV := range oldRec {
		newV, ok := newRec[f]
		if !ok || !reflect.DeepEqual(oldV, newV) {
			fieldSet[f] = true
		}
	}
	for f := range newRec {
		if _, ok := oldRec[f]; !ok {
			fieldSet[f] = true
		}
	}

	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
