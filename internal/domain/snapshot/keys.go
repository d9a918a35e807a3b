// Package snapshot captures and diffs entity state of the service under
// test, keyed by "EntityType:id".
package snapshot

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/specgate/specgate/internal/domain"
)

// Snapshot maps "EntityType:id" keys to records.
type Snapshot map[string]domain.Record

// Key builds the canonical snapshot key for one record.
func Key(entityType, id string) string {
	return entityType + ":" + id
}

// SplitKey is the inverse of Key.
func SplitKey(key string) (entityType, id string) {
	entityType, id, _ = strings.Cut(key, ":")
	return entityType, id
}

// CollectionPath maps an entity type name to its conventional REST
// collection path: camel-case words lowered, joined with underscores,
// last word pluralized ("OrderItem" -> "order_items").
func CollectionPath(entityType string) string {
	words := camelcase.Split(entityType)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	if len(words) == 0 {
		return ""
	}
	words[len(words)-1] = Pluralize(words[len(words)-1])
	return strings.Join(words, "_")
}

// Pluralize applies the English pluralization rules that cover IR-scale
// entity vocabularies.
func Pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y") && !hasVowelBefore(word, "y"):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

func hasVowelBefore(word, suffix string) bool {
	i := len(word) - len(suffix) - 1
	if i < 0 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(word[i]))
}

// RecordID extracts the record identifier, tolerating the id field
// shapes generated services produce.
func RecordID(r domain.Record) string {
	for _, field := range []string{"id", "ID", "uuid", "pk"} {
		if v, ok := r[field]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
