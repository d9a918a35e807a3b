package fastcheck

import (
	"fmt"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// CheckImports flags imports that resolve neither to the generated tree
// nor to the configured external allow-list. Go standard library paths
// (no dot in the first segment) are always considered resolved.
func (c *Checker) CheckImports(relPath string, unit *domain.SourceUnit, idx ModuleIndex) []domain.Finding {
	if unit == nil {
		return nil
	}
	var findings []domain.Finding
	for _, imp := range unit.Imports {
		if c.importResolves(unit.Language, imp.Path, idx) {
			continue
		}
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityError,
			File:     relPath,
			Line:     imp.Line,
			Message:  fmt.Sprintf("unresolved import %q", imp.Path),
			Category: domain.StageImportCheck,
			FixHint:  "generate the missing module or add the dependency to the allow-list",
		})
	}
	return findings
}

func (c *Checker) importResolves(language, path string, idx ModuleIndex) bool {
	for _, allowed := range c.allowed {
		if path == allowed || strings.HasPrefix(path, allowed) {
			return true
		}
	}

	switch language {
	case "go":
		first, _, _ := strings.Cut(path, "/")
		if !strings.Contains(first, ".") {
			return true // standard library
		}
		// Local package: resolve the last segment against the tree.
		return idx[lastSegment(path)]
	case "python":
		first, _, _ := strings.Cut(path, ".")
		if pyStdlib[first] || idx[first] {
			return true
		}
		return idx[lastSegment(strings.ReplaceAll(path, ".", "/"))]
	default:
		// Relative imports always point into the tree.
		if strings.HasPrefix(path, ".") {
			return idx[lastSegment(path)]
		}
		return idx[lastSegment(path)]
	}
}

// pyStdlib covers the standard-library modules generated services
// actually reach for; anything else must resolve or be allow-listed.
var pyStdlib = map[string]bool{
	"abc": true, "asyncio": true, "collections": true, "contextlib": true,
	"dataclasses": true, "datetime": true, "decimal": true, "enum": true,
	"functools": true, "hashlib": true, "itertools": true, "json": true,
	"logging": true, "math": true, "os": true, "pathlib": true, "re": true,
	"secrets": true, "string": true, "sys": true, "time": true,
	"typing": true, "uuid": true,
}

func lastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
