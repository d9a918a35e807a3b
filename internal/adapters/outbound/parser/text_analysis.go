package parser

import (
	"regexp"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

var (
	pyImportRe     = regexp.MustCompile(`^\s*import\s+([\w.]+)`)
	pyFromImportRe = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\b`)
	pyDefRe        = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+(\w+)\s*\(`)

	jsImportRe  = regexp.MustCompile(`^\s*import\s+.*?from\s+['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	jsFnRe      = regexp.MustCompile(`function\s+(\w+)\s*\([^)]*\)\s*\{`)
)

// analyzePython extracts imports and function shapes textually. Body
// shape is judged from the first real statement after the def line.
func analyzePython(unit *domain.SourceUnit, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			unit.Imports = append(unit.Imports, domain.ImportRef{Path: m[1], Line: i + 1})
		}
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			unit.Imports = append(unit.Imports, domain.ImportRef{Path: m[1], Line: i + 1})
		}
		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			fd := domain.FunctionDecl{Name: m[2], Line: i + 1}
			body, count := pythonBodyShape(lines, i, len(m[1]))
			fd.BodyStatements = count
			switch body {
			case "":
				fd.BodyStatements = 0
			case "pass", "...":
				fd.OnlyPlaceholder = true
			case "return", "return None":
				if count == 1 {
					fd.OnlyTrivialReturn = true
				}
			}
			unit.Functions = append(unit.Functions, fd)
		}
	}
}

// pythonBodyShape returns the first statement of the def body and the
// count of statement lines at body indentation, skipping comments and
// blank lines.
func pythonBodyShape(lines []string, defLine, defIndent int) (first string, count int) {
	for i := defLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(lines[i]) - len(strings.TrimLeft(lines[i], " \t"))
		if indent <= defIndent {
			break
		}
		if first == "" {
			first = trimmed
		}
		count++
	}
	return first, count
}

func analyzeJS(unit *domain.SourceUnit, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if m := jsImportRe.FindStringSubmatch(line); m != nil {
			unit.Imports = append(unit.Imports, domain.ImportRef{Path: m[1], Line: i + 1})
		}
		if m := jsRequireRe.FindStringSubmatch(line); m != nil {
			unit.Imports = append(unit.Imports, domain.ImportRef{Path: m[1], Line: i + 1})
		}
		if m := jsFnRe.FindStringSubmatch(line); m != nil {
			fd := domain.FunctionDecl{Name: m[1], Line: i + 1, BodyStatements: 1}
			if strings.Contains(line, "{}") || strings.Contains(line, "{ }") {
				fd.BodyStatements = 0
			}
			unit.Functions = append(unit.Functions, fd)
		}
	}
}
