package fastcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// checkDeadCode flags functions whose bodies are empty, contain only a
// no-op placeholder, or only a trivial return. Dead code is a warning:
// it does not block on its own, it feeds the repair loop.
func checkDeadCode(relPath string, unit *domain.SourceUnit) []domain.Finding {
	var findings []domain.Finding
	for _, fn := range unit.Functions {
		var reason string
		switch {
		case fn.OnlyPlaceholder:
			reason = "body contains only a placeholder"
		case fn.BodyStatements == 0:
			reason = "body is empty"
		case fn.OnlyTrivialReturn:
			reason = "body is a single trivial return"
		default:
			continue
		}
		name := fn.Name
		if fn.Receiver != "" {
			name = fn.Receiver + "." + name
		}
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			File:     relPath,
			Line:     fn.Line,
			Message:  fmt.Sprintf("dead code: %s %s", name, reason),
			Category: domain.StageDeadCode,
			FixHint:  "implement the function body or remove the declaration",
		})
	}
	return findings
}

var (
	pyDefRe    = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(`)
	jsFnStubRe = regexp.MustCompile(`function\s+(\w+)\s*\([^)]*\)\s*\{\s*\}`)
)

// checkDeadCodeText is the fallback for languages without structural
// parsing. It catches the common generated stubs: a def followed only by
// pass/... and empty JS function bodies on one line.
func checkDeadCodeText(relPath, language, content string) []domain.Finding {
	var findings []domain.Finding
	lines := strings.Split(content, "\n")

	if language == "python" {
		for i, line := range lines {
			m := pyDefRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			body := firstPythonBodyLine(lines, i, len(m[1]))
			if body == "pass" || body == "..." {
				findings = append(findings, domain.Finding{
					Severity: domain.SeverityWarning,
					File:     relPath,
					Line:     i + 1,
					Message:  fmt.Sprintf("dead code: %s body contains only a placeholder", m[2]),
					Category: domain.StageDeadCode,
					FixHint:  "implement the function body or remove the declaration",
				})
			}
		}
		return findings
	}

	for i, line := range lines {
		if m := jsFnStubRe.FindStringSubmatch(line); m != nil {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				File:     relPath,
				Line:     i + 1,
				Message:  fmt.Sprintf("dead code: %s body is empty", m[1]),
				Category: domain.StageDeadCode,
				FixHint:  "implement the function body or remove the declaration",
			})
		}
	}
	return findings
}

// firstPythonBodyLine returns the first non-comment statement of the
// function starting at defLine, stripped. Empty string when the body is
// missing entirely.
func firstPythonBodyLine(lines []string, defLine, defIndent int) string {
	for i := defLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, `"""`) {
			continue
		}
		indent := len(lines[i]) - len(strings.TrimLeft(lines[i], " \t"))
		if indent <= defIndent {
			return ""
		}
		return trimmed
	}
	return ""
}
