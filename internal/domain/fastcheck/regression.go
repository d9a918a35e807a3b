package fastcheck

import (
	"fmt"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// checkRegressions matches the configured defect signatures line by line.
func (c *Checker) checkRegressions(relPath, content string) []domain.Finding {
	var findings []domain.Finding
	for lineNo, line := range strings.Split(content, "\n") {
		for _, p := range c.patterns {
			if !p.re.MatchString(line) {
				continue
			}
			findings = append(findings, domain.Finding{
				Severity: p.severity,
				File:     relPath,
				Line:     lineNo + 1,
				Message:  fmt.Sprintf("regression pattern %q matched: %s", p.name, strings.TrimSpace(line)),
				Category: domain.StageRegression,
				FixHint:  p.fixHint,
			})
		}
	}
	return findings
}
