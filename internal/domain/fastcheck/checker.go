// Package fastcheck implements the static, offline checks that run first
// in the pipeline: syntax, regression patterns, dead code and import
// sanity. Everything here is deterministic and never retried.
package fastcheck

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// FileInput is everything the checker needs for one source module. Unit
// is nil when the file could not be parsed; ParseErr carries the reason.
type FileInput struct {
	RelPath  string
	Language string
	Content  string
	Unit     *domain.SourceUnit
	ParseErr error
}

type compiledPattern struct {
	name     string
	re       *regexp.Regexp
	severity string
	fixHint  string
}

// Checker runs the fast static checks with a compiled configuration.
type Checker struct {
	patterns []compiledPattern
	allowed  []string
}

// NewChecker compiles the configured regression patterns. A pattern that
// does not compile is a configuration error and aborts construction.
func NewChecker(cfg domain.Config) (*Checker, error) {
	c := &Checker{allowed: cfg.AllowedImports}
	for _, p := range cfg.RegressionPatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling regression pattern %q: %w", p.Name, err)
		}
		severity := p.Severity
		if severity == "" {
			severity = domain.SeverityWarning
		}
		c.patterns = append(c.patterns, compiledPattern{
			name:     p.Name,
			re:       re,
			severity: severity,
			fixHint:  p.FixHint,
		})
	}
	return c, nil
}

// CheckFile runs syntax, regression and dead-code checks over one file.
// Import checks need the whole tree and run separately via CheckImports.
func (c *Checker) CheckFile(in FileInput) []domain.Finding {
	if in.ParseErr != nil {
		return []domain.Finding{{
			Severity: domain.SeverityError,
			File:     in.RelPath,
			Message:  fmt.Sprintf("parse failure: %v", in.ParseErr),
			Category: domain.StageSyntax,
		}}
	}

	var findings []domain.Finding
	findings = append(findings, c.checkRegressions(in.RelPath, in.Content)...)
	if in.Unit != nil {
		findings = append(findings, checkDeadCode(in.RelPath, in.Unit)...)
	} else {
		findings = append(findings, checkDeadCodeText(in.RelPath, in.Language, in.Content)...)
	}
	return findings
}

// TimeoutFinding reports a per-file check that exceeded its budget.
// Timeouts are stage failures, never crashes.
func TimeoutFinding(relPath string, budget string) domain.Finding {
	return domain.Finding{
		Severity: domain.SeverityError,
		File:     relPath,
		Message:  fmt.Sprintf("check exceeded %s budget", budget),
		Category: "timeout",
	}
}

// ModuleIndex is the set of importable names derived from the generated
// tree: directory path segments and file basenames without extension.
type ModuleIndex map[string]bool

// BuildModuleIndex indexes a source tree for import resolution.
func BuildModuleIndex(tree *domain.SourceTree) ModuleIndex {
	idx := make(ModuleIndex)
	for _, f := range tree.AllFiles {
		norm := filepath.ToSlash(f)
		base := filepath.Base(norm)
		if i := strings.LastIndex(base, "."); i > 0 {
			base = base[:i]
		}
		idx[base] = true
		for _, seg := range strings.Split(filepath.Dir(norm), "/") {
			if seg != "." && seg != "" {
				idx[seg] = true
			}
		}
	}
	return idx
}
