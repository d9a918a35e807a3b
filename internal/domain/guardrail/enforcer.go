// Package guardrail enforces where generative edits may land. The check
// is purely location-based: even a semantically correct edit to a
// forbidden file is a violation.
package guardrail

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// Enforcer matches touched file paths against a slot manifest.
type Enforcer struct {
	manifest domain.SlotManifest
}

func NewEnforcer(manifest domain.SlotManifest) *Enforcer {
	return &Enforcer{manifest: manifest}
}

// Enforce checks every touched path. Forbidden buckets are evaluated
// before the allow-list; anything matching none of the allowed slots is
// reported as outside_allowed_slots. Every violation blocks.
func (e *Enforcer) Enforce(touched []string) []domain.ViolationReport {
	var reports []domain.ViolationReport
	for _, file := range touched {
		file = filepath.ToSlash(file)

		if pattern, ok := matchAny(e.manifest.InfrastructurePaths, file); ok {
			reports = append(reports, domain.ViolationReport{
				ViolationType: domain.ViolationInfrastructure,
				FilePath:      file,
				Reason:        fmt.Sprintf("infrastructure path matched %q", pattern),
				Blocked:       true,
			})
			continue
		}
		if pattern, ok := matchAny(e.manifest.CoreModules, file); ok {
			reports = append(reports, domain.ViolationReport{
				ViolationType: domain.ViolationCoreModule,
				FilePath:      file,
				Reason:        fmt.Sprintf("core module matched %q", pattern),
				Blocked:       true,
			})
			continue
		}
		if pattern, ok := matchAny(e.manifest.ForbiddenFiles, file); ok {
			reports = append(reports, domain.ViolationReport{
				ViolationType: domain.ViolationForbiddenFile,
				FilePath:      file,
				Reason:        fmt.Sprintf("forbidden file matched %q", pattern),
				Blocked:       true,
			})
			continue
		}
		if _, ok := matchAny(e.manifest.AllowedSlots, file); !ok {
			reports = append(reports, domain.ViolationReport{
				ViolationType: domain.ViolationOutsideSlots,
				FilePath:      file,
				Reason:        "path matches no allowed generation slot",
				Blocked:       true,
			})
		}
	}
	return reports
}

// HasBlocking reports whether any violation blocks the pass.
func HasBlocking(reports []domain.ViolationReport) bool {
	for _, r := range reports {
		if r.Blocked {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, file string) (string, bool) {
	for _, p := range patterns {
		if matchGlob(p, file) {
			return p, true
		}
	}
	return "", false
}

// matchGlob extends path.Match with the ** conventions slot manifests
// use: a leading **/ matches any directory prefix, a trailing /**
// matches everything under a directory, and a bare directory pattern
// matches its whole subtree.
func matchGlob(pattern, file string) bool {
	pattern = filepath.ToSlash(pattern)

	if strings.HasSuffix(pattern, "/**") {
		dir := strings.TrimSuffix(pattern, "/**")
		return matchGlob(dir, file) || strings.HasPrefix(file, dir+"/") || matchPrefixDir(dir, file)
	}
	if strings.HasPrefix(pattern, "**/") {
		tail := strings.TrimPrefix(pattern, "**/")
		if matchGlob(tail, file) {
			return true
		}
		segs := strings.Split(file, "/")
		for i := 1; i < len(segs); i++ {
			if matchGlob(tail, strings.Join(segs[i:], "/")) {
				return true
			}
		}
		return false
	}

	if ok, _ := path.Match(pattern, file); ok {
		return true
	}
	// A plain pattern without separators also matches the basename.
	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(file)); ok {
			return true
		}
	}
	return false
}

// matchPrefixDir matches a glob directory prefix against the leading
// segments of file (for patterns like "src/*/handlers/**").
func matchPrefixDir(dirPattern, file string) bool {
	patSegs := strings.Split(dirPattern, "/")
	fileSegs := strings.Split(file, "/")
	if len(fileSegs) <= len(patSegs) {
		return false
	}
	for i, ps := range patSegs {
		if ok, _ := path.Match(ps, fileSegs[i]); !ok {
			return false
		}
	}
	return true
}
