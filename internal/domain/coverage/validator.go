package coverage

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// Validator compares a declared API surface against extracted routes.
type Validator struct {
	actionRes []*regexp.Regexp
}

// NewValidator compiles the action-suffix patterns. Suffixes are plain
// path segments ("activate", "items"); matching is anchored at the end
// of the path, parameter segments allowed after /items.
func NewValidator(actionSuffixes []string) *Validator {
	v := &Validator{}
	for _, s := range actionSuffixes {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		v.actionRes = append(v.actionRes, regexp.MustCompile(`/`+regexp.QuoteMeta(s)+`(/\{[^}/]+\})?$`))
	}
	return v
}

// IsAction reports whether a path ends in a known non-CRUD action
// segment.
func (v *Validator) IsAction(path string) bool {
	for _, re := range v.actionRes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Validate builds the coverage report for one generated tree. Missing
// gaps carry the original (non-normalized) IR path so the repair step
// targets the true declaration.
func (v *Validator) Validate(surface *domain.APISurface, routes []domain.RouteDecl) *domain.PreValidationResult {
	result := &domain.PreValidationResult{}

	irSet := make(map[string]domain.EndpointDecl, len(surface.Endpoints))
	for _, ep := range surface.Endpoints {
		sig := Signature(ep.Method, ep.Path)
		if _, seen := irSet[sig]; !seen {
			irSet[sig] = ep
			result.IREndpoints = append(result.IREndpoints, sig)
		}
	}

	codeSet := make(map[string]bool, len(routes))
	for _, r := range routes {
		sig := Signature(r.Method, r.Path)
		if !codeSet[sig] {
			codeSet[sig] = true
			result.CodeEndpoints = append(result.CodeEndpoints, sig)
		}
	}

	matched := 0
	for sig, decl := range irSet {
		if codeSet[sig] {
			matched++
			continue
		}
		result.Missing = append(result.Missing, domain.EndpointGap{
			Method:      strings.ToUpper(decl.Method),
			Path:        decl.Path,
			OperationID: decl.OperationID,
			EntityName:  entityName(decl.Path),
			Description: decl.Description,
			IsAction:    v.IsAction(decl.Path),
		})
	}
	sort.Slice(result.Missing, func(i, j int) bool {
		if result.Missing[i].Path != result.Missing[j].Path {
			return result.Missing[i].Path < result.Missing[j].Path
		}
		return result.Missing[i].Method < result.Missing[j].Method
	})

	for sig := range codeSet {
		if _, ok := irSet[sig]; !ok {
			result.Extra = append(result.Extra, sig)
		}
	}
	sort.Strings(result.Extra)

	if len(irSet) == 0 {
		result.CoverageRate = 1.0
	} else {
		result.CoverageRate = float64(matched) / float64(len(irSet))
	}

	// Zero overlap with routes on both sides usually means the
	// comparison itself is broken, not the generated code.
	if result.CoverageRate == 0 && len(irSet) > 0 && len(codeSet) > 0 {
		result.Diagnostics = append(result.Diagnostics, fmt.Sprintf(
			"no overlap between %d declared and %d generated endpoints; likely a path normalization mismatch",
			len(irSet), len(codeSet)))
	}

	return result
}

// entityName derives the primary entity from the first non-parameter
// path segment, singularized ("/products/{id}/activate" -> "product").
func entityName(path string) string {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		return singularize(seg)
	}
	return ""
}

func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "ses"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return s[:len(s)-1]
	}
	return s
}
