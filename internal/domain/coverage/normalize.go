// Package coverage compares the declared API surface against the routes
// actually present in generated code.
package coverage

import (
	"regexp"
	"strings"
)

var paramRe = regexp.MustCompile(`\{[^}/]+\}`)

// NormalizePath collapses every parameter placeholder to {id} so that
// /products/{product_id} and /products/{pid} compare equal. The operation
// is idempotent. Collapsing parameter names can merge endpoints that
// differ only by parameter identity at the same position; that precision
// trade-off is accepted.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return paramRe.ReplaceAllString(path, "{id}")
}

// Signature builds the comparable "METHOD /normalized/path" form.
func Signature(method, path string) string {
	return strings.ToUpper(method) + " " + NormalizePath(path)
}
