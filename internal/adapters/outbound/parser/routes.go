package parser

import (
	"os"
	"regexp"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

// Route-declaration markers. Generated services register routes through
// a small set of conventional shapes; each regex captures method and
// path.
var routePatterns = []struct {
	re          *regexp.Regexp
	methodGroup int
	pathGroup   int
}{
	// FastAPI / Flask method decorators: @app.get("/products")
	{regexp.MustCompile(`@\w+\.(get|post|put|patch|delete)\(\s*["']([^"']+)["']`), 1, 2},
	// Flask route decorator with methods list: @app.route("/x", methods=["POST"])
	{regexp.MustCompile(`@\w+\.route\(\s*["']([^"']+)["']\s*,\s*methods=\[["'](\w+)["']`), 2, 1},
	// Express: app.get('/products', handler)
	{regexp.MustCompile(`\b\w+\.(get|post|put|patch|delete)\(\s*['"](/[^'"]*)['"]`), 1, 2},
	// gin / chi / echo: r.GET("/products", handler)
	{regexp.MustCompile(`\b\w+\.(GET|POST|PUT|PATCH|DELETE)\(\s*"([^"]+)"`), 1, 2},
	// net/http 1.22 patterns: mux.HandleFunc("POST /products", handler)
	{regexp.MustCompile(`HandleFunc\(\s*"(GET|POST|PUT|PATCH|DELETE)\s+([^"]+)"`), 1, 2},
}

// pyParamRe rewrites framework parameter syntaxes to {name} form.
var routeParamRes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`<[\w]+:(\w+)>`), "{$1}"}, // Flask <int:id>
	{regexp.MustCompile(`<(\w+)>`), "{$1}"},       // Flask <id>
	{regexp.MustCompile(`:(\w+)`), "{$1}"},        // Express :id
}

// ExtractRoutes scans one file for route declarations.
func (p *SourceParser) ExtractRoutes(filePath string) ([]domain.RouteDecl, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var routes []domain.RouteDecl
	for i, line := range strings.Split(string(data), "\n") {
		for _, rp := range routePatterns {
			m := rp.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			routes = append(routes, domain.RouteDecl{
				Method: strings.ToUpper(m[rp.methodGroup]),
				Path:   canonicalizeParams(m[rp.pathGroup]),
				File:   filePath,
				Line:   i + 1,
			})
			break
		}
	}
	return routes, nil
}

func canonicalizeParams(path string) string {
	for _, pr := range routeParamRes {
		path = pr.re.ReplaceAllString(path, pr.repl)
	}
	return path
}
