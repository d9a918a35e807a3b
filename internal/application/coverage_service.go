package application

import (
	"path/filepath"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/coverage"
)

// CoverageService compares the declared API surface against the routes
// found in generated code.
type CoverageService struct {
	scanner      domain.SourceScanner
	analyzer     domain.SourceAnalyzer
	configLoader domain.ConfigLoader
	metrics      domain.MetricsSink
}

func NewCoverageService(
	sc domain.SourceScanner,
	analyzer domain.SourceAnalyzer,
	configLoader domain.ConfigLoader,
	metrics domain.MetricsSink,
) *CoverageService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &CoverageService{scanner: sc, analyzer: analyzer, configLoader: configLoader, metrics: metrics}
}

// Validate extracts route declarations from every source file and builds
// the coverage report. Files that fail route extraction are skipped; a
// missing route registers as a gap, which is the signal we want anyway.
func (s *CoverageService) Validate(projectPath string, surface *domain.APISurface) (*domain.PreValidationResult, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, err
	}

	tree, err := s.scanner.Scan(projectPath, cfg.ExcludePaths...)
	if err != nil {
		return nil, err
	}

	var routes []domain.RouteDecl
	for _, relPath := range tree.SourceFiles {
		rs, err := s.analyzer.ExtractRoutes(filepath.Join(tree.RootPath, relPath))
		if err != nil {
			continue
		}
		routes = append(routes, rs...)
	}

	validator := coverage.NewValidator(cfg.ActionSuffixes)
	result := validator.Validate(surface, routes)
	s.metrics.Observe("coverage.rate", result.CoverageRate)
	s.metrics.Incr("coverage.runs")
	return result, nil
}
