package application

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/fastcheck"
)

const fastCheckWorkers = 8

// FastCheckService runs the static checks over a generated tree:
// scan -> parse per file -> syntax/regression/dead-code/import findings.
// Files are independent and read-only, so they are checked in parallel.
type FastCheckService struct {
	scanner      domain.SourceScanner
	analyzer     domain.SourceAnalyzer
	configLoader domain.ConfigLoader
	metrics      domain.MetricsSink
}

func NewFastCheckService(
	sc domain.SourceScanner,
	analyzer domain.SourceAnalyzer,
	configLoader domain.ConfigLoader,
	metrics domain.MetricsSink,
) *FastCheckService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &FastCheckService{scanner: sc, analyzer: analyzer, configLoader: configLoader, metrics: metrics}
}

// Check validates every source file under projectPath and returns the
// aggregated result. Per-file timeouts become findings with category
// "timeout", never crashes.
func (s *FastCheckService) Check(ctx context.Context, projectPath string) (*domain.ValidationResult, error) {
	start := time.Now()

	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, err
	}
	checker, err := fastcheck.NewChecker(cfg)
	if err != nil {
		return nil, err
	}

	tree, err := s.scanner.Scan(projectPath, cfg.ExcludePaths...)
	if err != nil {
		return nil, err
	}
	idx := fastcheck.BuildModuleIndex(tree)

	var (
		mu       sync.Mutex
		findings []domain.Finding
		wg       sync.WaitGroup
		sem      = make(chan struct{}, fastCheckWorkers)
	)

	for _, relPath := range tree.SourceFiles {
		relPath := relPath
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			fs := s.checkOne(ctx, checker, idx, tree.RootPath, relPath, cfg.FileTimeout)
			mu.Lock()
			findings = append(findings, fs...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Deterministic ordering regardless of goroutine scheduling.
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Message < findings[j].Message
	})

	result := &domain.ValidationResult{
		Passed:       true,
		FilesChecked: len(tree.SourceFiles),
	}
	for _, f := range findings {
		result.Add(f)
		s.metrics.Incr("fastcheck.finding." + f.Category)
	}
	result.Duration = time.Since(start)
	s.metrics.Observe("fastcheck.duration_ms", float64(result.Duration.Milliseconds()))
	return result, nil
}

// checkOne runs all per-file checks under the file timeout. The check
// itself is pure CPU over a small file; the timeout guards against
// pathological inputs.
func (s *FastCheckService) checkOne(
	ctx context.Context,
	checker *fastcheck.Checker,
	idx fastcheck.ModuleIndex,
	rootPath, relPath string,
	timeout time.Duration,
) []domain.Finding {
	fileCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan []domain.Finding, 1)
	go func() {
		absPath := filepath.Join(rootPath, relPath)

		data, err := os.ReadFile(absPath)
		if err != nil {
			done <- []domain.Finding{{
				Severity: domain.SeverityError,
				File:     relPath,
				Message:  "unreadable file: " + err.Error(),
				Category: domain.StageSyntax,
			}}
			return
		}

		unit, parseErr := s.analyzer.AnalyzeFile(absPath)
		in := fastcheck.FileInput{
			RelPath:  relPath,
			Language: scanner.LanguageOf(relPath),
			Content:  string(data),
			Unit:     unit,
			ParseErr: parseErr,
		}
		fs := checker.CheckFile(in)
		fs = append(fs, checker.CheckImports(relPath, unit, idx)...)
		done <- fs
	}()

	select {
	case fs := <-done:
		return fs
	case <-fileCtx.Done():
		return []domain.Finding{fastcheck.TimeoutFinding(relPath, timeout.String())}
	}
}

// FastStages partitions a validation result into the fast pipeline
// stages for QA reporting.
func FastStages(vr *domain.ValidationResult) []domain.QAStageResult {
	stages := []string{
		domain.StageSyntax,
		domain.StageRegression,
		domain.StageDeadCode,
		domain.StageImportCheck,
	}

	byCategory := func(fs []domain.Finding, category string) []domain.Finding {
		var out []domain.Finding
		for _, f := range fs {
			if f.Category == category {
				out = append(out, f)
			}
		}
		return out
	}

	var results []domain.QAStageResult
	for _, stage := range stages {
		errs := byCategory(vr.Errors, stage)
		warns := byCategory(vr.Warnings, stage)
		results = append(results, domain.QAStageResult{
			Stage:    stage,
			Passed:   len(errs) == 0,
			Errors:   errs,
			Warnings: warns,
		})
	}
	return results
}
