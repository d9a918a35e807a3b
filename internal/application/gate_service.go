package application

import (
	"context"
	"sync"
	"time"

	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/gate"
	"github.com/specgate/specgate/internal/domain/guardrail"
)

// GateOptions carries everything available for one gate run. Nil/empty
// sections mean the corresponding stage had no input and is skipped,
// subject to policy.
type GateOptions struct {
	Environment string
	Level       string
	ProjectPath string
	BaseURL     string

	Surface     *domain.APISurface
	Behavior    *domain.BehaviorIR
	Transitions []domain.EntityTransitions
	Manifest    *domain.SlotManifest

	// Touched overrides worktree detection of the generation pass.
	Touched []string

	// Facts supplied by the promotion collaborator.
	SuccessfulRuns int
	InfraHealthy   *bool
}

// GateReport is the gate's complete output: the verdict plus every
// underlying stage result, so the repair loop always has specifics to
// act on, even when everything failed.
type GateReport struct {
	Verdict       *gate.Verdict               `json:"verdict"`
	QA            *domain.QAResult            `json:"qa"`
	Validation    *domain.ValidationResult    `json:"validation,omitempty"`
	PreValidation *domain.PreValidationResult `json:"pre_validation,omitempty"`
	Violations    []domain.ViolationReport    `json:"violations,omitempty"`
	Scenarios     []ScenarioOutcome           `json:"scenarios,omitempty"`
}

// ServiceClientFactory builds a client for one live instance.
type ServiceClientFactory func(baseURL string, cfg domain.Config) domain.ServiceClient

// GateService is the only component external callers invoke directly.
// It pulls from the other services and applies the environment policy.
type GateService struct {
	fastCheck     *FastCheckService
	coverage      *CoverageService
	scenarios     *ScenarioService
	guardrails    *GuardrailService
	configLoader  domain.ConfigLoader
	clientFactory ServiceClientFactory
	metrics       domain.MetricsSink
}

func NewGateService(
	fastCheck *FastCheckService,
	coverage *CoverageService,
	scenarios *ScenarioService,
	guardrails *GuardrailService,
	configLoader domain.ConfigLoader,
	clientFactory ServiceClientFactory,
	metrics domain.MetricsSink,
) *GateService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &GateService{
		fastCheck:     fastCheck,
		coverage:      coverage,
		scenarios:     scenarios,
		guardrails:    guardrails,
		configLoader:  configLoader,
		clientFactory: clientFactory,
		metrics:       metrics,
	}
}

// Run executes the pipeline for one generation artifact and renders the
// verdict. Fast stages and endpoint coverage run concurrently over the
// read-only tree; heavy stages are skipped outright when a blocking
// guardrail violation or a fast failure under a short-circuiting policy
// makes the candidate doomed anyway.
func (s *GateService) Run(ctx context.Context, opts GateOptions) (*GateReport, error) {
	cfg, err := s.configLoader.Load(opts.ProjectPath)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.PolicyFor(opts.Environment)
	if err != nil {
		return nil, err
	}
	if opts.Level == "" {
		opts.Level = domain.LevelFast
	}

	report := &GateReport{QA: &domain.QAResult{Level: opts.Level, Passed: true}}

	// Guardrails are independent of content and run first: a blocking
	// violation makes everything downstream moot.
	if opts.Manifest != nil {
		report.Violations, err = s.guardrails.Enforce(opts.ProjectPath, *opts.Manifest, opts.Touched)
		if err != nil {
			return nil, err
		}
	}
	blocked := guardrail.HasBlocking(report.Violations)

	// Fast checker and coverage have no external dependencies and share
	// the tree read-only; run them in parallel.
	var (
		wg          sync.WaitGroup
		fastErr     error
		coverageErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		vr, err := s.fastCheck.Check(ctx, opts.ProjectPath)
		if err != nil {
			fastErr = err
			return
		}
		vr.Duration = time.Since(start)
		report.Validation = vr
	}()
	if opts.Surface != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pv, err := s.coverage.Validate(opts.ProjectPath, opts.Surface)
			if err != nil {
				coverageErr = err
				return
			}
			report.PreValidation = pv
		}()
	}
	wg.Wait()
	if fastErr != nil {
		return nil, fastErr
	}
	if coverageErr != nil {
		return nil, coverageErr
	}

	for _, st := range FastStages(report.Validation) {
		st.Duration = report.Validation.Duration / 4
		report.QA.AddStage(st)
	}
	report.QA.AddStage(s.coverageStage(report.PreValidation, policy, opts.Environment))

	inputs := gate.Inputs{
		Violations:     report.Violations,
		Validation:     report.Validation,
		PreValidation:  report.PreValidation,
		SuccessfulRuns: opts.SuccessfulRuns,
		InfraHealthy:   opts.InfraHealthy,
	}

	if opts.Level == domain.LevelHeavy {
		s.runHeavy(ctx, opts, cfg, policy, blocked, report, &inputs)
	} else {
		s.skipHeavy(report.QA, "fast level configured")
	}

	inputs.QA = report.QA
	report.Verdict = gate.Evaluate(opts.Environment, policy, inputs)
	if report.Verdict.Passed {
		s.metrics.Incr("gate.pass")
	} else {
		s.metrics.Incr("gate.fail")
	}
	return report, nil
}

// runHeavy executes startup, scenario and snapshot stages against the
// live instance, unless the candidate already failed unconditionally.
func (s *GateService) runHeavy(
	ctx context.Context,
	opts GateOptions,
	cfg domain.Config,
	policy domain.EnvironmentPolicy,
	blocked bool,
	report *GateReport,
	inputs *gate.Inputs,
) {
	switch {
	case blocked:
		s.skipHeavy(report.QA, "blocking guardrail violation")
		return
	case policy.ShortCircuit && report.Validation != nil && !report.Validation.Passed:
		s.skipHeavy(report.QA, "fast checks failed under strict policy")
		return
	case opts.BaseURL == "":
		s.skipHeavy(report.QA, "no service base URL provided")
		return
	}

	client := s.clientFactory(opts.BaseURL, cfg)
	snapSvc := NewSnapshotService(client, s.metrics)

	start := time.Now()
	reachable := snapSvc.Reachable(ctx)
	inputs.ServiceReachable = &reachable
	report.QA.AddStage(domain.QAStageResult{
		Stage:    domain.StageServiceStartup,
		Passed:   reachable,
		Duration: time.Since(start),
	})
	if !reachable {
		s.skipScenarioStage(report.QA, "service unreachable")
		return
	}

	scenarios := s.scenarios.Generate(opts.Behavior, opts.Transitions)
	if len(scenarios) == 0 {
		s.skipScenarioStage(report.QA, "no behavior IR provided")
		return
	}

	entityTypes := collectEntityTypes(opts.Behavior, opts.Transitions)

	start = time.Now()
	run, passed := 0, 0
	var findings []domain.Finding
	for _, sc := range scenarios {
		outcome := snapSvc.RunScenario(ctx, sc, entityTypes)
		report.Scenarios = append(report.Scenarios, *outcome)
		if outcome.Cancelled {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Message:  "scenario execution cancelled: " + sc.Name,
				Category: "timeout",
			})
			break
		}
		if outcome.Skipped {
			continue
		}
		run++
		if outcome.Passed {
			passed++
		} else {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Message:  sc.Name + ": " + outcome.FailureReason,
				Category: domain.StageScenarioTest,
			})
		}
	}

	inputs.ScenariosRun = run
	inputs.ScenariosPassed = passed
	report.QA.AddStage(domain.QAStageResult{
		Stage:    domain.StageScenarioTest,
		Passed:   run > 0 && passed == run,
		Duration: time.Since(start),
		Errors:   findings,
	})
}

func (s *GateService) coverageStage(pv *domain.PreValidationResult, policy domain.EnvironmentPolicy, env string) domain.QAStageResult {
	if pv == nil {
		return domain.QAStageResult{
			Stage:      domain.StageIRCompliance,
			Skipped:    true,
			SkipReason: "no API-surface IR provided",
		}
	}
	st := domain.QAStageResult{
		Stage:  domain.StageIRCompliance,
		Passed: pv.CoverageRate >= policy.IRComplianceThreshold(env),
	}
	for _, gap := range pv.Missing {
		st.Errors = append(st.Errors, domain.Finding{
			Severity: domain.SeverityError,
			Message:  "missing endpoint: " + gap.Method + " " + gap.Path,
			Category: domain.StageIRCompliance,
		})
	}
	return st
}

func (s *GateService) skipHeavy(qa *domain.QAResult, reason string) {
	for _, stage := range []string{domain.StageServiceStartup, domain.StageScenarioTest} {
		qa.AddStage(domain.QAStageResult{Stage: stage, Skipped: true, SkipReason: reason})
	}
}

func (s *GateService) skipScenarioStage(qa *domain.QAResult, reason string) {
	qa.AddStage(domain.QAStageResult{Stage: domain.StageScenarioTest, Skipped: true, SkipReason: reason})
}

func collectEntityTypes(ir *domain.BehaviorIR, transitions []domain.EntityTransitions) []string {
	seen := make(map[string]bool)
	var types []string
	add := func(entity string) {
		if entity != "" && !seen[entity] {
			seen[entity] = true
			types = append(types, entity)
		}
	}
	if ir != nil {
		for _, f := range ir.Flows {
			add(f.Entity)
		}
		for _, inv := range ir.Invariants {
			add(inv.Entity)
		}
	}
	for _, et := range transitions {
		add(et.Entity)
	}
	return types
}
