package domain

import "time"

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is a single diagnostic produced by a checker. Findings are
// immutable once created; producers build them fully and hand them off.
type Finding struct {
	Severity string `json:"severity"`
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
	Category string `json:"category"`
	FixHint  string `json:"fix_hint,omitempty"`
}

// ValidationResult is the outcome of the fast static checks over a
// generated tree. Passed is derived: false iff Errors is non-empty.
type ValidationResult struct {
	Passed       bool          `json:"passed"`
	Errors       []Finding     `json:"errors"`
	Warnings     []Finding     `json:"warnings"`
	FilesChecked int           `json:"files_checked"`
	Duration     time.Duration `json:"duration"`
}

// Add routes a finding into Errors or Warnings by severity and keeps
// Passed consistent with the errors list.
func (r *ValidationResult) Add(f Finding) {
	if f.Severity == SeverityError {
		r.Errors = append(r.Errors, f)
	} else {
		r.Warnings = append(r.Warnings, f)
	}
	r.Passed = len(r.Errors) == 0
}

// QA stage identifiers. Fast stages are offline and deterministic;
// the remaining stages need IR input or a live service.
const (
	StageSyntax            = "syntax"
	StageRegression        = "regression"
	StageDeadCode          = "dead_code"
	StageImportCheck       = "import_check"
	StageIRCompliance      = "ir_compliance"
	StageOpenAPICompliance = "openapi_compliance"
	StageInfraMigration    = "infra_migration"
	StageServiceStartup    = "service_startup"
	StageScenarioTest      = "scenario_test"
)

// QA levels.
const (
	LevelFast  = "fast"
	LevelHeavy = "heavy"
)

// QAStageResult is the outcome of one pipeline stage.
type QAStageResult struct {
	Stage      string        `json:"stage"`
	Passed     bool          `json:"passed"`
	Duration   time.Duration `json:"duration"`
	Errors     []Finding     `json:"errors,omitempty"`
	Warnings   []Finding     `json:"warnings,omitempty"`
	Skipped    bool          `json:"skipped"`
	SkipReason string        `json:"skip_reason,omitempty"`
}

// QAResult aggregates stage results for one validation run.
// Passed is the AND over non-skipped stages.
type QAResult struct {
	Level         string          `json:"level"`
	Passed        bool            `json:"passed"`
	Stages        []QAStageResult `json:"stages"`
	TotalDuration time.Duration   `json:"total_duration"`
}

// AddStage appends a stage result and recomputes Passed.
func (q *QAResult) AddStage(s QAStageResult) {
	q.Stages = append(q.Stages, s)
	q.TotalDuration += s.Duration
	q.Passed = true
	for _, st := range q.Stages {
		if !st.Skipped && !st.Passed {
			q.Passed = false
			return
		}
	}
}

// EndpointGap describes a declared endpoint with no counterpart in the
// generated code. IsAction marks non-CRUD action endpoints (trailing
// /activate, /checkout, ...), which are systematically under-generated.
type EndpointGap struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id"`
	EntityName  string `json:"entity_name,omitempty"`
	Description string `json:"description,omitempty"`
	IsAction    bool   `json:"is_action"`
}

// PreValidationResult compares the declared API surface against routes
// found in generated code. CoverageRate = |declared ∩ found| / |declared|,
// defined as 1.0 when no endpoints are declared. Extra endpoints are
// reported but never penalize coverage.
type PreValidationResult struct {
	IREndpoints   []string      `json:"ir_endpoints"`
	CodeEndpoints []string      `json:"code_endpoints"`
	Missing       []EndpointGap `json:"missing"`
	Extra         []string      `json:"extra"`
	CoverageRate  float64       `json:"coverage_rate"`
	Diagnostics   []string      `json:"diagnostics,omitempty"`
}

// Scenario types.
const (
	ScenarioHappyPath         = "happy_path"
	ScenarioGuardViolation    = "guard_violation"
	ScenarioTransitionValid   = "transition_valid"
	ScenarioTransitionInvalid = "transition_invalid"
	ScenarioInvariantCheck    = "invariant_check"
)

// TestStep is one HTTP call inside a scenario.
type TestStep struct {
	Order              int            `json:"order"`
	Method             string         `json:"method"`
	Endpoint           string         `json:"endpoint"`
	Body               map[string]any `json:"body,omitempty"`
	ExpectedStatus     int            `json:"expected_status"`
	ExpectedInResponse map[string]any `json:"expected_in_response,omitempty"`
}

// TestScenario is one executable behavior check derived from the IR.
type TestScenario struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	FlowID          string     `json:"flow_id,omitempty"`
	Entity          string     `json:"entity,omitempty"`
	Steps           []TestStep `json:"steps"`
	Preconditions   []string   `json:"preconditions,omitempty"`
	ExpectedOutcome string     `json:"expected_outcome"`
}

// Entity change types.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// EntityChange is one observed difference between two snapshots of the
// service's state.
type EntityChange struct {
	EntityType    string         `json:"entity_type"`
	EntityID      string         `json:"entity_id"`
	ChangeType    string         `json:"change_type"`
	OldValues     map[string]any `json:"old_values,omitempty"`
	NewValues     map[string]any `json:"new_values,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
}

// SnapshotDiff is the set of entity changes between a before and after
// snapshot. The three counts partition Changes by change type.
type SnapshotDiff struct {
	Changes      []EntityChange `json:"changes"`
	CreatedCount int            `json:"created_count"`
	UpdatedCount int            `json:"updated_count"`
	DeletedCount int            `json:"deleted_count"`
}

// NewSnapshotDiff builds a diff from changes, deriving the counts.
func NewSnapshotDiff(changes []EntityChange) *SnapshotDiff {
	d := &SnapshotDiff{Changes: changes}
	for _, c := range changes {
		switch c.ChangeType {
		case ChangeCreated:
			d.CreatedCount++
		case ChangeUpdated:
			d.UpdatedCount++
		case ChangeDeleted:
			d.DeletedCount++
		}
	}
	return d
}

// Per-check status inside a gate evaluation.
const (
	GatePass = "pass"
	GateFail = "fail"
	GateSkip = "skip"
	GateWarn = "warn"
)

// Violation types raised by the guardrail enforcer.
const (
	ViolationForbiddenFile  = "forbidden_file"
	ViolationOutsideSlots   = "outside_allowed_slots"
	ViolationInfrastructure = "infrastructure_modification"
	ViolationCoreModule     = "core_module_modification"
)

// ViolationReport describes one guardrail violation. Blocked violations
// fail the whole generation pass unconditionally.
type ViolationReport struct {
	ViolationType string `json:"violation_type"`
	FilePath      string `json:"file_path"`
	Reason        string `json:"reason"`
	Blocked       bool   `json:"blocked"`
}
