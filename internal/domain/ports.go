package domain

import "context"

// SourceTree holds the files of a generated project, addressed by path
// relative to the root.
type SourceTree struct {
	RootPath    string   `json:"root_path"`
	AllFiles    []string `json:"all_files"`
	SourceFiles []string `json:"source_files"`
}

// SourceScanner walks a generated project directory.
type SourceScanner interface {
	Scan(rootPath string, excludePaths ...string) (*SourceTree, error)
}

// FunctionDecl describes one function or method of a parsed source unit,
// with just enough body shape for the dead-code check.
type FunctionDecl struct {
	Name              string `json:"name"`
	Receiver          string `json:"receiver,omitempty"`
	Line              int    `json:"line"`
	BodyStatements    int    `json:"body_statements"`
	OnlyTrivialReturn bool   `json:"only_trivial_return"`
	OnlyPlaceholder   bool   `json:"only_placeholder"`
}

// ImportRef is one import statement of a source unit.
type ImportRef struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// SourceUnit is one parsed source module.
type SourceUnit struct {
	Path      string         `json:"path"`
	Language  string         `json:"language"`
	Package   string         `json:"package,omitempty"`
	Imports   []ImportRef    `json:"imports,omitempty"`
	Functions []FunctionDecl `json:"functions,omitempty"`
}

// RouteDecl is one route registration found in generated code.
type RouteDecl struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	File   string `json:"file"`
	Line   int    `json:"line"`
}

// SourceAnalyzer parses source modules and extracts route declarations.
// AnalyzeFile returns an error for unparseable input; callers turn that
// into a syntax finding rather than aborting.
type SourceAnalyzer interface {
	AnalyzeFile(filePath string) (*SourceUnit, error)
	ExtractRoutes(filePath string) ([]RouteDecl, error)
}

// ConfigLoader loads the tool configuration for a project.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// IRLoader loads the structured inputs produced by upstream collaborators.
type IRLoader interface {
	LoadAPISurface(path string) (*APISurface, error)
	LoadBehavior(path string) (*BehaviorIR, error)
	LoadSlotManifest(path string) (*SlotManifest, error)
	LoadTransitions(path string) ([]EntityTransitions, error)
}

// Record is one entity record as returned by the service under test.
type Record map[string]any

// StepResult is the observed outcome of executing one test step.
type StepResult struct {
	Status int            `json:"status"`
	Body   map[string]any `json:"body,omitempty"`
}

// ServiceClient talks to the live instance under test through its own
// external HTTP interface, never a direct store connection.
type ServiceClient interface {
	Ping(ctx context.Context) error
	FetchCollection(ctx context.Context, collectionPath string) ([]Record, error)
	FetchByID(ctx context.Context, collectionPath, id string) (Record, error)
	Execute(ctx context.Context, step TestStep) (*StepResult, error)
}

// ChangeTracker reports which files a generation pass touched.
type ChangeTracker interface {
	TouchedFiles(repoPath string) ([]string, error)
}

// MetricsSink receives counters and timings from the pipeline. It is
// injected so the gate stays testable without process-wide state.
type MetricsSink interface {
	Incr(name string)
	Observe(name string, value float64)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) Incr(string)             {}
func (NopMetrics) Observe(string, float64) {}
