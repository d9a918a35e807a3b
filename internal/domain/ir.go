package domain

// EndpointDecl is one declared endpoint in the API-surface IR.
// Path may carry parameter placeholders like /products/{product_id}.
type EndpointDecl struct {
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	OperationID string `json:"operation_id" yaml:"operation_id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// APISurface is the ordered list of endpoints the generated code must
// implement.
type APISurface struct {
	Endpoints []EndpointDecl `json:"endpoints" yaml:"endpoints"`
}

// Flow is one unit of business behavior from the behavior IR: an entity,
// the endpoint that triggers the flow, and the guard preconditions that
// must hold before it runs.
type Flow struct {
	ID            string   `json:"id" yaml:"id"`
	Entity        string   `json:"entity" yaml:"entity"`
	Endpoint      string   `json:"endpoint" yaml:"endpoint"`
	Preconditions []string `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
}

// Invariant is a property of an entity that must hold across operations.
type Invariant struct {
	Entity      string `json:"entity" yaml:"entity"`
	Description string `json:"description" yaml:"description"`
}

// BehaviorIR carries the flows and invariants the scenario generator
// derives executable checks from.
type BehaviorIR struct {
	Flows      []Flow      `json:"flows" yaml:"flows"`
	Invariants []Invariant `json:"invariants,omitempty" yaml:"invariants,omitempty"`
}

// EntityTransitions declares the allowed status transitions of one entity
// as from-status -> allowed target statuses.
type EntityTransitions struct {
	Entity      string              `json:"entity" yaml:"entity"`
	Transitions map[string][]string `json:"transitions" yaml:"transitions"`
}

// SlotManifest lists where a generation pass is allowed to write.
// AllowedSlots are path globs; the three forbidden buckets are checked
// before the allow-list and always block.
type SlotManifest struct {
	AllowedSlots        []string `json:"allowed_slots" yaml:"allowed_slots"`
	ForbiddenFiles      []string `json:"forbidden_files,omitempty" yaml:"forbidden_files,omitempty"`
	InfrastructurePaths []string `json:"infrastructure_paths,omitempty" yaml:"infrastructure_paths,omitempty"`
	CoreModules         []string `json:"core_modules,omitempty" yaml:"core_modules,omitempty"`
}
