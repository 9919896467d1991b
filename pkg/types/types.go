package types

import "time"

// =============================================================================
// FILE INDEX TYPES
// =============================================================================

// FileRecord is one file discovered during a repository walk.
// Records are produced fresh for every analysis run and never cached.
type FileRecord struct {
	Path      string `json:"path"`     // relative to the repo root
	AbsPath   string `json:"abs_path"`
	Extension string `json:"extension"`
	Language  string `json:"language,omitempty"` // from the fixed ext->language map, empty if unknown
	Mime      string `json:"mime,omitempty"`
	Content   string `json:"content"` // best-effort decoded text, empty on decode failure
}

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// SchemaProperty describes one field of an inferred schema.
type SchemaProperty struct {
	Type string `json:"type"` // string, integer, number, boolean, array, object
}

// Schema is a best-effort structural description of a payload.
// Every entry in Required must exist as a key in Properties.
type Schema struct {
	Type       string                    `json:"type,omitempty"`
	Properties map[string]SchemaProperty `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
}

// PayloadShape is the flattened request/response view of a tool contract.
type PayloadShape struct {
	Request  map[string]string `json:"request"`
	Response Schema            `json:"response"`
}

// =============================================================================
// TOOL TYPES
// =============================================================================

// Capability flags probable OS-level behavior found in source text.
type Capability struct {
	Kind   string `json:"syscall"`
	Reason string `json:"reason"`
}

// ToolCandidate is an inferred callable entry point with a guessed contract.
// Confidence is always within [0,1] and Evidence is never empty.
type ToolCandidate struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	PredictedFilename string       `json:"predicted_filename"`
	PredictedSnippet  string       `json:"predicted_code_snippet"`
	InputSchema       Schema       `json:"input_schema"`
	OutputSchema      Schema       `json:"output_schema"`
	PayloadShape      PayloadShape `json:"payload_shape"`
	Explanation       string       `json:"explanation"`
	PossibleSyscalls  []Capability `json:"possible_syscalls"`
	Confidence        float64      `json:"confidence"`
	Evidence          []string     `json:"evidence"`
}

// FunctionDecl is a raw function declaration as seen by a syntax extractor,
// before schema inference turns it into a ToolCandidate.
type FunctionDecl struct {
	Name       string     `json:"name"`
	Snippet    string     `json:"snippet"`
	Params     []ParamDef `json:"params,omitempty"`
	ReturnType string     `json:"return_type,omitempty"`
}

// ParamDef is one declared parameter.
type ParamDef struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
	HasDefault bool   `json:"has_default,omitempty"`
}

// =============================================================================
// VERDICT TYPES
// =============================================================================

// TransportVerdict is the selected transport style for a repository.
type TransportVerdict struct {
	Type       string   `json:"type"` // stdio, websocket, http, sse
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// RunTemplate is the best-guess command to run the analyzed project.
type RunTemplate struct {
	Cmd        string   `json:"cmd"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// AnalysisReport is the terminal artifact of one analysis run.
// Immutable once assembled.
type AnalysisReport struct {
	ID           string           `json:"id,omitempty"`
	Repo         string           `json:"repo"`
	AnalysisTime time.Time        `json:"analysis_time"`
	Transport    TransportVerdict `json:"transport"`
	Tools        []ToolCandidate  `json:"tools"`
	RunTemplate  RunTemplate      `json:"run_template"`
	Notes        []string         `json:"notes"`
}

// ReportSummary is a listing-level view of a persisted report.
type ReportSummary struct {
	ID           string    `json:"id"`
	Repo         string    `json:"repo"`
	Transport    string    `json:"transport"`
	ToolCount    int       `json:"tool_count"`
	AnalysisTime time.Time `json:"analysis_time"`
}
