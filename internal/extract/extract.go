// Package extract enumerates function-like declarations from source text
// and infers best-effort input/output schemas for them. Parsing is
// regex/line based: malformed source never fails a run, the file is
// simply skipped.
package extract

import (
	"strings"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// Extractor produces function declarations from one file's decoded content.
type Extractor func(content string) []types.FunctionDecl

// Languages maps each supported language tag to its extractor. Languages
// absent here have no structural extractor; their files may still be
// picked up by the tools-path fallback in the catalog.
var Languages = map[string]Extractor{
	"python":     PythonFunctions,
	"javascript": JSExports,
	"typescript": JSExports,
}

// annotationTypes maps type-annotation fragments to semantic schema types.
// Matching is case-insensitive substring, first entry wins, so the order
// is part of the contract: "List[int]" resolves to integer, not array.
var annotationTypes = []struct {
	fragment string
	jsonType string
}{
	{"str", "string"},
	{"int", "integer"},
	{"float", "number"},
	{"bool", "boolean"},
	{"list", "array"},
	{"dict", "object"},
}

// MapAnnotation derives a semantic type from an annotation string.
// Unannotated or unrecognized parameters default to "string".
func MapAnnotation(ann string) string {
	if ann == "" {
		return "string"
	}
	s := strings.ToLower(ann)
	for _, t := range annotationTypes {
		if strings.Contains(s, t.fragment) {
			return t.jsonType
		}
	}
	return "string"
}

// InputSchema builds an object schema from a declared parameter list.
// A parameter is required unless its declaration carries a default value.
func InputSchema(params []types.ParamDef) types.Schema {
	props := make(map[string]types.SchemaProperty, len(params))
	required := []string{}
	for _, p := range params {
		props[p.Name] = types.SchemaProperty{Type: MapAnnotation(p.Annotation)}
		if !p.HasDefault {
			required = append(required, p.Name)
		}
	}
	return types.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}
