// Package catalog assembles the de-duplicated tool candidate list for one
// analysis run: a structural Python pass, then a JavaScript/TypeScript
// export pass, then a fallback pass over files that merely look like tool
// or CLI entry points. Within each pass, index order is preserved; the
// list is never re-sorted by confidence.
package catalog

import (
	"fmt"
	"path"
	"strings"

	"github.com/saeedalam/repoprobe/internal/capability"
	"github.com/saeedalam/repoprobe/internal/extract"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/pkg/types"
)

// Assemble runs all passes over the file index. Every candidate carries at
// least one evidence string and a confidence in [0,1]; the fallback pass
// never duplicates a file already covered structurally.
func Assemble(files []types.FileRecord, matcher semantic.Matcher) []types.ToolCandidate {
	var tools []types.ToolCandidate
	tools = append(tools, pythonPass(files, matcher)...)
	tools = append(tools, jsPass(files, matcher)...)
	tools = append(tools, fallbackPass(files, matcher, tools)...)
	return tools
}

func pythonPass(files []types.FileRecord, matcher semantic.Matcher) []types.ToolCandidate {
	var tools []types.ToolCandidate
	for _, f := range files {
		if f.Language != "python" {
			continue
		}
		for _, decl := range extract.Languages[f.Language](f.Content) {
			// Matching context: the declaration plus the file's opening lines
			context := decl.Snippet + "\n\n" + firstLines(f.Content, 40)

			description := fmt.Sprintf("Function `%s` (heuristic description).", decl.Name)
			evidence := []string{fmt.Sprintf("function %s in %s", decl.Name, f.Path)}
			confidence := semantic.HeuristicConfidence
			if matcher.Available() {
				if label, sim := matcher.BestTemplate(context); sim > 0 {
					description = fmt.Sprintf("%s. Function `%s`.", label, decl.Name)
					evidence = append(evidence, fmt.Sprintf("matched template: %s (sim=%.2f)", label, sim))
					confidence = semantic.ScaleConfidence(sim)
				}
			}

			inputSchema := extract.InputSchema(decl.Params)
			outputSchema := extract.PythonOutputSchema(decl)

			request := make(map[string]string, len(inputSchema.Properties))
			for name, prop := range inputSchema.Properties {
				request[name] = prop.Type
			}

			tools = append(tools, types.ToolCandidate{
				Name:              decl.Name,
				Description:       description,
				PredictedFilename: f.Path,
				PredictedSnippet:  decl.Snippet,
				InputSchema:       inputSchema,
				OutputSchema:      outputSchema,
				PayloadShape:      types.PayloadShape{Request: request, Response: outputSchema},
				Explanation:       fmt.Sprintf("Detected Python function `%s` in %s", decl.Name, f.Path),
				PossibleSyscalls:  capability.Detect(decl.Snippet + "\n" + f.Content),
				Confidence:        confidence,
				Evidence:          evidence,
			})
		}
	}
	return tools
}

func jsPass(files []types.FileRecord, matcher semantic.Matcher) []types.ToolCandidate {
	var tools []types.ToolCandidate
	for _, f := range files {
		if f.Language != "javascript" && f.Language != "typescript" {
			continue
		}
		head := firstChars(f.Content, 400)
		for _, decl := range extract.Languages[f.Language](f.Content) {
			description := fmt.Sprintf("Exported JS function %s", decl.Name)
			evidence := []string{fmt.Sprintf("exported %s in %s", decl.Name, f.Path)}
			confidence := semantic.HeuristicConfidence
			if matcher.Available() {
				if label, sim := matcher.BestTemplate(decl.Snippet + "\n" + head); sim > 0 {
					description = fmt.Sprintf("%s. Function `%s`.", label, decl.Name)
					evidence = append(evidence, fmt.Sprintf("matched template: %s (sim=%.2f)", label, sim))
					confidence = semantic.ScaleConfidence(sim)
				}
			}

			tools = append(tools, types.ToolCandidate{
				Name:              decl.Name,
				Description:       description,
				PredictedFilename: f.Path,
				PredictedSnippet:  decl.Snippet,
				InputSchema:       types.Schema{Type: "object", Properties: map[string]types.SchemaProperty{}},
				OutputSchema:      types.Schema{Type: "object"},
				PayloadShape:      types.PayloadShape{Request: map[string]string{}},
				Explanation:       fmt.Sprintf("Exported function `%s` in %s", decl.Name, f.Path),
				PossibleSyscalls:  capability.Detect(decl.Snippet + "\n" + head),
				Confidence:        confidence,
				Evidence:          evidence,
			})
		}
	}
	return tools
}

// fallbackPass synthesizes a candidate for any tools/cli/commands-looking
// file that no structural pass covered.
func fallbackPass(files []types.FileRecord, matcher semantic.Matcher, existing []types.ToolCandidate) []types.ToolCandidate {
	covered := make(map[string]bool, len(existing))
	for _, t := range existing {
		covered[t.PredictedFilename] = true
	}

	var tools []types.ToolCandidate
	for _, f := range files {
		if !LooksLikeToolFile(f.Path) || covered[f.Path] {
			continue
		}
		covered[f.Path] = true

		snippet := firstLines(f.Content, 30)

		description := fmt.Sprintf("Inferred tool from file %s", f.Path)
		confidence := semantic.HeuristicConfidence
		evidence := []string{fmt.Sprintf("file %s exists under tools/", f.Path)}
		if matcher.Available() {
			if label, sim := matcher.BestTemplate(snippet); sim > 0 {
				description = fmt.Sprintf("%s. File `%s`.", label, f.Path)
				confidence = semantic.ScaleConfidence(sim)
			}
		}

		tools = append(tools, types.ToolCandidate{
			Name:              fileStem(f.Path),
			Description:       description,
			PredictedFilename: f.Path,
			PredictedSnippet:  snippet,
			InputSchema:       types.Schema{Type: "object"},
			OutputSchema:      types.Schema{Type: "object"},
			PayloadShape:      types.PayloadShape{Request: map[string]string{}},
			Explanation:       fmt.Sprintf("Inferred tool from tools-like file %s", f.Path),
			PossibleSyscalls:  capability.Detect(snippet),
			Confidence:        confidence,
			Evidence:          evidence,
		})
	}
	return tools
}

// LooksLikeToolFile reports whether a path heuristically names a tool, CLI
// or commands file.
func LooksLikeToolFile(p string) bool {
	lower := strings.ToLower(p)
	return strings.Contains(p, "/tools/") ||
		strings.HasPrefix(lower, "tools") ||
		strings.Contains(lower, "cli") ||
		strings.Contains(lower, "commands")
}

func fileStem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func firstChars(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
