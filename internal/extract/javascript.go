package extract

import (
	"regexp"
	"strings"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// JSSnippetUnavailable marks an export whose defining line could not be
// located. Callers may treat such candidates as lower-signal.
const JSSnippetUnavailable = "<js snippet unavailable>"

// jsExport matches the common CommonJS and ES module export idioms.
// Exactly one capture group is non-empty per match.
var jsExport = regexp.MustCompile(`(?:module\.exports|exports)\s*=\s*(\w+)|export function (\w+)|export default function (\w+)|exports\.(\w+)\s*=`)

// JSExports extracts exported function names from JavaScript/TypeScript
// source. There is no full parse here: schemas for these declarations stay
// empty and the snippet is a small window around the line that defines the
// export, when such a line exists.
func JSExports(content string) []types.FunctionDecl {
	var decls []types.FunctionDecl
	lines := strings.Split(content, "\n")

	for _, m := range jsExport.FindAllStringSubmatch(content, -1) {
		name := ""
		for _, g := range m[1:] {
			if g != "" {
				name = g
				break
			}
		}
		if name == "" {
			continue
		}

		decls = append(decls, types.FunctionDecl{
			Name:    name,
			Snippet: jsSnippetAround(lines, name),
		})
	}

	return decls
}

// jsSnippetAround scans for a line mentioning name next to a function or
// arrow-function marker and returns the surrounding lines.
func jsSnippetAround(lines []string, name string) string {
	for i, line := range lines {
		if strings.Contains(line, name) && (strings.Contains(line, "function") || strings.Contains(line, "=>")) {
			lo := i - 4
			if lo < 0 {
				lo = 0
			}
			hi := i + 4
			if hi > len(lines) {
				hi = len(lines)
			}
			return strings.Join(lines[lo:hi], "\n")
		}
	}
	return JSSnippetUnavailable
}
