package extract

import (
	"regexp"
	"strings"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// Python patterns
var (
	pyDef       = regexp.MustCompile(`^def\s+(\w+)\s*\(`)
	pyDictKey   = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*([^,}\n]+)`)
	pyIntValue  = regexp.MustCompile(`^-?\d+$`)
	pyNumValue  = regexp.MustCompile(`^-?\d+\.\d+([eE][+-]?\d+)?$`)
)

// PythonFunctions extracts top-level function declarations from Python
// source. Nested and method definitions are ignored, matching the
// one-tool-per-entry-point intent. Declarations whose signature never
// closes are treated as malformed and skipped.
func PythonFunctions(content string) []types.FunctionDecl {
	lines := strings.Split(content, "\n")
	var decls []types.FunctionDecl

	for i := 0; i < len(lines); i++ {
		m := pyDef.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		// Accumulate the signature across lines until parens balance
		sig := lines[i]
		j := i
		for parenBalance(sig) > 0 && j+1 < len(lines) {
			j++
			sig += "\n" + lines[j]
		}
		if parenBalance(sig) != 0 {
			continue // malformed, skip this file position
		}

		open := strings.Index(sig, "(")
		close := matchingParen(sig, open)
		if close < 0 {
			continue
		}
		paramsStr := sig[open+1 : close]

		// Optional return annotation between ')' and the trailing ':'
		tail := sig[close+1:]
		returnType := ""
		if idx := strings.Index(tail, "->"); idx != -1 {
			ann := tail[idx+2:]
			if c := strings.LastIndex(ann, ":"); c != -1 {
				ann = ann[:c]
			}
			returnType = strings.TrimSpace(ann)
		}

		// Body: everything indented under the def
		end := j + 1
		for end < len(lines) {
			line := lines[end]
			if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
				break
			}
			end++
		}
		// Trim trailing blank lines from the snippet
		last := end
		for last > j+1 && strings.TrimSpace(lines[last-1]) == "" {
			last--
		}

		decls = append(decls, types.FunctionDecl{
			Name:       m[1],
			Snippet:    strings.Join(lines[i:last], "\n"),
			Params:     parsePythonParams(paramsStr),
			ReturnType: returnType,
		})
		i = end - 1
	}

	return decls
}

// parsePythonParams splits a def's parameter list, skipping self/cls and
// star parameters. Defaults attach to the parameter carrying the "=",
// which by Python syntax are the trailing positional parameters.
func parsePythonParams(paramsStr string) []types.ParamDef {
	if strings.TrimSpace(paramsStr) == "" {
		return nil
	}

	var params []types.ParamDef
	for _, p := range splitTopLevel(paramsStr) {
		p = strings.TrimSpace(p)
		if p == "" || p == "self" || p == "cls" || strings.HasPrefix(p, "*") {
			continue
		}

		param := types.ParamDef{}

		if idx := topLevelIndex(p, '='); idx != -1 {
			param.HasDefault = true
			p = strings.TrimSpace(p[:idx])
		}

		if idx := topLevelIndex(p, ':'); idx != -1 {
			param.Name = strings.TrimSpace(p[:idx])
			param.Annotation = strings.TrimSpace(p[idx+1:])
		} else {
			param.Name = p
		}

		if param.Name != "" {
			params = append(params, param)
		}
	}
	return params
}

// PythonOutputSchema infers an output schema for a declaration. An explicit
// return annotation wins; otherwise the first dict literal constructed in a
// return statement yields an object schema with all keys required; failing
// both, the schema is an untyped object.
func PythonOutputSchema(decl types.FunctionDecl) types.Schema {
	if decl.ReturnType != "" {
		return types.Schema{Type: MapAnnotation(decl.ReturnType)}
	}

	if dict, ok := returnedDictLiteral(decl.Snippet); ok {
		props := make(map[string]types.SchemaProperty)
		var required []string
		for _, m := range pyDictKey.FindAllStringSubmatch(dict, -1) {
			key := m[1]
			if _, seen := props[key]; seen {
				continue
			}
			props[key] = types.SchemaProperty{Type: literalType(strings.TrimSpace(m[2]))}
			required = append(required, key)
		}
		if len(props) > 0 {
			return types.Schema{Type: "object", Properties: props, Required: required}
		}
	}

	return types.Schema{Type: "object"}
}

// returnedDictLiteral finds the first "return {" in a function body and
// returns the balanced dict literal text.
func returnedDictLiteral(body string) (string, bool) {
	idx := strings.Index(body, "return {")
	if idx == -1 {
		idx = strings.Index(body, "return{")
	}
	if idx == -1 {
		return "", false
	}
	start := strings.Index(body[idx:], "{")
	if start == -1 {
		return "", false
	}
	start += idx

	depth := 0
	for i := start; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[start : i+1], true
			}
		}
	}
	return "", false
}

// literalType classifies a dict-literal value expression. Non-literal
// values default to string.
func literalType(v string) string {
	switch {
	case strings.HasPrefix(v, "'") || strings.HasPrefix(v, "\""):
		return "string"
	case v == "True" || v == "False":
		return "boolean"
	case pyIntValue.MatchString(v):
		return "integer"
	case pyNumValue.MatchString(v):
		return "number"
	default:
		return "string"
	}
}

// --- small lexical helpers ---

func parenBalance(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}

// matchingParen returns the index of the paren closing the one at open.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on commas not nested inside brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// topLevelIndex returns the index of the first c outside any brackets, or -1.
func topLevelIndex(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if s[i] == c && depth == 0 {
				return i
			}
		}
	}
	return -1
}
