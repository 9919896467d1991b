// Package semantic provides the optional purpose-matching capability: a
// snippet is compared against a fixed catalogue of purpose templates and
// the best match contributes a description and a similarity-scaled
// confidence. When the matcher is unavailable, callers fall back to
// heuristic descriptions and a flat confidence; nothing in this package
// ever fails past its boundary.
package semantic

// DefaultTemplates is the fixed ordered catalogue of purpose prototypes.
// Ties on similarity resolve to the lowest index.
var DefaultTemplates = []string{
	"compute cryptographic hash of input data",
	"read a file from disk and return its contents",
	"write data to a file",
	"make an HTTP request to an external API",
	"parse JSON input and validate fields",
	"validate and sanitize user input",
	"authenticate a user and return a token",
	"send an email notification",
	"execute a shell command",
	"list files in a directory",
	"process image data (resize, crop, convert)",
	"perform database query and return records",
	"serialize object to JSON",
	"deserialize JSON to object and validate",
	"stream data over websocket",
	"handle a HTTP route request and return response",
	"cache results to disk or memory",
	"compute statistics (mean, median, stddev) on numeric data",
}

// Matcher is the semantic-matching capability. Callers must branch on
// Available() and never assume a concrete implementation.
type Matcher interface {
	// Available reports whether semantic matching can be used at all.
	Available() bool
	// BestTemplate returns the best-matching purpose template and its raw
	// similarity. When unavailable it returns ("", 0).
	BestTemplate(text string) (string, float64)
}

// vectorMatcher ranks templates by TF-IDF cosine similarity. Template
// vectors are prepared once at construction and treated as read-only for
// the process lifetime.
type vectorMatcher struct {
	engine    *Engine
	templates []string
	vectors   [][]float64
}

// NewMatcher builds a Matcher over the given template catalogue. An empty
// catalogue, or one whose vocabulary collapses to nothing, yields the
// disabled matcher rather than an error.
func NewMatcher(templates []string) Matcher {
	if len(templates) == 0 {
		return Disabled()
	}

	engine := NewEngine()
	engine.BuildVocabulary(templates)
	if len(engine.Vocabulary) == 0 {
		return Disabled()
	}

	m := &vectorMatcher{
		engine:    engine,
		templates: templates,
		vectors:   make([][]float64, len(templates)),
	}
	for i, t := range templates {
		m.vectors[i] = engine.Vectorize(t)
	}
	return m
}

func (m *vectorMatcher) Available() bool {
	return true
}

func (m *vectorMatcher) BestTemplate(text string) (string, float64) {
	vec := m.engine.Vectorize(text)
	if vec == nil {
		return "", 0
	}

	bestIdx := 0
	bestScore := -1.0
	for i, tv := range m.vectors {
		// Strict > keeps the first maximum on ties
		if score := CosineSimilarity(vec, tv); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore <= 0 {
		return "", 0
	}
	return m.templates[bestIdx], bestScore
}

// disabledMatcher is the always-unavailable default.
type disabledMatcher struct{}

// Disabled returns the no-op matcher used when semantic matching is off
// or could not be initialized. Initialization failure is permanent for
// the process; there is no retry.
func Disabled() Matcher {
	return disabledMatcher{}
}

func (disabledMatcher) Available() bool { return false }

func (disabledMatcher) BestTemplate(string) (string, float64) { return "", 0 }
