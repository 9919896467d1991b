package semantic

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// MaxVocabularySize caps the vocabulary to prevent excessive memory usage.
const MaxVocabularySize = 5000

// Engine is a TF-IDF vector model over a small fixed corpus. It stands in
// for a neural embedding backend: deterministic, dependency-free, and good
// enough to rank purpose templates by lexical overlap.
type Engine struct {
	Vocabulary map[string]int // term -> index
	IDF        []float64
	DocCount   int
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{Vocabulary: make(map[string]int)}
}

// synonyms maps common code abbreviations to the vocabulary the purpose
// templates are written in, so that identifier-heavy snippets land near
// their prose descriptions.
var synonyms = map[string]string{
	"auth":   "authenticate",
	"db":     "database",
	"cfg":    "configuration",
	"config": "configuration",
	"cmd":    "command",
	"exec":   "execute",
	"dir":    "directory",
	"fs":     "file",
	"req":    "request",
	"res":    "response",
	"resp":   "response",
	"msg":    "message",
	"json":   "json",
	"http":   "http",
	"url":    "http",
	"sha256": "hash",
	"md5":    "hash",
	"hmac":   "hash",
	"ws":     "websocket",
	"sock":   "socket",
	"img":    "image",
	"stats":  "statistics",
	"avg":    "mean",
	"stdev":  "stddev",
	"ser":    "serialize",
	"deser":  "deserialize",
	"val":    "validate",
	"san":    "sanitize",
}

// suffixes to strip for simple stemming, ordered longest first.
var stemmingSuffixes = []string{
	"ation", "tion", "ment", "ness", "able", "ible",
	"ing", "ous", "ive", "ful", "less", "ist",
	"ed", "ly", "er", "al", "es",
}

// simpleStem strips common English suffixes from a word.
// Only applied to words >= 5 chars; result must be >= 3 chars.
func simpleStem(word string) string {
	if len(word) < 5 {
		return word
	}
	for _, suffix := range stemmingSuffixes {
		if strings.HasSuffix(word, suffix) {
			stem := word[:len(word)-len(suffix)]
			if len(stem) >= 3 {
				return stem
			}
		}
	}
	return word
}

// stopwords is a set of common English words to filter out.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "as": true,
	"be": true, "was": true, "are": true, "were": true, "been": true, "has": true,
	"have": true, "had": true, "do": true, "does": true, "did": true, "will": true,
	"this": true, "that": true, "these": true, "those": true, "not": true,
	"no": true, "if": true, "then": true, "else": true, "when": true,
	"which": true, "what": true, "where": true, "how": true, "all": true,
	"each": true, "some": true, "such": true, "only": true, "so": true,
	"than": true, "too": true, "very": true, "can": true, "just": true,
	"return": true, "def": true, "self": true, "none": true, "true": true,
	"false": true, "import": true, "pass": true,
}

// Tokenize splits text into lowercase tokens, removing stopwords and short
// tokens, expanding each with its stemmed form and synonym (if any), then
// generating bigrams from the expanded list.
func (e *Engine) Tokenize(text string) []string {
	text = strings.ToLower(text)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	var expanded []string
	for _, t := range tokens {
		if len(t) < 2 {
			continue
		}
		if stopwords[t] {
			continue
		}
		expanded = append(expanded, t)
		if stemmed := simpleStem(t); stemmed != t {
			expanded = append(expanded, stemmed)
		}
		if syn, ok := synonyms[t]; ok {
			expanded = append(expanded, syn)
		}
	}

	baseLen := len(expanded)
	for i := 0; i < baseLen-1; i++ {
		expanded = append(expanded, expanded[i]+"_"+expanded[i+1])
	}

	return expanded
}

// BuildVocabulary builds the vocabulary and IDF values from a corpus.
// Every term is kept regardless of document frequency: the template corpus
// is a handful of short sentences and its rare terms carry the signal.
func (e *Engine) BuildVocabulary(documents []string) {
	e.DocCount = len(documents)
	if e.DocCount == 0 {
		return
	}

	df := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]bool)
		for _, t := range e.Tokenize(doc) {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	type termIDF struct {
		term string
		idf  float64
	}
	n := float64(e.DocCount)
	allTerms := make([]termIDF, 0, len(df))
	for t, f := range df {
		idf := math.Log(n/float64(f)) + 1.0
		allTerms = append(allTerms, termIDF{t, idf})
	}
	// Keep the most discriminative terms when over the cap
	sort.Slice(allTerms, func(i, j int) bool {
		if allTerms[i].idf != allTerms[j].idf {
			return allTerms[i].idf > allTerms[j].idf
		}
		return allTerms[i].term < allTerms[j].term // stable tiebreak
	})
	if len(allTerms) > MaxVocabularySize {
		allTerms = allTerms[:MaxVocabularySize]
	}

	e.Vocabulary = make(map[string]int, len(allTerms))
	e.IDF = make([]float64, len(allTerms))
	for idx, td := range allTerms {
		e.Vocabulary[td.term] = idx
		e.IDF[idx] = td.idf
	}
}

// Vectorize computes the TF-IDF vector for a single document.
func (e *Engine) Vectorize(text string) []float64 {
	if len(e.Vocabulary) == 0 {
		return nil
	}

	tokens := e.Tokenize(text)
	if len(tokens) == 0 {
		return make([]float64, len(e.Vocabulary))
	}

	tf := make(map[string]float64)
	for _, t := range tokens {
		tf[t]++
	}
	docLen := float64(len(tokens))
	for k := range tf {
		tf[k] /= docLen
	}

	vec := make([]float64, len(e.Vocabulary))
	for term, i := range e.Vocabulary {
		if tfVal, ok := tf[term]; ok {
			vec[i] = tfVal * e.IDF[i]
		}
	}

	return vec
}

// CosineSimilarity computes the cosine similarity between two vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
