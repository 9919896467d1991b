package semantic

import "testing"

// =============================================================================
// MATCHER AVAILABILITY
// =============================================================================

func TestNewMatcherAvailable(t *testing.T) {
	m := NewMatcher(DefaultTemplates)
	if !m.Available() {
		t.Fatal("Matcher over the default catalogue should be available")
	}
}

func TestEmptyCatalogueDisabled(t *testing.T) {
	m := NewMatcher(nil)
	if m.Available() {
		t.Error("Empty catalogue should yield the disabled matcher")
	}
	if label, sim := m.BestTemplate("anything"); label != "" || sim != 0 {
		t.Errorf("Disabled matcher should return (\"\", 0), got (%q, %v)", label, sim)
	}
}

func TestDisabledMatcher(t *testing.T) {
	m := Disabled()
	if m.Available() {
		t.Error("Disabled() should never be available")
	}
	if label, sim := m.BestTemplate("compute hash"); label != "" || sim != 0 {
		t.Errorf("Disabled matcher should return (\"\", 0), got (%q, %v)", label, sim)
	}
}

// =============================================================================
// TEMPLATE RANKING
// =============================================================================

func TestBestTemplateRanksByOverlap(t *testing.T) {
	m := NewMatcher(DefaultTemplates)

	label, sim := m.BestTemplate("def digest(data):\n    return hashlib.sha256(data).hexdigest()")
	if label != "compute cryptographic hash of input data" {
		t.Errorf("Expected the hash template, got %q (sim=%v)", label, sim)
	}
	if sim <= 0 || sim > 1 {
		t.Errorf("Similarity out of range: %v", sim)
	}
}

func TestBestTemplateDeterministic(t *testing.T) {
	m := NewMatcher(DefaultTemplates)
	text := "read configuration file from disk and return its contents"

	l1, s1 := m.BestTemplate(text)
	l2, s2 := m.BestTemplate(text)
	if l1 != l2 || s1 != s2 {
		t.Errorf("Same input gave different results: (%q, %v) vs (%q, %v)", l1, s1, l2, s2)
	}
}

func TestBestTemplateNoSignal(t *testing.T) {
	m := NewMatcher(DefaultTemplates)
	if label, sim := m.BestTemplate(""); label != "" || sim != 0 {
		t.Errorf("Empty text should yield no match, got (%q, %v)", label, sim)
	}
}

func TestBestTemplateTieKeepsFirst(t *testing.T) {
	// Identical templates: every query ties, the lowest index must win
	m := NewMatcher([]string{"send an email notification", "send an email notification"})
	label, sim := m.BestTemplate("send an email notification")
	if label != "send an email notification" {
		t.Errorf("Unexpected label %q", label)
	}
	if sim <= 0 {
		t.Errorf("Expected positive similarity, got %v", sim)
	}
	vm, ok := m.(*vectorMatcher)
	if !ok {
		t.Fatal("Expected a vector matcher")
	}
	vec := vm.engine.Vectorize("send an email notification")
	s0 := CosineSimilarity(vec, vm.vectors[0])
	s1 := CosineSimilarity(vec, vm.vectors[1])
	if s0 != s1 {
		t.Fatalf("Test setup broken: identical templates should tie (%v vs %v)", s0, s1)
	}
}

// =============================================================================
// TF-IDF ENGINE
// =============================================================================

func TestTokenizeExpandsSynonyms(t *testing.T) {
	e := NewEngine()
	tokens := e.Tokenize("sha256 digest")
	found := false
	for _, tok := range tokens {
		if tok == "hash" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected 'sha256' to expand to 'hash', tokens: %v", tokens)
	}
}

func TestTokenizeDropsStopwordsAndShortTokens(t *testing.T) {
	e := NewEngine()
	for _, tok := range e.Tokenize("the a return x") {
		if tok == "the" || tok == "a" || tok == "return" || tok == "x" {
			t.Errorf("Token %q should have been filtered", tok)
		}
	}
}

func TestVocabularyKeepsRareTerms(t *testing.T) {
	e := NewEngine()
	e.BuildVocabulary(DefaultTemplates)
	if len(e.Vocabulary) == 0 {
		t.Fatal("Vocabulary should not be empty for the default catalogue")
	}
	// "websocket" appears in exactly one template and must survive
	if _, ok := e.Vocabulary["websocket"]; !ok {
		t.Error("Single-document term 'websocket' missing from vocabulary")
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 0, 1}
	if got := CosineSimilarity(a, a); got < 0.999 || got > 1.001 {
		t.Errorf("Self-similarity should be 1, got %v", got)
	}
	if got := CosineSimilarity(a, []float64{0, 1, 0}); got != 0 {
		t.Errorf("Orthogonal vectors should score 0, got %v", got)
	}
	if got := CosineSimilarity(a, []float64{1, 0}); got != 0 {
		t.Errorf("Mismatched lengths should score 0, got %v", got)
	}
}
