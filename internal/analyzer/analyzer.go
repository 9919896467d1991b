// Package analyzer orchestrates one analysis run: index the tree, detect
// the transport, assemble the tool catalogue, infer the run command, and
// freeze the result into an AnalysisReport. Each run operates on its own
// fresh File Index snapshot; nothing is shared or memoized across runs.
package analyzer

import (
	"fmt"
	"time"

	"github.com/saeedalam/repoprobe/internal/catalog"
	"github.com/saeedalam/repoprobe/internal/index"
	"github.com/saeedalam/repoprobe/internal/runcmd"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/internal/transport"
	"github.com/saeedalam/repoprobe/pkg/types"
)

// Analyzer runs the inference pipeline. The matcher is read-only shared
// state: prepared once, never mutated, safe to reuse across runs.
type Analyzer struct {
	matcher semantic.Matcher
	notes   []string
}

// New creates an Analyzer. Pass semantic.Disabled() for heuristic-only
// mode. Optional notes are recorded verbatim on every report.
func New(matcher semantic.Matcher, notes ...string) *Analyzer {
	if len(notes) == 0 {
		notes = []string{"Heuristic repository analysis; inferred schemas need human validation."}
	}
	return &Analyzer{matcher: matcher, notes: notes}
}

// Analyze indexes the tree at root and produces the report for it. The
// only fatal condition is failing to read the root itself; per-file
// problems degrade to deterministic fallbacks inside the pipeline.
func (a *Analyzer) Analyze(root, repoRef string) (*types.AnalysisReport, error) {
	files, err := index.IndexRepo(root)
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", root, err)
	}

	report := &types.AnalysisReport{
		Repo:         repoRef,
		AnalysisTime: time.Now(),
		Transport:    transport.Detect(files),
		Tools:        catalog.Assemble(files, a.matcher),
		RunTemplate:  runcmd.Infer(files),
		Notes:        a.notes,
	}
	return report, nil
}
