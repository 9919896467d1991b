// Package transport guesses the network/IO style a repository exposes by
// counting keyword hits across all indexed files. This is deliberately a
// coarse majority vote, not a probabilistic model: any hit at all yields
// confidence 1.0, so a single weak match scores the same as overwhelming
// evidence. Known precision limitation, kept as-is.
package transport

import (
	"fmt"
	"strings"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// Transports is the fixed closed set, in tie-break order: the first
// maximum wins, and an all-zero score falls back to Transports[0].
var Transports = []string{"stdio", "websocket", "http", "sse"}

// NoSignalConfidence is reported when no file matched any keyword group.
const NoSignalConfidence = 0.1

var keywordGroups = map[string][]string{
	"http":      {"flask", "express", "fastapi"},
	"websocket": {"websocket", "socket.io"},
	"sse":       {"eventsource", "text/event-stream"},
	"stdio":     {"sys.stdin", "argparse"},
}

var evidenceLabels = map[string]string{
	"http":      "HTTP",
	"websocket": "WS",
	"sse":       "SSE",
	"stdio":     "CLI",
}

// Detect scores each transport by case-insensitive substring hits over the
// decoded content of all files and selects the highest-scoring one.
func Detect(files []types.FileRecord) types.TransportVerdict {
	scores := make(map[string]int, len(Transports))
	var evidence []string

	for _, f := range files {
		content := strings.ToLower(f.Content)
		for _, t := range Transports {
			for _, kw := range keywordGroups[t] {
				if strings.Contains(content, kw) {
					scores[t]++
					evidence = append(evidence, fmt.Sprintf("%s pattern in %s", evidenceLabels[t], f.Path))
					break
				}
			}
		}
	}

	best := Transports[0]
	for _, t := range Transports[1:] {
		if scores[t] > scores[best] {
			best = t
		}
	}

	confidence := 1.0
	if scores[best] == 0 {
		confidence = NoSignalConfidence
	}

	return types.TransportVerdict{
		Type:       best,
		Confidence: confidence,
		Evidence:   evidence,
	}
}
