// Package runcmd infers a best-guess command for running the analyzed
// project from recognizable framework idioms, falling back to README
// run-hint lines.
package runcmd

import (
	"strings"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// Confidence tiers: strong framework signal, recognized convention, weak
// README hint, nothing.
const (
	ConfidenceFramework  = 0.85
	ConfidenceConvention = 0.7
	ConfidenceReadmeHint = 0.4
)

// Infer scans the file index for run-command signals. A uvicorn or flask
// hit ends the scan; the npm convention keeps scanning so a stronger
// framework signal later in the index can still win.
func Infer(files []types.FileRecord) types.RunTemplate {
	result := types.RunTemplate{Evidence: []string{}}

	for _, f := range files {
		c := strings.ToLower(f.Content)

		if strings.Contains(c, "uvicorn") && strings.Contains(c, "app") {
			result.Cmd = "uvicorn main:app --host 0.0.0.0 --port 8000"
			result.Confidence = ConfidenceFramework
			result.Evidence = append(result.Evidence, "uvicorn reference")
			return result
		}
		if strings.Contains(c, "flask") && strings.Contains(c, "app.run(") {
			result.Cmd = "python app.py"
			result.Confidence = ConfidenceConvention
			result.Evidence = append(result.Evidence, "flask app.run found")
			return result
		}
		if strings.Contains(c, "npm start") || strings.Contains(f.Path, "package.json") {
			result.Cmd = "npm start"
			result.Confidence = ConfidenceConvention
			result.Evidence = append(result.Evidence, "npm start or package.json")
		}
	}

	if result.Cmd == "" {
		for _, f := range files {
			if !strings.HasPrefix(strings.ToLower(f.Path), "readme") {
				continue
			}
			for _, line := range strings.Split(f.Content, "\n") {
				if strings.Contains(line, "python") || strings.Contains(line, "run") {
					result.Cmd = strings.TrimSpace(line)
					result.Confidence = ConfidenceReadmeHint
					result.Evidence = append(result.Evidence, "readme run hint")
					break
				}
			}
			if result.Cmd != "" {
				break
			}
		}
	}

	return result
}
