package mcp

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/saeedalam/repoprobe/internal/catalog"
	"github.com/saeedalam/repoprobe/internal/index"
	"github.com/saeedalam/repoprobe/internal/transport"
)

func (s *Server) registerTools() {
	s.register(ToolInfo{
		Name:        "analyze_repo",
		Description: "Run the full analysis pipeline on a local repository path and persist the report",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"repo_path": {Type: "string", Description: "Local path to the repository root"},
			},
			Required: []string{"repo_path"},
		},
	}, s.handleAnalyzeRepo)

	s.register(ToolInfo{
		Name:        "clone_analyze",
		Description: "Clone a git repository, analyze it and persist the report",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"git":  {Type: "string", Description: "Git repository URL"},
				"name": {Type: "string", Description: "Optional checkout directory name"},
			},
			Required: []string{"git"},
		},
	}, s.handleCloneAnalyze)

	s.register(ToolInfo{
		Name:        "detect_transport",
		Description: "Detect the transport style (stdio/websocket/http/sse) of a local repository",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"repo_path": {Type: "string", Description: "Local path to the repository root"},
			},
			Required: []string{"repo_path"},
		},
	}, s.handleDetectTransport)

	s.register(ToolInfo{
		Name:        "extract_tools",
		Description: "Extract tool-like entry points with inferred schemas from a local repository",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"repo_path": {Type: "string", Description: "Local path to the repository root"},
			},
			Required: []string{"repo_path"},
		},
	}, s.handleExtractTools)

	s.register(ToolInfo{
		Name:        "get_report",
		Description: "Fetch a persisted analysis report by ID",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"id": {Type: "string", Description: "Report ID"},
			},
			Required: []string{"id"},
		},
	}, s.handleGetReport)

	s.register(ToolInfo{
		Name:        "list_reports",
		Description: "List persisted analysis reports, newest first",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"limit": {Type: "integer", Description: "Maximum number of reports to return"},
			},
		},
	}, s.handleListReports)
}

// analyzeAndPersist is the shared analyze path: run the pipeline, save the
// report, mirror it into the history index.
func (s *Server) analyzeAndPersist(root, ref string) (interface{}, error) {
	report, err := s.analyzer.Analyze(root, ref)
	if err != nil {
		return nil, err
	}

	if _, err := s.reports.SaveReport(report); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	if s.history != nil {
		if err := s.history.IndexReport(report); err != nil {
			// History indexing is best-effort; the JSON report is saved
			fmt.Fprintf(os.Stderr, "Warning: history index failed: %v\n", err)
		}
	}
	return report, nil
}

func (s *Server) handleAnalyzeRepo(params json.RawMessage) (interface{}, error) {
	var p struct {
		RepoPath string `json:"repo_path"`
	}
	json.Unmarshal(params, &p)

	if p.RepoPath == "" {
		return nil, fmt.Errorf("repo_path is required")
	}
	if _, err := os.Stat(p.RepoPath); err != nil {
		return nil, fmt.Errorf("repo_path not found: %s", p.RepoPath)
	}

	return s.analyzeAndPersist(p.RepoPath, p.RepoPath)
}

func (s *Server) handleCloneAnalyze(params json.RawMessage) (interface{}, error) {
	var p struct {
		Git  string `json:"git"`
		Name string `json:"name"`
	}
	json.Unmarshal(params, &p)

	if p.Git == "" {
		return nil, fmt.Errorf("git is required")
	}

	root, err := s.loader.CloneGit(p.Git, p.Name)
	if err != nil {
		return nil, err
	}

	return s.analyzeAndPersist(root, p.Git)
}

func (s *Server) handleDetectTransport(params json.RawMessage) (interface{}, error) {
	var p struct {
		RepoPath string `json:"repo_path"`
	}
	json.Unmarshal(params, &p)

	if p.RepoPath == "" {
		return nil, fmt.Errorf("repo_path is required")
	}
	if _, err := os.Stat(p.RepoPath); err != nil {
		return nil, fmt.Errorf("repo_path not found: %s", p.RepoPath)
	}

	files, err := index.IndexRepo(p.RepoPath)
	if err != nil {
		return nil, err
	}
	return transport.Detect(files), nil
}

func (s *Server) handleExtractTools(params json.RawMessage) (interface{}, error) {
	var p struct {
		RepoPath string `json:"repo_path"`
	}
	json.Unmarshal(params, &p)

	if p.RepoPath == "" {
		return nil, fmt.Errorf("repo_path is required")
	}
	if _, err := os.Stat(p.RepoPath); err != nil {
		return nil, fmt.Errorf("repo_path not found: %s", p.RepoPath)
	}

	files, err := index.IndexRepo(p.RepoPath)
	if err != nil {
		return nil, err
	}
	tools := catalog.Assemble(files, s.matcher)

	return map[string]interface{}{
		"tools": tools,
		"count": len(tools),
	}, nil
}

func (s *Server) handleGetReport(params json.RawMessage) (interface{}, error) {
	var p struct {
		ID string `json:"id"`
	}
	json.Unmarshal(params, &p)

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	return s.reports.GetReport(p.ID)
}

func (s *Server) handleListReports(params json.RawMessage) (interface{}, error) {
	var p struct {
		Limit int `json:"limit"`
	}
	json.Unmarshal(params, &p)

	if s.history != nil {
		if summaries, err := s.history.ListReports(p.Limit); err == nil {
			return map[string]interface{}{
				"reports": summaries,
				"total":   len(summaries),
			}, nil
		}
	}

	// Fall back to scanning the JSON store
	summaries, err := s.reports.ListReports()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"reports": summaries,
		"total":   len(summaries),
	}, nil
}
