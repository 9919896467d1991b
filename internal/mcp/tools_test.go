package mcp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/repo"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/internal/storage"
	"github.com/saeedalam/repoprobe/pkg/types"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	matcher := semantic.Disabled()
	loader := repo.NewLoader(t.TempDir())
	reports := storage.NewReportStore(t.TempDir())
	return NewServer(analyzer.New(matcher), matcher, loader, reports, nil)
}

func setupPythonRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	src := "def ping(name: str):\n    return {\"pong\": True}\n"
	if err := os.WriteFile(filepath.Join(root, "app.py"), []byte(src), 0644); err != nil {
		t.Fatalf("Failed to write app.py: %v", err)
	}
	return root
}

func TestToolRegistration(t *testing.T) {
	s := setupServer(t)

	expected := []string{
		"analyze_repo", "clone_analyze", "detect_transport",
		"extract_tools", "get_report", "list_reports",
	}
	if len(s.order) != len(expected) {
		t.Fatalf("Expected %d tools, got %d: %v", len(expected), len(s.order), s.order)
	}
	for i, name := range expected {
		if s.order[i] != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, s.order[i])
		}
		tool, ok := s.tools[name]
		if !ok {
			t.Errorf("Tool %q not registered", name)
			continue
		}
		if tool.Info.InputSchema.Type != "object" {
			t.Errorf("Tool %q: expected object input schema", name)
		}
	}
}

func TestAnalyzeRepoTool(t *testing.T) {
	s := setupServer(t)
	root := setupPythonRepo(t)

	result, err := s.handleAnalyzeRepo(json.RawMessage(`{"repo_path": "` + root + `"}`))
	if err != nil {
		t.Fatalf("analyze_repo failed: %v", err)
	}

	report, ok := result.(*types.AnalysisReport)
	if !ok {
		t.Fatalf("Expected an AnalysisReport, got %T", result)
	}
	if report.ID == "" {
		t.Error("Report should have been persisted with an ID")
	}
	if len(report.Tools) != 1 || report.Tools[0].Name != "ping" {
		t.Errorf("Unexpected tools: %v", report.Tools)
	}

	// The persisted copy must be retrievable through get_report
	got, err := s.handleGetReport(json.RawMessage(`{"id": "` + report.ID + `"}`))
	if err != nil {
		t.Fatalf("get_report failed: %v", err)
	}
	if got.(*types.AnalysisReport).ID != report.ID {
		t.Error("get_report returned a different report")
	}
}

func TestAnalyzeRepoToolValidation(t *testing.T) {
	s := setupServer(t)

	if _, err := s.handleAnalyzeRepo(json.RawMessage(`{}`)); err == nil {
		t.Error("Expected an error for missing repo_path")
	}
	if _, err := s.handleAnalyzeRepo(json.RawMessage(`{"repo_path": "/no/such/dir"}`)); err == nil {
		t.Error("Expected an error for a nonexistent path")
	}
}

func TestDetectTransportTool(t *testing.T) {
	s := setupServer(t)
	root := setupPythonRepo(t)

	result, err := s.handleDetectTransport(json.RawMessage(`{"repo_path": "` + root + `"}`))
	if err != nil {
		t.Fatalf("detect_transport failed: %v", err)
	}
	verdict, ok := result.(types.TransportVerdict)
	if !ok {
		t.Fatalf("Expected a TransportVerdict, got %T", result)
	}
	if verdict.Type != "stdio" {
		t.Errorf("Signal-free repo should fall back to stdio, got %q", verdict.Type)
	}
}

func TestExtractToolsTool(t *testing.T) {
	s := setupServer(t)
	root := setupPythonRepo(t)

	result, err := s.handleExtractTools(json.RawMessage(`{"repo_path": "` + root + `"}`))
	if err != nil {
		t.Fatalf("extract_tools failed: %v", err)
	}
	body, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a map result, got %T", result)
	}
	if body["count"] != 1 {
		t.Errorf("Expected 1 tool, got %v", body["count"])
	}
}

func TestListReportsToolEmpty(t *testing.T) {
	s := setupServer(t)

	result, err := s.handleListReports(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("list_reports failed: %v", err)
	}
	body := result.(map[string]interface{})
	if body["total"] != 0 {
		t.Errorf("Expected no reports, got %v", body["total"])
	}
}
