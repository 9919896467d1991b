package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/repo"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/internal/storage"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := repo.NewLoader(t.TempDir())
	reports := storage.NewReportStore(t.TempDir())

	s, err := NewServer(analyzer.New(semantic.Disabled()), semantic.Disabled(), loader, reports, nil)
	if err != nil {
		t.Fatalf("Failed to build server: %v", err)
	}
	return s
}

func setupPythonRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	src := "from flask import Flask\n\ndef ping(name: str):\n    return {\"pong\": True}\n"
	if err := os.WriteFile(filepath.Join(root, "app.py"), []byte(src), 0644); err != nil {
		t.Fatalf("Failed to write app.py: %v", err)
	}
	return root
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := setupServer(t).Router()

	w := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := setupServer(t).Router()

	w := doJSON(t, router, http.MethodGet, "/status", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestDetectTransportValidation(t *testing.T) {
	router := setupServer(t).Router()

	// Missing required field
	w := doJSON(t, router, http.MethodPost, "/mcp/detect-transport", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing repo_path, got %d", w.Code)
	}

	// Nonexistent path
	w = doJSON(t, router, http.MethodPost, "/mcp/detect-transport", `{"repo_path": "/no/such/dir"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing path, got %d", w.Code)
	}
}

func TestDetectTransportEndpoint(t *testing.T) {
	router := setupServer(t).Router()
	root := setupPythonRepo(t)

	w := doJSON(t, router, http.MethodPost, "/mcp/detect-transport", `{"repo_path": "`+root+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var verdict struct {
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if verdict.Type != "http" {
		t.Errorf("Expected http, got %q", verdict.Type)
	}
	if verdict.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %v", verdict.Confidence)
	}
}

func TestExtractToolsEndpoint(t *testing.T) {
	router := setupServer(t).Router()
	root := setupPythonRepo(t)

	w := doJSON(t, router, http.MethodPost, "/mcp/extract-tools", `{"repo_path": "`+root+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Count != 1 {
		t.Errorf("Expected 1 tool, got %d", body.Count)
	}
}

func TestGetReportNotFound(t *testing.T) {
	router := setupServer(t).Router()

	w := doJSON(t, router, http.MethodGet, "/reports/rpt-20260101-missing0", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestAnalyzeZipRejectsNonZip(t *testing.T) {
	router := setupServer(t).Router()

	w := doJSON(t, router, http.MethodPost, "/mcp/analyze-zip", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing multipart file, got %d", w.Code)
	}
}
