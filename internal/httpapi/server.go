// Package httpapi serves the analyzer over HTTP. The endpoints mirror the
// stdio tool surface: clone-and-analyze, zip upload, transport detection,
// tool extraction and report retrieval.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/catalog"
	"github.com/saeedalam/repoprobe/internal/index"
	"github.com/saeedalam/repoprobe/internal/repo"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/internal/storage"
	"github.com/saeedalam/repoprobe/internal/transport"
	"github.com/saeedalam/repoprobe/pkg/types"
)

// reportCacheSize bounds the in-memory cache of recently served reports.
// Reports are immutable once written, so cached entries never go stale.
const reportCacheSize = 128

// Server is the HTTP analyzer server.
type Server struct {
	analyzer    *analyzer.Analyzer
	matcher     semantic.Matcher
	loader      *repo.Loader
	reports     *storage.ReportStore
	history     *storage.HistoryIndex
	reportCache *lru.Cache[string, *types.AnalysisReport]
	uploadsDir  string
}

// NewServer wires the HTTP surface around an analyzer and its stores.
func NewServer(a *analyzer.Analyzer, matcher semantic.Matcher, loader *repo.Loader, reports *storage.ReportStore, history *storage.HistoryIndex) (*Server, error) {
	cache, err := lru.New[string, *types.AnalysisReport](reportCacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		analyzer:    a,
		matcher:     matcher,
		loader:      loader,
		reports:     reports,
		history:     history,
		reportCache: cache,
		uploadsDir:  filepath.Join(loader.WorkDir(), "uploads"),
	}, nil
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/status", s.handleStatus)

	mcpGroup := router.Group("/mcp")
	{
		mcpGroup.POST("/clone-analyze", s.handleCloneAnalyze)
		mcpGroup.POST("/analyze-zip", s.handleAnalyzeZip)
		mcpGroup.POST("/detect-transport", s.handleDetectTransport)
		mcpGroup.POST("/extract-tools", s.handleExtractTools)
	}

	router.GET("/reports/:id", s.handleGetReport)

	return router
}

// Run serves on the given port until the listener fails.
func (s *Server) Run(port string) error {
	return s.Router().Run(":" + port)
}

func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if s.history != nil {
		status["index"] = s.history.GetStats()
	}
	c.JSON(http.StatusOK, status)
}

type cloneRequest struct {
	Git  string `json:"git" binding:"required"`
	Name string `json:"name"`
}

type repoPathRequest struct {
	RepoPath string `json:"repo_path" binding:"required"`
}

func (s *Server) handleCloneAnalyze(c *gin.Context) {
	var req cloneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	root, err := s.loader.CloneGit(req.Git, req.Name)
	if err != nil {
		slog.Error("clone failed", "git", req.Git, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("git clone failed: %v", err)})
		return
	}

	s.analyzeAndRespond(c, root, req.Git)
}

func (s *Server) handleAnalyzeZip(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".zip") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .zip files are accepted"})
		return
	}

	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not prepare upload directory"})
		return
	}
	tmpPath := filepath.Join(s.uploadsDir, fmt.Sprintf("upload_%s.zip", uuid.New().String()[:8]))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	defer os.Remove(tmpPath)

	root, err := s.loader.Unzip(tmpPath, fmt.Sprintf("repo_%s", uuid.New().String()[:6]))
	if err != nil {
		slog.Error("unzip failed", "file", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("unzip failed: %v", err)})
		return
	}

	s.analyzeAndRespond(c, root, "uploaded:"+file.Filename)
}

func (s *Server) handleDetectTransport(c *gin.Context) {
	var req repoPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := os.Stat(req.RepoPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "repo_path not found"})
		return
	}

	files, err := index.IndexRepo(req.RepoPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, transport.Detect(files))
}

func (s *Server) handleExtractTools(c *gin.Context) {
	var req repoPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := os.Stat(req.RepoPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "repo_path not found"})
		return
	}

	files, err := index.IndexRepo(req.RepoPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tools := catalog.Assemble(files, s.matcher)
	c.JSON(http.StatusOK, gin.H{"tools": tools, "count": len(tools)})
}

func (s *Server) handleGetReport(c *gin.Context) {
	id := c.Param("id")

	if report, ok := s.reportCache.Get(id); ok {
		c.JSON(http.StatusOK, report)
		return
	}

	report, err := s.reports.GetReport(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	s.reportCache.Add(id, report)
	c.JSON(http.StatusOK, report)
}

// analyzeAndRespond runs the pipeline over an acquired tree, persists the
// report and returns it.
func (s *Server) analyzeAndRespond(c *gin.Context, root, ref string) {
	report, err := s.analyzer.Analyze(root, ref)
	if err != nil {
		slog.Error("analysis failed", "repo", ref, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.reports.SaveReport(report); err != nil {
		slog.Error("report save failed", "repo", ref, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist report"})
		return
	}
	if s.history != nil {
		if err := s.history.IndexReport(report); err != nil {
			slog.Warn("history index failed", "report", report.ID, "error", err)
		}
	}

	s.reportCache.Add(report.ID, report)
	c.JSON(http.StatusOK, report)
}
