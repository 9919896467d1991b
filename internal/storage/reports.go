package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saeedalam/repoprobe/pkg/types"
)

// ReportStore persists analysis reports as JSON files under
// <basePath>/reports. Reports are immutable once written.
type ReportStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewReportStore creates a report store rooted at basePath.
func NewReportStore(basePath string) *ReportStore {
	return &ReportStore{basePath: basePath}
}

// BasePath returns the base path of the store.
func (s *ReportStore) BasePath() string {
	return s.basePath
}

// SaveReport writes a report, assigning an ID if it has none, and returns
// the ID.
func (s *ReportStore) SaveReport(report *types.AnalysisReport) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == "" {
		report.ID = generateID("rpt")
	}

	path := filepath.Join(s.basePath, "reports", report.ID+".json")
	if err := writeJSON(path, report); err != nil {
		return "", err
	}
	return report.ID, nil
}

// GetReport loads a report by ID.
func (s *ReportStore) GetReport(id string) (*types.AnalysisReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.ContainsAny(id, "/\\") {
		return nil, fmt.Errorf("invalid report id %q", id)
	}

	path := filepath.Join(s.basePath, "reports", id+".json")
	return readJSON[types.AnalysisReport](path)
}

// ListReports returns summaries of all persisted reports, newest first.
func (s *ReportStore) ListReports() ([]types.ReportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.basePath, "reports")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var summaries []types.ReportSummary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		report, err := readJSON[types.AnalysisReport](filepath.Join(dir, e.Name()))
		if err != nil {
			continue // unreadable report files are skipped, not fatal
		}
		summaries = append(summaries, types.ReportSummary{
			ID:           report.ID,
			Repo:         report.Repo,
			Transport:    report.Transport.Type,
			ToolCount:    len(report.Tools),
			AnalysisTime: report.AnalysisTime,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].AnalysisTime.After(summaries[j].AnalysisTime)
	})
	return summaries, nil
}

// --- helpers ---

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func writeJSON(path string, v any) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// Trailing newline for clean git diffs
	data = append(data, '\n')

	// Atomic write: write to temp file then rename to prevent corruption
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func generateID(prefix string) string {
	now := time.Now()
	short := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), short)
}
