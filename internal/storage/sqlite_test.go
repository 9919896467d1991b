package storage

import (
	"testing"
	"time"
)

func setupHistory(t *testing.T) *HistoryIndex {
	t.Helper()

	idx, err := NewHistoryIndex(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open history index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndexAndListReports(t *testing.T) {
	idx := setupHistory(t)

	r := sampleReport("demo/repo", time.Now())
	r.ID = "rpt-20260101-aaaa1111"
	if err := idx.IndexReport(r); err != nil {
		t.Fatalf("IndexReport failed: %v", err)
	}

	summaries, err := idx.ListReports(10)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].ID != r.ID || summaries[0].Transport != "http" || summaries[0].ToolCount != 1 {
		t.Errorf("Unexpected summary: %+v", summaries[0])
	}
}

func TestIndexReportRequiresID(t *testing.T) {
	idx := setupHistory(t)
	if err := idx.IndexReport(sampleReport("demo/repo", time.Now())); err == nil {
		t.Error("Expected an error for a report without an ID")
	}
}

func TestReindexReplacesTools(t *testing.T) {
	idx := setupHistory(t)

	r := sampleReport("demo/repo", time.Now())
	r.ID = "rpt-20260101-bbbb2222"
	if err := idx.IndexReport(r); err != nil {
		t.Fatalf("IndexReport failed: %v", err)
	}
	// Second pass drops the tool; the old row must not linger
	r.Tools = nil
	if err := idx.IndexReport(r); err != nil {
		t.Fatalf("Re-index failed: %v", err)
	}

	hits, err := idx.SearchTools("run_task", 10)
	if err != nil {
		t.Fatalf("SearchTools failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Expected stale tool rows to be replaced, got %v", hits)
	}
}

func TestSearchTools(t *testing.T) {
	idx := setupHistory(t)

	r := sampleReport("demo/repo", time.Now())
	r.ID = "rpt-20260101-cccc3333"
	if err := idx.IndexReport(r); err != nil {
		t.Fatalf("IndexReport failed: %v", err)
	}

	hits, err := idx.SearchTools("run_task", 10)
	if err != nil {
		t.Fatalf("SearchTools failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("Expected 1 hit, got %d", len(hits))
	}
	if hits[0].Name != "run_task" || hits[0].Repo != "demo/repo" || hits[0].ReportID != r.ID {
		t.Errorf("Unexpected hit: %+v", hits[0])
	}
}

func TestSearchToolsQuotedInput(t *testing.T) {
	idx := setupHistory(t)

	// FTS5 operators in user input must not produce a query error
	if _, err := idx.SearchTools(`run_task AND "NOT`, 10); err != nil {
		t.Errorf("Sanitized query should not fail: %v", err)
	}
}

func TestSearchToolsEmptyQuery(t *testing.T) {
	idx := setupHistory(t)
	hits, err := idx.SearchTools("   ", 10)
	if err != nil {
		t.Fatalf("SearchTools failed: %v", err)
	}
	if hits != nil {
		t.Errorf("Expected no hits for an empty query, got %v", hits)
	}
}

func TestGetStats(t *testing.T) {
	idx := setupHistory(t)

	r := sampleReport("demo/repo", time.Now())
	r.ID = "rpt-20260101-dddd4444"
	if err := idx.IndexReport(r); err != nil {
		t.Fatalf("IndexReport failed: %v", err)
	}

	stats := idx.GetStats()
	if stats["reports"] != 1 {
		t.Errorf("Expected 1 report, got %d", stats["reports"])
	}
	if stats["tools"] != 1 {
		t.Errorf("Expected 1 tool, got %d", stats["tools"])
	}
}
