package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// HistoryIndex mirrors persisted reports into SQLite so past analyses can
// be listed and their tools searched with full-text queries. The JSON
// report files remain the source of truth; this index can always be
// rebuilt from them.
type HistoryIndex struct {
	db       *sql.DB
	basePath string
}

// ToolHit is one full-text search result over indexed tools.
type ToolHit struct {
	ReportID    string  `json:"report_id"`
	Repo        string  `json:"repo"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Filename    string  `json:"filename"`
	Confidence  float64 `json:"confidence"`
}

// NewHistoryIndex opens (or creates) the history database under
// <basePath>/cache.
func NewHistoryIndex(basePath string) (*HistoryIndex, error) {
	dbPath := filepath.Join(basePath, "cache", "history.db")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	// Connection parameters for better concurrency
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=10000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1) // Keep it simple to avoid locks

	idx := &HistoryIndex{
		db:       db,
		basePath: basePath,
	}

	if err := idx.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

func (idx *HistoryIndex) createTables() error {
	schema := `
	-- Reports table
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		repo TEXT,
		transport TEXT,
		tool_count INTEGER,
		analysis_time INTEGER
	);

	-- Tools table
	CREATE TABLE IF NOT EXISTS tools (
		report_id TEXT,
		name TEXT,
		description TEXT,
		filename TEXT,
		confidence REAL
	);

	-- Tools FTS
	CREATE VIRTUAL TABLE IF NOT EXISTS tools_fts USING fts5(
		name,
		description,
		filename,
		content='tools',
		content_rowid='rowid'
	);

	-- Triggers for FTS sync
	CREATE TRIGGER IF NOT EXISTS tools_ai AFTER INSERT ON tools BEGIN
		INSERT INTO tools_fts(rowid, name, description, filename)
		VALUES (new.rowid, new.name, new.description, new.filename);
	END;

	CREATE TRIGGER IF NOT EXISTS tools_ad AFTER DELETE ON tools BEGIN
		INSERT INTO tools_fts(tools_fts, rowid, name, description, filename)
		VALUES('delete', old.rowid, old.name, old.description, old.filename);
	END;
	`
	_, err := idx.db.Exec(schema)
	return err
}

// IndexReport records a report and its tools. Re-indexing the same report
// ID replaces the previous rows.
func (idx *HistoryIndex) IndexReport(report *types.AnalysisReport) error {
	if report.ID == "" {
		return fmt.Errorf("report has no id")
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tools WHERE report_id = ?`, report.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO reports (id, repo, transport, tool_count, analysis_time) VALUES (?, ?, ?, ?, ?)`,
		report.ID, report.Repo, report.Transport.Type, len(report.Tools), report.AnalysisTime.Unix(),
	); err != nil {
		return err
	}

	for _, tool := range report.Tools {
		if _, err := tx.Exec(
			`INSERT INTO tools (report_id, name, description, filename, confidence) VALUES (?, ?, ?, ?, ?)`,
			report.ID, tool.Name, tool.Description, tool.PredictedFilename, tool.Confidence,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListReports returns up to limit report summaries, newest first.
func (idx *HistoryIndex) ListReports(limit int) ([]types.ReportSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := idx.db.Query(
		`SELECT id, repo, transport, tool_count, analysis_time FROM reports ORDER BY analysis_time DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []types.ReportSummary
	for rows.Next() {
		var s types.ReportSummary
		var ts int64
		if err := rows.Scan(&s.ID, &s.Repo, &s.Transport, &s.ToolCount, &ts); err != nil {
			return nil, err
		}
		s.AnalysisTime = time.Unix(ts, 0)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SearchTools runs a full-text query over all indexed tool names,
// descriptions and filenames.
func (idx *HistoryIndex) SearchTools(query string, limit int) ([]ToolHit, error) {
	if limit <= 0 {
		limit = 20
	}

	ftsQuery := sanitizeFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := idx.db.Query(`
		SELECT t.report_id, r.repo, t.name, t.description, t.filename, t.confidence
		FROM tools_fts f
		JOIN tools t ON t.rowid = f.rowid
		JOIN reports r ON r.id = t.report_id
		WHERE tools_fts MATCH ?
		ORDER BY rank
		LIMIT ?`,
		ftsQuery, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []ToolHit
	for rows.Next() {
		var h ToolHit
		if err := rows.Scan(&h.ReportID, &h.Repo, &h.Name, &h.Description, &h.Filename, &h.Confidence); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// GetStats returns row counts for the status command.
func (idx *HistoryIndex) GetStats() map[string]int {
	stats := make(map[string]int)
	for _, table := range []string{"reports", "tools"} {
		var count int
		if err := idx.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err == nil {
			stats[table] = count
		}
	}
	return stats
}

// Close closes the underlying database.
func (idx *HistoryIndex) Close() error {
	return idx.db.Close()
}

// sanitizeFTSQuery quotes each term so user input cannot break the FTS5
// query syntax.
func sanitizeFTSQuery(query string) string {
	var terms []string
	for _, t := range strings.Fields(query) {
		t = strings.ReplaceAll(t, `"`, "")
		if t != "" {
			terms = append(terms, `"`+t+`"`)
		}
	}
	return strings.Join(terms, " ")
}
