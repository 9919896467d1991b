package index

import (
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/saeedalam/repoprobe/pkg/types"
)

// extLangMap is the fixed extension -> language tag mapping.
var extLangMap = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".java": "java",
	".go":   "go",
	".rs":   "rust",
	".cpp":  "cpp",
	".c":    "c",
	".cs":   "csharp",
	".php":  "php",
	".rb":   "ruby",
	".sh":   "shell",
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".html": "html",
	".md":   "markdown",
}

// LanguageForExt returns the language tag for a file extension, or "" if unknown.
func LanguageForExt(ext string) string {
	return extLangMap[strings.ToLower(ext)]
}

// ReadTextSafe reads a file as best-effort text. Undecodable bytes are
// replaced with U+FFFD; any read failure yields an empty string, never an error.
func ReadTextSafe(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// IndexRepo walks a repository root and returns a flat FileRecord slice
// in walk order. VCS metadata directories are skipped. The result is a
// fresh snapshot: nothing is cached between runs.
func IndexRepo(root string) ([]types.FileRecord, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []types.FileRecord
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtree: skip it, keep indexing
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".hg" || d.Name() == ".svn" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		ext := strings.ToLower(filepath.Ext(path))
		files = append(files, types.FileRecord{
			Path:      rel,
			AbsPath:   path,
			Extension: ext,
			Language:  extLangMap[ext],
			Mime:      mime.TypeByExtension(ext),
			Content:   ReadTextSafe(path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ContainsPath reports whether a relative path is present in the index.
func ContainsPath(files []types.FileRecord, rel string) bool {
	for _, f := range files {
		if f.Path == rel {
			return true
		}
	}
	return false
}
