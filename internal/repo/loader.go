// Package repo materializes repositories for analysis: shallow git clones
// and zip archive extraction into a managed working directory. Acquisition
// failure is fatal for a run and surfaces as a single wrapped error; no
// partial report is ever produced from a broken checkout.
package repo

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Loader manages the working directory that checked-out trees live in.
type Loader struct {
	workDir string
}

// NewLoader creates a Loader rooted at workDir. The directory is created
// lazily on first acquisition.
func NewLoader(workDir string) *Loader {
	return &Loader{workDir: workDir}
}

// WorkDir returns the loader's working directory.
func (l *Loader) WorkDir() string {
	return l.workDir
}

// CloneGit shallow-clones a git repository and returns the local root.
// An existing destination of the same name is replaced.
func (l *Loader) CloneGit(gitURL, destName string) (string, error) {
	dest, err := l.prepareDest(gitURL, destName)
	if err != nil {
		return "", fmt.Errorf("acquisition failed: %w", err)
	}

	cmd := exec.Command("git", "clone", "--depth", "1", gitURL, dest)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("acquisition failed: git clone %s: %w: %s", gitURL, err, strings.TrimSpace(string(out)))
	}
	return dest, nil
}

// Unzip extracts a zip archive and returns the local root. Entries that
// would escape the destination are rejected.
func (l *Loader) Unzip(zipPath, destName string) (string, error) {
	dest, err := l.prepareDest(zipPath, destName)
	if err != nil {
		return "", fmt.Errorf("acquisition failed: %w", err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("acquisition failed: open %s: %w", zipPath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("acquisition failed: %w", err)
	}

	for _, f := range r.File {
		if err := extractEntry(f, dest); err != nil {
			return "", fmt.Errorf("acquisition failed: extract %s: %w", f.Name, err)
		}
	}
	return dest, nil
}

// prepareDest resolves the destination directory under the work dir and
// clears any previous checkout of the same name.
func (l *Loader) prepareDest(source, destName string) (string, error) {
	if err := os.MkdirAll(l.workDir, 0755); err != nil {
		return "", err
	}

	name := destName
	if name == "" {
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		name = strings.TrimSuffix(name, ".git")
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive destination name from %q", source)
	}

	dest := filepath.Join(l.workDir, name)
	if err := os.RemoveAll(dest); err != nil {
		return "", err
	}
	return dest, nil
}

func extractEntry(f *zip.File, dest string) error {
	// Zip-slip guard
	target := filepath.Join(dest, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(filepath.Separator)) {
		return fmt.Errorf("illegal path %q", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()|0200)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
