// =============================================================================
// GRIR Report Toolkit - Output File Management
// =============================================================================
//
// Handles the filesystem side of a run: ensuring the output and archive
// directories exist, naming the generated report files, and archiving
// reports after a run.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager owns the output and archive directories of a run.
type FileManager struct {
	OutputDir  string
	ArchiveDir string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{OutputDir: outputDir, ArchiveDir: archiveDir}
}

// EnsureDirectories creates the output and archive directories if needed.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportName expands a report file name format. Placeholders:
//
//	{timestamp} - run timestamp (YYYYMMDD_HHMMSS)
//	{uuid}      - short random run identifier
//	{plant}     - plant name, when provided
//
// The result always carries an .xlsx extension.
func ReportName(format, plant string) string {
	name := format
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String()[:8])
	name = strings.ReplaceAll(name, "{plant}", sanitizeName(plant))

	if filepath.Ext(name) != ".xlsx" {
		name += ".xlsx"
	}
	return name
}

// OutputPath joins a file name onto the output directory.
func (fm *FileManager) OutputPath(name string) string {
	return filepath.Join(fm.OutputDir, name)
}

// ArchiveReport copies a generated report into the archive directory,
// keeping the original in place.
func (fm *FileManager) ArchiveReport(path string) (string, error) {
	if fm.ArchiveDir == "" {
		return "", nil
	}
	target := filepath.Join(fm.ArchiveDir, filepath.Base(path))
	if err := copyFile(path, target); err != nil {
		return "", fmt.Errorf("failed to archive report: %w", err)
	}
	return target, nil
}

// FileExists reports whether a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// sanitizeName strips path separators and whitespace from a value used
// inside a file name.
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	for _, r := range []string{"/", "\\", ":", " "} {
		s = strings.ReplaceAll(s, r, "_")
	}
	return s
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
