// Package scanner discovers importable bank export files under the paths a
// user hands to the batch commands.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fjacquet/bank-import/internal/fileutils"
	"fjacquet/bank-import/internal/logging"
)

// ImportableExtensions are the file extensions the pipeline knows how to parse.
var ImportableExtensions = []string{".csv", ".ofx", ".qfx", ".xml"}

// FileScanner provides functionality to discover importable files.
type FileScanner struct {
	logger logging.Logger
}

// NewFileScanner creates a new instance of FileScanner.
func NewFileScanner(logger logging.Logger) *FileScanner {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &FileScanner{logger: logger}
}

// ScanPaths scans the given paths (files or directories) and returns the
// importable files found, sorted for deterministic processing order. A file
// path is returned as-is regardless of extension, since the user named it
// explicitly; directories are filtered to known extensions.
func (s *FileScanner) ScanPaths(paths []string) ([]string, error) {
	var files []string

	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			s.logger.WithError(err).WithField("path", p).Error("Failed to get absolute path")
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", p, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			s.logger.WithError(err).WithField("path", absPath).Error("Failed to stat path")
			return nil, fmt.Errorf("failed to stat path %s: %w", absPath, err)
		}

		if info.IsDir() {
			dirFiles, err := fileutils.ListFilesWithExtensions(absPath, ImportableExtensions)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else {
			files = append(files, absPath)
		}
	}

	sort.Strings(files)
	s.logger.Info("Discovered importable files",
		logging.Field{Key: logging.FieldCount, Value: len(files)})
	return files, nil
}
