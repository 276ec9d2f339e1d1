package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"eventcli/internal/errors"
)

// FileValidator runs the path checks both tools perform before doing any work
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path is an existing, readable regular file.
// A missing .csv extension is only logged.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return errors.NewStorageError("input file not found", err).WithContext("path", path)
	}
	if err != nil {
		return errors.NewStorageError("failed to stat input file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory",
			slog.String("path", path))
		return errors.NewAppError(errors.ErrTypeStorage, "input path is a directory", nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.NewStorageError("input file is not readable", err).WithContext("path", path)
	}
	file.Close()

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		v.logger.Warn("Input file does not have a .csv extension",
			slog.String("file", path),
			slog.String("extension", ext))
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputFile checks that path can be written as a file: it must not
// be a directory, and its parent must be a directory or not exist yet.
func (v *FileValidator) ValidateOutputFile(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		v.logger.Error("Output path is a directory",
			slog.String("path", path))
		return errors.NewAppError(errors.ErrTypeStorage, "output path is a directory", nil).WithContext("path", path)
	}
	return v.checkParent(path)
}

// ValidateOutputDirectory checks that dir is a directory or can become one.
// Nothing is created.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return v.checkParent(dir)
	case err != nil:
		return errors.NewStorageError("failed to stat output directory", err).WithContext("path", dir)
	case !info.IsDir():
		v.logger.Error("Output path is not a directory",
			slog.String("path", dir))
		return errors.NewAppError(errors.ErrTypeStorage, "output path is not a directory", nil).WithContext("path", dir)
	}

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// checkParent walks up to the nearest existing ancestor of path and requires
// it to be a directory
func (v *FileValidator) checkParent(path string) error {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return errors.NewAppError(errors.ErrTypeStorage, "parent path is not a directory", nil).
					WithContext("path", path).
					WithContext("parent", dir)
			}
			return nil
		}
		if !os.IsNotExist(err) {
			return errors.NewStorageError("failed to stat parent directory", err).WithContext("path", dir)
		}
		if parent := filepath.Dir(dir); parent == dir {
			return nil
		}
	}
}
