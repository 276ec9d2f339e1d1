package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"eventcli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes CSV files below a base directory. Every file is written to
// a temporary sibling and renamed into place, so readers never see a partial
// file.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a writer rooted at dir
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes a complete CSV file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	sw, err := w.CreateStreamWriter(filePath, options.Headers, options.BOMPrefix)
	if err != nil {
		return err
	}

	for i, record := range options.Records {
		if err := sw.WriteRecord(record); err != nil {
			sw.Abort()
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("path", sw.path)
		}
	}
	return sw.Close()
}

// WriteTable writes a report table to its file name
func (w *CSVWriter) WriteTable(t ReportTable) error {
	return w.WriteCSV(t.File, WriteOptions{Headers: t.Header, Records: t.Records()})
}

// StreamWriter writes records one at a time to a temporary file; Close
// commits it under the final name
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
	path   string
	logger *slog.Logger
}

// CreateStreamWriter opens a temporary file next to filePath and writes the
// header
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewStorageError("failed to create directory", err).WithContext("path", dir)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return nil, errors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}

	sw := &StreamWriter{file: file, writer: csv.NewWriter(file), path: fullPath, logger: w.logger}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			sw.Abort()
			return nil, errors.NewStorageError("failed to write BOM", err).WithContext("path", fullPath)
		}
	}
	if len(headers) > 0 {
		if err := sw.writer.Write(headers); err != nil {
			sw.Abort()
			return nil, errors.NewStorageError("failed to write headers", err).WithContext("path", fullPath)
		}
	}
	return sw, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes the temporary file and renames it over the target
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.Abort()
		return errors.NewStorageError("failed to flush csv", err).WithContext("path", s.path)
	}
	if err := s.file.Sync(); err != nil {
		s.Abort()
		return errors.NewStorageError("failed to sync csv", err).WithContext("path", s.path)
	}
	tmp := s.file.Name()
	if err := s.file.Close(); err != nil {
		os.Remove(tmp)
		return errors.NewStorageError("failed to close csv", err).WithContext("path", s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.NewStorageError("failed to move csv into place", err).WithContext("path", s.path)
	}

	s.logger.Info("Wrote CSV file", slog.String("path", s.path))
	return nil
}

// Abort discards the temporary file, leaving any existing target untouched
func (s *StreamWriter) Abort() {
	s.file.Close()
	os.Remove(s.file.Name())
}

// resolvePath joins relative paths onto the writer's directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.dir, filePath)
}
