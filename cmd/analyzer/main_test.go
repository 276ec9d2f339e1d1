package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcli/internal/config"
	"eventcli/internal/shared/testutil"
	"eventcli/pkg/contracts/domain"
)

func writeExampleCSV(t *testing.T) string {
	t.Helper()
	var records [][]string
	for _, r := range testutil.ExampleRows() {
		records = append(records, testutil.Record(r))
	}
	return testutil.WriteCSV(t, domain.Columns, records)
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, run(t.Context(), []string{"-version"}, &out))
	assert.Contains(t, out.String(), "analyzer v")
}

func TestRun_Analyze(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "dash")

	var out bytes.Buffer
	code := run(t.Context(), []string{"-in", writeExampleCSV(t), "-out", outDir, "-sequential", "-no-workbook", "-traces"}, &out)
	require.Equal(t, 0, code)

	assert.Contains(t, out.String(), "Analysis complete.")
	assert.Contains(t, out.String(), outDir)
	assert.FileExists(t, filepath.Join(outDir, config.SummaryFile))
	assert.FileExists(t, filepath.Join(outDir, config.TracesFile))
	assert.NoFileExists(t, filepath.Join(outDir, config.WorkbookFile))
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "dash")

	code := run(t.Context(), []string{"-in", filepath.Join(dir, "missing.csv"), "-out", outDir}, &bytes.Buffer{})
	assert.Equal(t, 1, code)
	assert.NoDirExists(t, outDir)
}
