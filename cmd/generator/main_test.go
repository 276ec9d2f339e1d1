package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, run(t.Context(), []string{"-version"}, &out))
	assert.Contains(t, out.String(), "generator v")
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run(t.Context(), []string{"-bogus"}, &out))
}

func TestRun_WritesDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regs.csv")

	var out bytes.Buffer
	code := run(t.Context(), []string{"-out", path, "-seed", "7"}, &out)
	require.Equal(t, 0, code)

	assert.Contains(t, out.String(), "Dataset created: 2180 registrations")
	assert.Contains(t, out.String(), path)
	assert.FileExists(t, path)
}

func TestRun_SeedChangesOutput(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")

	require.Equal(t, 0, run(t.Context(), []string{"-out", a, "-seed", "1"}, &bytes.Buffer{}))
	require.Equal(t, 0, run(t.Context(), []string{"-out", b, "-seed", "2"}, &bytes.Buffer{}))

	ca, err := os.ReadFile(a)
	require.NoError(t, err)
	cb, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca, cb)
}

func TestRun_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	code := run(t.Context(), []string{
		"-out", filepath.Join(dir, "regs.csv"),
		"-catalog", filepath.Join(dir, "missing.yaml"),
	}, &bytes.Buffer{})
	assert.Equal(t, 1, code)
}
