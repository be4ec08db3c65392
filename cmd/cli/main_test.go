package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"datasight/adapters/loader"
	"datasight/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, body, 0o644))
	return path
}

func TestProfileFiles(t *testing.T) {
	dir := t.TempDir()
	employees, err := testkit.EmployeeCSV(60, 7)
	require.NoError(t, err)

	paths := []string{
		writeFile(t, dir, "employees.csv", employees),
		writeFile(t, dir, "pets.json", []byte(`[{"name":"Rex","age":3},{"name":"Tom","age":5}]`)),
	}

	results, err := profileFiles(context.Background(), loader.New(loader.DefaultConfig(), nil), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, paths[0], results[0].File)
	assert.Equal(t, 60, results[0].Analysis.Summary.RowCount)
	assert.Equal(t, paths[1], results[1].File)
	assert.Equal(t, 2, results[1].Analysis.Summary.RowCount)
}

func TestProfileFiles_FailureStopsBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ok.csv", []byte("a,b\n1,2\n")),
		filepath.Join(dir, "missing.csv"),
	}

	_, err := profileFiles(context.Background(), loader.New(loader.DefaultConfig(), nil), paths, 0)
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scores.csv", []byte("name,score\na,1\nb,2\nc,3\n"))

	cmd := newRenderCmd(func() *loader.Loader { return loader.New(loader.DefaultConfig(), nil) })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--type", "histogram", "--column", "score"})
	require.NoError(t, cmd.Execute())

	var desc map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &desc))
	assert.Equal(t, "histogram", desc["type"])
	assert.Equal(t, "Distribution of score", desc["title"])
}

func TestReportCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scores.csv", []byte("name,score\na,1\n"))

	cmd := newReportCmd(func() *loader.Loader { return loader.New(loader.DefaultConfig(), nil) })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--format", "pdf"})
	assert.Error(t, cmd.Execute())
}
