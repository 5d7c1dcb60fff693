//go:build basic

// Package integration contains integration tests for riskboard.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRiskboardReports runs the report commands against a JSON export.
func TestRiskboardReports(t *testing.T) {
	recordsFile := writeRecordsFixture(t)

	err := runRiskboardCommand(t, "summary", "--data-file", recordsFile, "--store-backend", "none")
	require.NoError(t, err)

	err = runRiskboardCommand(t, "charts", "diseaseChart", "--data-file", recordsFile, "--store-backend", "none")
	require.NoError(t, err)

	err = runRiskboardCommand(t, "rank", "--data-file", recordsFile, "--store-backend", "none")
	require.NoError(t, err)
}

// TestRiskboardJSONOutput checks that chart output parses as JSON.
func TestRiskboardJSONOutput(t *testing.T) {
	recordsFile := writeRecordsFixture(t)
	outputFile := filepath.Join(t.TempDir(), "disease.json")

	cmd := exec.Command(getRiskboardBinary(),
		"charts", "diseaseChart",
		"--data-file", recordsFile,
		"--store-backend", "none",
		"--output", "json",
		"--output-file", outputFile)
	cmd.Dir = ".."
	require.NoError(t, cmd.Run())

	payload, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded struct {
		ChartID string   `json:"chartId"`
		Labels  []string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "diseaseChart", decoded.ChartID)
	assert.Contains(t, decoded.Labels, "Asthma")
}

// TestRiskboardSQLiteLifecycle drives the store lifecycle on the default
// SQLite backend with a file in a temp directory.
func TestRiskboardSQLiteLifecycle(t *testing.T) {
	recordsFile := writeRecordsFixture(t)
	dbPath := filepath.Join(t.TempDir(), "store.db")

	err := runRiskboardCommand(t, "store", "save",
		"--data-file", recordsFile,
		"--store-backend", "sqlite",
		"--store-db-connect", dbPath)
	require.NoError(t, err)

	err = runRiskboardCommand(t, "store", "load",
		"--store-backend", "sqlite",
		"--store-db-connect", dbPath)
	require.NoError(t, err)

	err = runRiskboardCommand(t, "store", "status",
		"--store-backend", "sqlite",
		"--store-db-connect", dbPath)
	require.NoError(t, err)

	err = runRiskboardCommand(t, "store", "clear",
		"--store-backend", "sqlite",
		"--store-db-connect", dbPath)
	require.NoError(t, err)
}
