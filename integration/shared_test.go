//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedRiskboardPath holds the path to a shared riskboard binary built once for all tests.
	sharedRiskboardPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getRiskboardBinary returns the path to the riskboard binary, building it once if needed.
func getRiskboardBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "riskboard-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		riskboardPath := filepath.Join(tempDir, "riskboard")
		buildCmd := exec.Command("go", "build", "-o", riskboardPath, "./cmd/riskboard")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build riskboard: %v", err))
		}

		sharedRiskboardPath = riskboardPath
	})

	return sharedRiskboardPath
}

// writeRecordsFixture writes a small JSON record export for the CLI to ingest.
func writeRecordsFixture(t *testing.T) string {
	t.Helper()
	payload := `[
  {"memberId": "M100", "dependentCode": "00", "diseaseProtocol": "Asthma", "riskRating": "High Risk", "riskCalculationType": "Adherence", "dateCalculated": "2024-03-05", "isActive": "Yes"},
  {"memberId": "M100", "dependentCode": "00", "diseaseProtocol": "COPD", "riskRating": "Medium Risk", "riskCalculationType": "Clinical", "dateCalculated": "2024-04-10", "isActive": "Yes"},
  {"memberId": "M200", "dependentCode": "01", "diseaseProtocol": "Diabetes", "riskRating": "High Risk", "riskCalculationType": "Adherence", "dateCalculated": "2024-05-01", "isActive": "Yes"},
  {"memberId": "M300", "dependentCode": "00", "diseaseProtocol": "Hypertension", "riskRating": "Low Risk", "riskCalculationType": "Clinical", "isActive": "No"}
]`
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("failed to write records fixture: %v", err)
	}
	return path
}

func runRiskboardCommand(t *testing.T, args ...string) error {
	riskboardPath := getRiskboardBinary()
	cmd := exec.Command(riskboardPath, args...)
	cmd.Dir = ".." // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
