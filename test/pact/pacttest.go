//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "ramen-kiosk-api"
	ConsumerName = "kiosk-terminal"

	StateCatalogStocked = "the ramen catalog is fully stocked"
	StateNoodlesSoldOut = "noodles are sold out"
)

const (
	ExampleOrderID = "7f2c5a8e-3b1d-4c6e-9a0f-2d4b6c8e0a1f"
	ExamplePlaced  = "2024-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile is the pact written by the kiosk terminal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest is the two-noodle, one-egg order used across interactions.
func ExampleOrderRequest() map[string]any {
	return map[string]any{
		"lines": []map[string]any{
			{"ingredient": "Noodles", "quantity": 2},
			{"ingredient": "Egg", "quantity": 1},
		},
		"cash": "100",
	}
}

// SoldOutOrderRequest asks for a single bowl of noodles.
func SoldOutOrderRequest() map[string]any {
	return map[string]any{
		"lines": []map[string]any{{"ingredient": "Noodles", "quantity": 1}},
		"cash":  "100",
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
