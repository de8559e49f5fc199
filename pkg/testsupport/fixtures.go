package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t testing.TB, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// Actor is a stable acting user for tests.
const Actor = "3b2f6f0e-5a4c-4d8e-9a61-7c1d2e3f4a5b"
