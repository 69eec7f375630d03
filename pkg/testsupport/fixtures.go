// Package testsupport loads markdown fixtures and JSON golden files for tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Fixture reads testdata/name as text and fails the test when it is missing.
func Fixture(tb testing.TB, name string) string {
	tb.Helper()
	data, err := LoadFixture(filepath.Join("testdata", name))
	if err != nil {
		tb.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

// Golden decodes testdata/name into v and fails the test on error.
func Golden(tb testing.TB, name string, v any) {
	tb.Helper()
	if err := LoadGolden(filepath.Join("testdata", name), v); err != nil {
		tb.Fatalf("read golden %s: %v", name, err)
	}
}
