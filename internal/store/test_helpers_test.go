package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/fissure/internal/ir"
)

// createTestStore creates a new temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run record with minimal required fields.
func createTestRun(id, inputDigest string, overlaps int) ir.RunRecord {
	return ir.RunRecord{
		ID:            id,
		InputDigest:   inputDigest,
		SegmentDigest: "segments-" + inputDigest,
		Bound:         "auto",
		Policy:        "lenient",
		Size:          10,
		Lines:         10,
		Kept:          6,
		Diagonal:      4,
		Overlaps:      overlaps,
		EngineVersion: "0.1.0",
	}
}
