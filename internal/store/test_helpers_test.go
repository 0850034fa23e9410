package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/testutil"
	"github.com/roach88/basc/internal/timeline"
)

// createTestStore creates a new file-backed store with sequential build ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithIDGenerator(testutil.SequentialGenerator(16)),
		WithLogger(testutil.DiscardLogger()),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestProgram compiles a one-item program whose text depends on content.
func createTestProgram(content string) *timeline.Program {
	reg := timeline.NewRegistry(timeline.WithLogger(testutil.DiscardLogger()))
	reg.Text(ir.NewAttrs(ir.P("content", ir.String(content))), "").
		Animate(ir.NewAttrs(ir.P("alpha", ir.Number(0))), "1500ms", timeline.EaseOut)
	return reg.Compile()
}
