package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/testutil"
)

func TestSaveProgram_RecordsBuild(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	prog := createTestProgram("hi")

	b, created, err := s.SaveProgram(ctx, "intro", prog)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Build{
		ID:              "build-001",
		Seq:             1,
		Scene:           "intro",
		ProgramHash:     prog.Hash(),
		Program:         "def text a{content=\"hi\"}\nset a {alpha=0} 1500ms,\"ease-out\"",
		ItemCount:       1,
		DurationMS:      1500,
		GrammarVersion:  ir.GrammarVersion,
		CompilerVersion: ir.CompilerVersion,
	}, b)

	got, err := s.Get(ctx, "build-001")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestSaveProgram_UnchangedIsNoop(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	first, created, err := s.SaveProgram(ctx, "intro", createTestProgram("hi"))
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := s.SaveProgram(ctx, "intro", createTestProgram("hi"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again)

	history, err := s.History(ctx, "intro")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSaveProgram_RevertIsANewBuild(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for _, content := range []string{"one", "two", "one"} {
		_, created, err := s.SaveProgram(ctx, "intro", createTestProgram(content))
		require.NoError(t, err)
		require.True(t, created, content)
	}

	history, err := s.History(ctx, "intro")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{history[0].Seq, history[1].Seq, history[2].Seq})
	assert.Equal(t, history[0].ProgramHash, history[2].ProgramHash)

	earliest, err := s.FindByHash(ctx, "intro", history[2].ProgramHash)
	require.NoError(t, err)
	assert.Equal(t, "build-001", earliest.ID)
}

func TestSeqIsSharedAcrossScenes(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	a, _, err := s.SaveProgram(ctx, "a", createTestProgram("x"))
	require.NoError(t, err)
	b, _, err := s.SaveProgram(ctx, "b", createTestProgram("x"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.Seq)
	assert.Equal(t, int64(2), b.Seq)
	assert.Equal(t, a.ProgramHash, b.ProgramHash)

	scenes, err := s.Scenes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, scenes)
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.Latest(ctx, "intro")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = s.SaveProgram(ctx, "intro", createTestProgram("one"))
	require.NoError(t, err)
	second, _, err := s.SaveProgram(ctx, "intro", createTestProgram("two"))
	require.NoError(t, err)

	latest, err := s.Latest(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestReadsOnEmptyArchive(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	history, err := s.History(ctx, "nothing")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	scenes, err := s.Scenes(ctx)
	require.NoError(t, err)
	assert.Empty(t, scenes)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByHash(ctx, "nothing", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryArchive(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:", WithIDGenerator(testutil.NewFixedGenerator("only")), WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	defer s.Close()

	b, created, err := s.SaveProgram(ctx, "mem", createTestProgram("m"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "only", b.ID)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a := gen.Generate()
	b := gen.Generate()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "version nibble")
}

func TestSaveProgram_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.SaveProgram(ctx, "intro", createTestProgram("x"))
	assert.Error(t, err)
}
