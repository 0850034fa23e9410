package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleAllItems(t *testing.T) {
	out, _, err := execute(t, NewSampleCommand(&RootOptions{Format: "text"}), introScene, "--at", "1s")
	require.NoError(t, err)

	assert.Contains(t, out, "intro at 1000ms of 4000ms\n")
	assert.Contains(t, out, `  c text{content="sub" alpha=0.5}`)
	assert.Contains(t, out, `  d text{content="child" bold=1 parent=c}`)
}

func TestSampleSingleItem(t *testing.T) {
	out, _, err := execute(t, NewSampleCommand(&RootOptions{Format: "json"}), introScene, "--at", "0:02", "--item", "a")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   SampleResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2000.0, resp.Data.AtMS)
	assert.Equal(t, 4000.0, resp.Data.DurationMS)
	require.Len(t, resp.Data.Frames, 1)
	assert.Equal(t, FrameResult{
		ID:    "a",
		Kind:  "text",
		Attrs: `content="Hello" x=40% y=50% color=0xffffff fontSize=5%`,
	}, resp.Data.Frames[0])
}

func TestSampleUnknownItem(t *testing.T) {
	out, _, err := execute(t, NewSampleCommand(&RootOptions{Format: "text"}), introScene, "--at", "1s", "--item", "zz")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E009]")
	assert.Contains(t, out, "unknown item")
}

func TestSampleRequiresAt(t *testing.T) {
	_, _, err := execute(t, NewSampleCommand(&RootOptions{Format: "text"}), introScene)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"at" not set`)
}

func TestSampleInvalidScene(t *testing.T) {
	out, _, err := execute(t, NewSampleCommand(&RootOptions{Format: "text"}), "../scene/testdata/invalid.yaml", "--at", "1s")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "✗ Compilation failed")
}
