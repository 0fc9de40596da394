package bridge

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-cli")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestExecBridgeInvoke(t *testing.T) {
	bin := writeScript(t, `echo '{"text":"generated"}'`)
	b := NewExecBridge(bin, "zapier", 5*time.Second)

	res := b.Invoke(context.Background(), ToolTextGeneration, map[string]any{"prompt": "hi"})

	assert.False(t, res.Failed())
	assert.Equal(t, "generated", res.Text())
}

func TestExecBridgePassesCallArguments(t *testing.T) {
	// The script echoes its arguments back as the payload.
	bin := writeScript(t, `printf '{"text":"%s %s %s %s %s %s"}' "$1" "$2" "$3" "$4" "$5" "$6"`)
	b := NewExecBridge(bin, "zapier", 5*time.Second)

	res := b.Invoke(context.Background(), ToolForecast, map[string]any{})

	require.False(t, res.Failed())
	assert.Contains(t, res.Text(), "tool call forecast --server zapier")
}

func TestExecBridgeMissingBinary(t *testing.T) {
	b := NewExecBridge(filepath.Join(t.TempDir(), "does-not-exist"), "zapier", time.Second)

	res := b.Invoke(context.Background(), ToolMessageSend, nil)
	assert.True(t, res.Failed())
	assert.NotEmpty(t, res.Err)
}

func TestExecBridgeNonZeroExit(t *testing.T) {
	bin := writeScript(t, `echo "tool blew up" >&2; exit 3`)
	b := NewExecBridge(bin, "zapier", 5*time.Second)

	res := b.Invoke(context.Background(), ToolSentimentAnalysis, nil)

	assert.True(t, res.Failed())
	assert.Equal(t, "tool blew up", res.Err)
}

func TestExecBridgeErrorPayload(t *testing.T) {
	bin := writeScript(t, `echo '{"error":"rate limited"}'`)
	b := NewExecBridge(bin, "zapier", 5*time.Second)

	res := b.Invoke(context.Background(), ToolSheetRowQuery, nil)

	assert.True(t, res.Failed())
	assert.Equal(t, "rate limited", res.Err)
}

func TestExecBridgeGarbageOutput(t *testing.T) {
	bin := writeScript(t, `echo 'definitely not json'`)
	b := NewExecBridge(bin, "zapier", 5*time.Second)

	res := b.Invoke(context.Background(), ToolSheetRowCreate, nil)

	assert.True(t, res.Failed())
	assert.Contains(t, res.Err, "decode output")
}
