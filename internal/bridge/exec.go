package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"franchise-service/internal/util"

	"go.uber.org/zap"
)

// ExecBridge invokes tools by shelling out to a CLI tool-call client, one
// process per invocation. Non-zero exit or unparseable stdout is folded into
// the result's error tag.
type ExecBridge struct {
	binary  string
	server  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewExecBridge creates a subprocess-based tool bridge
func NewExecBridge(binary, server string, timeout time.Duration) *ExecBridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExecBridge{
		binary:  binary,
		server:  server,
		timeout: timeout,
		logger:  util.GetLogger(),
	}
}

// Invoke runs the CLI client and returns an error-tagged result
func (b *ExecBridge) Invoke(ctx context.Context, tool string, params map[string]any) Result {
	start := time.Now()

	input, err := json.Marshal(params)
	if err != nil {
		return observe(tool, start, errResult(tool, fmt.Sprintf("marshal params: %v", err)))
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.binary,
		"tool", "call", tool,
		"--server", b.server,
		"--input", string(input))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		b.logger.Warn("Bridge subprocess failed",
			zap.String("tool", tool),
			zap.String("stderr", msg))
		return observe(tool, start, errResult(tool, msg))
	}

	var data map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &data); err != nil {
		return observe(tool, start, errResult(tool, fmt.Sprintf("decode output: %v", err)))
	}

	if msg, ok := data["error"].(string); ok && msg != "" {
		return observe(tool, start, errResult(tool, msg))
	}

	return observe(tool, start, Result{Tool: tool, Data: data})
}
