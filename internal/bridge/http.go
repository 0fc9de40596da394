package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"franchise-service/internal/util"

	"go.uber.org/zap"
)

const maxResponseSizeBytes = 2 << 20

// HTTPBridge invokes tools through an HTTP tool gateway. Each call POSTs
// {tool, params} as JSON and expects a JSON object back; a body carrying an
// "error" key is treated as a failed invocation.
type HTTPBridge struct {
	url        string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPBridge creates an HTTP tool bridge with a bounded per-call timeout
func NewHTTPBridge(url, token string, timeout time.Duration) *HTTPBridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPBridge{
		url:        strings.TrimRight(strings.TrimSpace(url), "/"),
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: timeout},
		logger:     util.GetLogger(),
	}
}

type invokeRequest struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// Invoke issues a blocking call to the gateway and returns an error-tagged result
func (b *HTTPBridge) Invoke(ctx context.Context, tool string, params map[string]any) Result {
	start := time.Now()

	body, err := json.Marshal(invokeRequest{Tool: tool, Params: params})
	if err != nil {
		return observe(tool, start, errResult(tool, fmt.Sprintf("marshal params: %v", err)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return observe(tool, start, errResult(tool, fmt.Sprintf("build request: %v", err)))
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Warn("Bridge call failed", zap.String("tool", tool), zap.Error(err))
		return observe(tool, start, errResult(tool, err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return observe(tool, start, errResult(tool, fmt.Sprintf("read response: %v", err)))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b.logger.Warn("Bridge returned non-2xx status",
			zap.String("tool", tool),
			zap.Int("status", resp.StatusCode))
		return observe(tool, start, errResult(tool,
			fmt.Sprintf("gateway status=%d body=%s", resp.StatusCode, string(raw))))
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return observe(tool, start, errResult(tool, fmt.Sprintf("decode response: %v", err)))
	}

	if msg, ok := data["error"].(string); ok && msg != "" {
		return observe(tool, start, errResult(tool, msg))
	}

	return observe(tool, start, Result{Tool: tool, Data: data})
}
