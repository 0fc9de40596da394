package bridge

import (
	"context"
	"time"

	"franchise-service/internal/util"
)

// Tool names from the external catalog
const (
	ToolSheetRowCreate    = "sheet-row-create"
	ToolSheetRowUpdate    = "sheet-row-update"
	ToolSheetRowQuery     = "sheet-row-query"
	ToolTextGeneration    = "text-generation"
	ToolSentimentAnalysis = "sentiment-analysis"
	ToolForecast          = "forecast"
	ToolMessageSend       = "message-send"
	ToolManagerAlert      = "manager-alert"
)

// Result is an error-tagged tool invocation outcome. A failed call carries the
// diagnostic in Err instead of a Go error, so callers must check Failed()
// before reading Data.
type Result struct {
	Tool string         `json:"tool"`
	Data map[string]any `json:"data,omitempty"`
	Err  string         `json:"error,omitempty"`
}

// Invoker is the single seam through which every AI generation, persistence,
// and notification action flows. Implementations never panic and never return
// a Go error: failures are folded into Result.Err.
type Invoker interface {
	Invoke(ctx context.Context, tool string, params map[string]any) Result
}

// Failed reports whether the invocation carried an error tag
func (r Result) Failed() bool {
	return r.Err != ""
}

// Text returns the "text" field of the payload, or empty when absent
func (r Result) Text() string {
	if r.Data == nil {
		return ""
	}
	s, _ := r.Data["text"].(string)
	return s
}

// Score returns the "score" field of the payload, or zero when absent
func (r Result) Score() float64 {
	if r.Data == nil {
		return 0
	}
	switch v := r.Data["score"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func errResult(tool, msg string) Result {
	return Result{Tool: tool, Err: msg}
}

func observe(tool string, start time.Time, r Result) Result {
	status := "ok"
	if r.Failed() {
		status = "error"
	}
	util.BridgeCallsTotal.WithLabelValues(tool, status).Inc()
	util.BridgeCallLatency.Observe(time.Since(start).Seconds())
	return r
}
