package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level events to
// a logger. Completed analyses that failed are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates LogHooks writing to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, input string) {
	h.Logger.Debug("analysis started", "input", input)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, input, bigO, code string, d time.Duration) {
	if code != "" {
		h.Logger.Warn("analysis failed", "input", input, "code", code, "duration", d)
		return
	}
	h.Logger.Debug("analysis complete", "input", input, "bigo", bigO, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.Logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ AnalysisHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
