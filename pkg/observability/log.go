package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. The CLI
// registers it under -v.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger, or to the default logger
// when nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetAnalysisHooks(h)
	SetGraphHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, size int) {
	h.logger.Debug("analyze start", "bytes", size)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, shape string, fields, conflicts int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("analyze failed", "err", err, "took", d)
		return
	}
	h.logger.Debug("analyze done", "shape", shape, "fields", fields, "conflicts", conflicts, "took", d)
}

func (h *LogHooks) OnBuild(_ context.Context, nodes, edges int, d time.Duration) {
	h.logger.Debug("graph built", "nodes", nodes, "edges", edges, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, engine string, nodes int) {
	h.logger.Debug("layout start", "engine", engine, "nodes", nodes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	h.logger.Debug("layout done", "engine", engine, "took", d, "err", err)
}

func (h *LogHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("export start", "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("export done", "format", format, "bytes", size, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ AnalysisHooks = (*LogHooks)(nil)
	_ GraphHooks    = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
