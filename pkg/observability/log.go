package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, errors at warn.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ StoreHooks    = (*LogHooks)(nil)
)

// NewLogHooks returns hooks logging to l, or to the default logger when
// l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, memberCount int) {
	h.Logger.Debug("layout started", "members", memberCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, nodeCount, anomalyCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout finished", "nodes", nodeCount, "anomalies", anomalyCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render finished", "formats", formats, "duration", d)
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

func (h *LogHooks) OnMutation(_ context.Context, op string, version int64, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("store mutation failed", "op", op, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("store mutation", "op", op, "version", version, "duration", d)
}
