package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prettymarkup/pkg/observability"
)

// logHooks logs observability events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnConvertStart(_ context.Context, inputBytes int) {
	h.logger.Debug("convert start", "bytes", inputBytes)
}

func (h *logHooks) OnConvertComplete(_ context.Context, triples, shapes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("convert failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("convert done", "triples", triples, "shapes", shapes, "duration", d)
}

func (h *logHooks) OnVisitStart(_ context.Context, shapes int) {
	h.logger.Debug("visit start", "shapes", shapes)
}

func (h *logHooks) OnVisitComplete(_ context.Context, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("visit failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("visit done", "rows", rows, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("fetch", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("fetched", "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("fetch failed", "host", host, "path", path, "err", err)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)
