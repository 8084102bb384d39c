package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/panekit/panekit/pkg/observe"
)

// =============================================================================
// Debug Logging Hooks
// =============================================================================

// logSessionHooks routes editor session events into the debug log.
type logSessionHooks struct {
	logger *log.Logger
}

var _ observe.SessionHooks = (*logSessionHooks)(nil)

func (h *logSessionHooks) OnGestureBegin(_ context.Context, kind, target string) {
	h.logger.Debug("gesture begin", "kind", kind, "target", target)
}

func (h *logSessionHooks) OnGestureEnd(_ context.Context, kind, target string, frames, commits int) {
	h.logger.Debug("gesture end", "kind", kind, "target", target, "frames", frames, "commits", commits)
}

func (h *logSessionHooks) OnImport(_ context.Context, regionCount int, err error) {
	if err != nil {
		h.logger.Debug("import rejected", "err", err)
		return
	}
	h.logger.Debug("import applied", "regions", regionCount)
}

func (h *logSessionHooks) OnExport(_ context.Context, regionCount int) {
	h.logger.Debug("export", "regions", regionCount)
}

func (h *logSessionHooks) OnReset(_ context.Context, scope string) {
	h.logger.Debug("reset", "scope", scope)
}

// logStoreHooks routes document store events into the debug log.
type logStoreHooks struct {
	logger *log.Logger
}

var _ observe.StoreHooks = (*logStoreHooks)(nil)

func (h *logStoreHooks) OnLoad(_ context.Context, backend, key string, found bool, duration time.Duration, err error) {
	h.logger.Debug("store load", "backend", backend, "key", key, "found", found, "dur", duration, "err", err)
}

func (h *logStoreHooks) OnSave(_ context.Context, backend, key string, size int, duration time.Duration, err error) {
	h.logger.Debug("store save", "backend", backend, "key", key, "bytes", size, "dur", duration, "err", err)
}

func (h *logStoreHooks) OnDelete(_ context.Context, backend, key string, duration time.Duration, err error) {
	h.logger.Debug("store delete", "backend", backend, "key", key, "dur", duration, "err", err)
}
