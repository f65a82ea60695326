package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes compute and cache events to a logger at debug level.
// Failed computations are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger. A nil logger uses log.Default.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnComputeStart(_ context.Context, formula string, resolution int) {
	h.Logger.Debug("compute started", "formula", formula, "resolution", resolution)
}

func (h *LogHooks) OnComputeComplete(_ context.Context, formula string, points int, reliable bool, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("compute failed", "formula", formula, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("compute finished", "formula", formula, "points", points, "reliable", reliable, "duration", d)
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
