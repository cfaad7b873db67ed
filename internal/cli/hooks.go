package cli

import (
	"context"
	"time"

	"github.com/matzehuels/cardsheet/pkg/observability"
)

// logHooks reports engine and canvas events at debug level through the
// logger attached to the operation's context.
type logHooks struct{}

// InstallHooks registers the CLI's observability hooks. Call it once at
// startup.
func InstallHooks() {
	observability.SetEngineHooks(logHooks{})
	observability.SetCanvasHooks(logHooks{})
}

func (logHooks) OnShift(ctx context.Context, sheetID string, cards int, ok bool, d time.Duration) {
	loggerFromContext(ctx).Debug("shift", "sheet", sheetID, "chain", cards, "ok", ok, "took", d)
}

func (logHooks) OnMove(ctx context.Context, sheetID string, moved, dropped, reverted int, d time.Duration) {
	loggerFromContext(ctx).Debug("move", "sheet", sheetID, "moved", moved, "dropped", dropped, "reverted", reverted, "took", d)
}

func (logHooks) OnSwap(ctx context.Context, sheetID string, ok bool) {
	loggerFromContext(ctx).Debug("swap", "sheet", sheetID, "ok", ok)
}

func (logHooks) OnCardsChanged(ctx context.Context, op string, cards int) {
	loggerFromContext(ctx).Debug("cards changed", "op", op, "cards", cards)
}

func (logHooks) OnClusters(ctx context.Context, sheetID string, clusters int, d time.Duration) {
	loggerFromContext(ctx).Debug("clusters", "sheet", sheetID, "found", clusters, "took", d)
}
