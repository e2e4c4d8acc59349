package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper removes stale games from a store. The memory store implements it;
// Redis-backed games expire via TTL and need no sweeping, so the sweeper is
// nil in that mode.
type Sweeper interface {
	Sweep(ctx context.Context, finishedTTL, staleTTL time.Duration) int
}

// LockPruner releases per-game locks whose games are gone. The game service
// implements it; without pruning, games removed behind the service's back
// (sweeps, redis expiry) would leave their locks around forever.
type LockPruner interface {
	PruneLocks(ctx context.Context) int
}

// Worker periodically removes finished games past their retention window and
// abandoned in-progress games, then prunes orphaned game locks.
type Worker struct {
	sweeper     Sweeper
	pruner      LockPruner
	interval    time.Duration
	finishedTTL time.Duration
	staleTTL    time.Duration
	logger      zerolog.Logger
}

func NewWorker(logger zerolog.Logger, sweeper Sweeper, pruner LockPruner, interval, finishedTTL, staleTTL time.Duration) *Worker {
	return &Worker{
		sweeper:     sweeper,
		pruner:      pruner,
		interval:    interval,
		finishedTTL: finishedTTL,
		staleTTL:    staleTTL,
		logger:      logger.With().Str("component", "cleanup").Logger(),
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. It blocks, so call it from its own goroutine.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("cleanup worker started")
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	if w.sweeper != nil {
		if removed := w.sweeper.Sweep(ctx, w.finishedTTL, w.staleTTL); removed > 0 {
			w.logger.Info().Int("removed", removed).Msg("removed stale games")
		}
	}
	if w.pruner != nil {
		if pruned := w.pruner.PruneLocks(ctx); pruned > 0 {
			w.logger.Debug().Int("pruned", pruned).Msg("released orphaned game locks")
		}
	}
}
