package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeSweeper struct{ calls int }

func (f *fakeSweeper) Sweep(context.Context, time.Duration, time.Duration) int {
	f.calls++
	return f.calls
}

type fakePruner struct{ calls int }

func (f *fakePruner) PruneLocks(context.Context) int {
	f.calls++
	return 0
}

func TestWorkerSweepRunsBothDuties(t *testing.T) {
	sweeper := &fakeSweeper{}
	pruner := &fakePruner{}
	w := NewWorker(zerolog.Nop(), sweeper, pruner, time.Hour, time.Hour, 24*time.Hour)

	w.sweep(context.Background())
	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, 1, pruner.calls)
}

func TestWorkerSweepWithoutSweeper(t *testing.T) {
	// redis mode: games expire via TTL, only locks need pruning
	pruner := &fakePruner{}
	w := NewWorker(zerolog.Nop(), nil, pruner, time.Hour, time.Hour, 24*time.Hour)

	w.sweep(context.Background())
	assert.Equal(t, 1, pruner.calls)
}
