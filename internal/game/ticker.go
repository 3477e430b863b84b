package game

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Sender accepts intents without blocking.
type Sender interface {
	Send(Intent)
}

// Ticker periodically pops one step from every cached route and forwards
// each as an IntentNpcStep. It never touches area state itself.
type Ticker struct {
	routes  *RouteCache
	out     Sender
	cadence time.Duration
	jitter  time.Duration
	rng     *rand.Rand
	log     *zap.Logger
}

// NewTicker creates a ticker draining routes into out.
func NewTicker(routes *RouteCache, out Sender, cfg Config, log *zap.Logger) *Ticker {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Ticker{
		routes:  routes,
		out:     out,
		cadence: cfg.NpcTick,
		jitter:  cfg.StepJitter,
		rng:     rand.New(rand.NewSource(seed + 1)),
		log:     log,
	}
}

// Run ticks until ctx is done. The wait between ticks is the cadence minus
// the time the tick itself took, so the average rate stays stable no matter
// how many NPCs are moving.
func (t *Ticker) Run(ctx context.Context) {
	for {
		start := time.Now()
		if !t.Tick(ctx) {
			return
		}
		wait := t.cadence - time.Since(start)
		if !sleep(ctx, max(wait, 0)) {
			return
		}
	}
}

// Tick pops and forwards one step per route, then queues a refresh so NPCs
// without a route get another chance. It returns false if ctx ended.
func (t *Ticker) Tick(ctx context.Context) bool {
	steps := t.routes.PopSteps()
	for _, step := range steps {
		if t.jitter > 0 && !sleep(ctx, time.Duration(t.rng.Int63n(int64(t.jitter)))) {
			return false
		}
		t.out.Send(Intent{Kind: IntentNpcStep, Step: step})
	}
	t.out.Send(Intent{Kind: IntentRefresh})

	if len(steps) > 0 {
		t.log.Debug("npc tick", zap.Int("steps", len(steps)))
	}
	return ctx.Err() == nil
}

// sleep waits for d or until ctx is done, reporting whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
