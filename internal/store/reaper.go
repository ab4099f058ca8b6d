package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hustlesynth/synth-backend/internal/metrics"
)

// Reaper periodically sweeps idle sessions out of the store. It runs on
// its own timer, independent of request traffic, and stops when the
// context given to Run is cancelled.
type Reaper struct {
	store    *SessionStore
	ttl      time.Duration
	interval time.Duration
	logger   zerolog.Logger
}

// NewReaper wires a reaper to the store. ttl is the maximum idle
// duration before a session is evicted; interval is how often to sweep.
func NewReaper(store *SessionStore, ttl, interval time.Duration, logger zerolog.Logger) *Reaper {
	return &Reaper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, sweeping the store once per
// interval. Intended to be started as a goroutine owned by main.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().
		Dur("ttl", r.ttl).
		Dur("interval", r.interval).
		Msg("session reaper started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("session reaper stopped")
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Reaper) sweep() {
	removed := r.store.Sweep(r.ttl)
	live := r.store.Len()

	metrics.SessionsActive.Set(float64(live))
	if removed > 0 {
		metrics.SessionsReaped.Add(float64(removed))
		r.logger.Info().
			Int("removed", removed).
			Int("live", live).
			Msg("swept idle sessions")
	}
}
