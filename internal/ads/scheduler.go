package ads

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

const defaultGamesPerInterstitial = 3

// Scheduler decides when an interstitial is shown: it counts concluded
// games and presents the cached ad at every Nth conclusion, reloading
// the next one after dismissal. It is constructed once at application
// assembly and injected where needed.
type Scheduler struct {
	logger   *slog.Logger
	provider Provider
	listener Listener

	gamesPerAd  int
	loadRetries int

	mu        sync.Mutex
	concluded int
	loaded    bool
}

func NewScheduler(logger *slog.Logger, provider Provider, listener Listener, gamesPerAd, loadRetries int) *Scheduler {
	if gamesPerAd <= 0 {
		gamesPerAd = defaultGamesPerInterstitial
	}

	if listener == nil {
		listener = NopListener{}
	}

	return &Scheduler{
		logger:      logger,
		provider:    provider,
		listener:    listener,
		gamesPerAd:  gamesPerAd,
		loadRetries: loadRetries,
	}
}

// Preload caches the first ad so it is ready by the time the schedule
// first fires. Failures are not fatal: GameConcluded retries.
func (that *Scheduler) Preload(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.load(ctx); err != nil {
		that.logger.With("component", "ads").Warn("failed to preload interstitial", "error", err)
	}
}

// GameConcluded records one finished game (won or drawn) and reports
// whether an interstitial was displayed for it. The counter only
// resets once an ad has actually been shown and dismissed, so a failed
// load or show is retried at the next conclusion.
func (that *Scheduler) GameConcluded(ctx context.Context) bool {
	log := that.logger.With("component", "ads")

	that.mu.Lock()
	defer that.mu.Unlock()

	that.concluded++
	if that.concluded < that.gamesPerAd {
		return false
	}

	if !that.loaded {
		if err := that.load(ctx); err != nil {
			log.Warn("no interstitial available", "error", err)
			return false
		}
	}

	if err := that.provider.Show(ctx); err != nil {
		that.loaded = false
		log.Error("failed to show interstitial", "error", err)
		return false
	}

	that.listener.Shown()
	that.listener.Dismissed()

	that.concluded = 0
	that.loaded = false

	if err := that.load(ctx); err != nil {
		log.Warn("failed to load next interstitial", "error", err)
	}

	return true
}

// load asks the provider for the next ad, retrying up to the
// configured number of times. Callers hold the mutex.
func (that *Scheduler) load(ctx context.Context) error {
	var err error
	for attempt := 0; attempt <= that.loadRetries; attempt++ {
		if err = that.provider.Load(ctx); err == nil {
			that.loaded = true
			that.listener.Loaded()

			return nil
		}
	}

	that.listener.LoadFailed(err)

	return fmt.Errorf("failed to load interstitial: %w", err)
}
