package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sava-app/sava/internal/coordinator"
	"github.com/sava-app/sava/internal/logger"
)

// Refresher keeps the local collection in sync with the upstream API:
// one fetch at startup, then periodic refreshes, plus a manual trigger for
// on-demand reloads.
type Refresher struct {
	coord         *coordinator.Coordinator
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRefresher creates a new collection refresher.
func NewRefresher(
	coord *coordinator.Coordinator,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Refresher {
	return &Refresher{
		coord:         coord,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start fetches once, then begins the periodic refresh loop. The initial
// fetch failing is fatal only when there is no warm-started state to serve.
func (r *Refresher) Start(ctx context.Context, haveWarmState bool) error {
	if err := r.coord.Refresh(ctx); err != nil {
		if !haveWarmState {
			return fmt.Errorf("initial collection fetch failed: %w", err)
		}
		r.logger.Warn("initial collection fetch failed, serving cached snapshot",
			logger.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.coord.Refresh(ctx); err != nil {
					r.logger.Error("failed to refresh collection",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual collection refresh triggered")
				if err := r.coord.Refresh(ctx); err != nil {
					r.logger.Error("failed to refresh collection",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher.
func (r *Refresher) Stop() {
	close(r.stopCh)
}
