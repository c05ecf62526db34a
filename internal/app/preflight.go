package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/catvote/internal/catapi"
)

const preflightTimeout = 3 * time.Second

// checkBackend makes one breed list request and logs whether the backend
// answered. It never retries; the UI reports its own failures.
func checkBackend(ctx context.Context, api catapi.API, logger zerolog.Logger, timeout time.Duration) {
	if timeout <= 0 {
		timeout = preflightTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	breeds, err := api.FetchBreeds(ctx)
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("backend not reachable")
		return
	}
	logger.Info().Int("breeds", len(breeds)).Dur("elapsed", time.Since(start)).Msg("backend reachable")
}

// startPreflight runs checkBackend in the background. The returned stop
// cancels the check and waits for it to finish.
func startPreflight(ctx context.Context, api catapi.API, logger zerolog.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		checkBackend(ctx, api, logger, preflightTimeout)
	}()
	return func() {
		cancel()
		<-done
	}
}
