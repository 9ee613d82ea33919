package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/animexapp/animex-server/internal/config"
	"github.com/animexapp/animex-server/internal/logger"
	"github.com/animexapp/animex-server/internal/ratelimit"
)

const sessionCleanupInterval = time.Hour

// RateLimiterHandle wraps the keyed rate limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-IP rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	limiter := ratelimit.New(
		float64(cfg.RateLimit.RequestsPerMinute)/60.0,
		cfg.RateLimit.Burst,
	)
	return &RateLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// SessionCleanupJob periodically purges expired refresh sessions so the
// sessions table doesn't accumulate dead rows.
type SessionCleanupJob struct {
	store  *StoreHandle
	logger *logger.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// ProvideSessionCleanupJob provides and starts the session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	job := &SessionCleanupJob{
		store:  storeHandle,
		logger: log,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go job.run(ctx)
	log.Info("Session cleanup job started", "interval", sessionCleanupInterval)

	return job, nil
}

func (j *SessionCleanupJob) run(ctx context.Context) {
	defer close(j.done)

	j.cleanup(ctx)

	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.cleanup(ctx)
		}
	}
}

func (j *SessionCleanupJob) cleanup(ctx context.Context) {
	deleted, err := j.store.DeleteExpiredSessions(ctx)
	if err != nil {
		j.logger.Warn("Session cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.Info("Expired sessions purged", "deleted", deleted)
	}
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()

	select {
	case <-j.done:
	case <-time.After(5 * time.Second):
	}
	return nil
}
