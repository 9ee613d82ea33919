package providers

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/samber/do/v2"

	"github.com/animexapp/animex-server/internal/api"
	"github.com/animexapp/animex-server/internal/config"
	"github.com/animexapp/animex-server/internal/logger"
	"github.com/animexapp/animex-server/internal/service"
)

// HTTPServerHandle wraps the HTTP server to allow graceful shutdown.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer assembles the API router, binds the listener and starts
// serving in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	apiServer := api.NewServer(
		storeHandle.Store,
		do.MustInvoke[*service.AuthService](i),
		do.MustInvoke[*service.AnimeService](i),
		do.MustInvoke[*service.EpisodeService](i),
		do.MustInvoke[*service.LikeService](i),
		do.MustInvoke[*service.WatchlistService](i),
		do.MustInvoke[*service.NotificationService](i),
		do.MustInvoke[*service.CommentService](i),
		do.MustInvoke[*service.FeedbackService](i),
		do.MustInvoke[*service.ProfileService](i),
		do.MustInvoke[*service.AdminService](i),
		api.Options{
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimiter:      limiterHandle.KeyedRateLimiter,
		},
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server failed")
			os.Exit(1)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
