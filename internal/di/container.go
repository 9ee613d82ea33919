// Package di provides dependency injection configuration for the AnimeX server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/animexapp/animex-server/internal/auth"
	"github.com/animexapp/animex-server/internal/config"
	"github.com/animexapp/animex-server/internal/di/providers"
	"github.com/animexapp/animex-server/internal/email"
	"github.com/animexapp/animex-server/internal/logger"
	"github.com/animexapp/animex-server/internal/service"
	"github.com/animexapp/animex-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Outbound mail
	do.Provide(injector, providers.ProvideMailer)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideAnimeService)
	do.Provide(injector, providers.ProvideNotificationService)
	do.Provide(injector, providers.ProvideEpisodeService)
	do.Provide(injector, providers.ProvideLikeService)
	do.Provide(injector, providers.ProvideWatchlistService)
	do.Provide(injector, providers.ProvideCommentService)
	do.Provide(injector, providers.ProvideFeedbackService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideAdminService)

	// Workers
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[email.Mailer](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.AnimeService](injector)
	_ = do.MustInvoke[*service.NotificationService](injector)
	_ = do.MustInvoke[*service.EpisodeService](injector)
	_ = do.MustInvoke[*service.LikeService](injector)
	_ = do.MustInvoke[*service.WatchlistService](injector)
	_ = do.MustInvoke[*service.CommentService](injector)
	_ = do.MustInvoke[*service.FeedbackService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)

	// Workers
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the search index from the catalog if it came up empty
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
