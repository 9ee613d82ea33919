// Package api provides the HTTP API server and handlers for the AnimeX
// backend.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/animexapp/animex-server/internal/http/response"
	"github.com/animexapp/animex-server/internal/ratelimit"
	"github.com/animexapp/animex-server/internal/service"
	"github.com/animexapp/animex-server/internal/store"
)

// Options configures the HTTP server surface.
type Options struct {
	AllowedOrigins   []string
	RateLimitEnabled bool
	RateLimiter      *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store               store.Store
	authService         *service.AuthService
	animeService        *service.AnimeService
	episodeService      *service.EpisodeService
	likeService         *service.LikeService
	watchlistService    *service.WatchlistService
	notificationService *service.NotificationService
	commentService      *service.CommentService
	feedbackService     *service.FeedbackService
	profileService      *service.ProfileService
	adminService        *service.AdminService
	opts                Options
	router              *chi.Mux
	logger              *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store store.Store,
	authService *service.AuthService,
	animeService *service.AnimeService,
	episodeService *service.EpisodeService,
	likeService *service.LikeService,
	watchlistService *service.WatchlistService,
	notificationService *service.NotificationService,
	commentService *service.CommentService,
	feedbackService *service.FeedbackService,
	profileService *service.ProfileService,
	adminService *service.AdminService,
	opts Options,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:               store,
		authService:         authService,
		animeService:        animeService,
		episodeService:      episodeService,
		likeService:         likeService,
		watchlistService:    watchlistService,
		notificationService: notificationService,
		commentService:      commentService,
		feedbackService:     feedbackService,
		profileService:      profileService,
		adminService:        adminService,
		opts:                opts,
		router:              chi.NewRouter(),
		logger:              logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if s.opts.RateLimitEnabled && s.opts.RateLimiter != nil {
		s.router.Use(s.rateLimit)
	}
}

// setupRoutes configures all HTTP routes. Paths mirror the public client
// contract: everything lives under /api.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		r.Route("/anime", func(r chi.Router) {
			r.Get("/", s.handleListAnime)
			r.Get("/trending", s.handleTrendingAnime)
			r.Get("/featured", s.handleFeaturedAnime)
			r.Get("/{slug}", s.handleGetAnime)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Post("/", s.handleCreateAnime)
				r.Put("/{id}", s.handleUpdateAnime)
				r.Delete("/{id}", s.handleDeleteAnime)
			})
		})

		r.Route("/episodes", func(r chi.Router) {
			r.Get("/{id}", s.handleGetEpisode)
			r.Patch("/{id}/views", s.handleIncrementEpisodeViews)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Post("/", s.handleCreateEpisode)
				r.Put("/{id}", s.handleUpdateEpisode)
				r.Delete("/{id}", s.handleDeleteEpisode)
			})
		})

		r.Get("/search", s.handleSearch)
		r.Get("/genres", s.handleListGenres)

		r.Route("/likes", func(r chi.Router) {
			r.With(s.optionalAuth).Get("/{episodeId}", s.handleLikeStatus)
			r.With(s.requireAuth).Post("/{episodeId}", s.handleToggleLike)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{episodeId}", s.handleListComments)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateComment)
				r.Delete("/{id}", s.handleDeleteComment)
				r.Post("/{id}/flag", s.handleFlagComment)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleUpdateProfile)
			r.Put("/password", s.handleChangePassword)
			r.Get("/watchlist", s.handleListWatchlist)
			r.Post("/watchlist", s.handleAddToWatchlist)
			r.Delete("/watchlist/{animeId}", s.handleRemoveFromWatchlist)
			r.Put("/watchlist/reorder", s.handleReorderWatchlist)
			r.Get("/history", s.handleWatchHistory)
			r.Post("/history", s.handleSaveProgress)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListNotifications)
			r.Put("/{id}/read", s.handleMarkNotificationRead)
			r.Put("/read-all", s.handleMarkAllNotificationsRead)
			r.With(s.requireAdmin).Post("/broadcast", s.handleBroadcast)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.With(s.optionalAuth).Post("/", s.handleSubmitFeedback)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Get("/", s.handleListFeedback)
				r.Put("/{id}", s.handleUpdateFeedbackStatus)
				r.Post("/{id}/reply", s.handleReplyFeedback)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAuth, s.requireAdmin)
			r.Get("/stats", s.handleAdminStats)
			r.Get("/users", s.handleAdminListUsers)
			r.Put("/users/{id}/ban", s.handleAdminSetBanned)
			r.Put("/users/{id}/admin", s.handleAdminSetAdmin)
			r.Get("/comments", s.handleAdminListComments)
			r.Put("/comments/{id}/approve", s.handleAdminApproveComment)
			r.Post("/reindex", s.handleAdminReindex)
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
}

// rateLimit rejects requests over the per-IP budget with a 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.opts.RateLimiter.Allow(r.RemoteAddr) {
			response.TooManyRequests(w, "too many requests, slow down", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}
