// Package api provides the HTTP API server and handlers for the
// CampusConnect application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/leaderboard"
	"github.com/campusconnect/campusconnect-server/internal/ratelimit"
	"github.com/campusconnect/campusconnect-server/internal/search"
	"github.com/campusconnect/campusconnect-server/internal/service"
	"github.com/campusconnect/campusconnect-server/internal/sse"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store               *store.Store
	authService         *service.AuthService
	postService         *service.PostService
	userService         *service.UserService
	challengeService    *service.ChallengeService
	notificationService *service.NotificationService
	leaderboardService  *leaderboard.Service
	searchIndex         *search.Index
	sseHandler          *sse.Handler
	authLimiter         *ratelimit.KeyedRateLimiter
	router              *chi.Mux
	logger              *slog.Logger
	production          bool
}

// Options configures the HTTP server.
type Options struct {
	Store               *store.Store
	AuthService         *service.AuthService
	PostService         *service.PostService
	UserService         *service.UserService
	ChallengeService    *service.ChallengeService
	NotificationService *service.NotificationService
	LeaderboardService  *leaderboard.Service
	SearchIndex         *search.Index
	SSEManager          *sse.Manager
	Logger              *slog.Logger

	// Production enables production-only restrictions such as disabling
	// the leaderboard refresh endpoint.
	Production bool
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts Options) *Server {
	s := &Server{
		store:               opts.Store,
		authService:         opts.AuthService,
		postService:         opts.PostService,
		userService:         opts.UserService,
		challengeService:    opts.ChallengeService,
		notificationService: opts.NotificationService,
		leaderboardService:  opts.LeaderboardService,
		searchIndex:         opts.SearchIndex,
		// Login and refresh share a limiter: 10 attempts per minute per IP.
		authLimiter: ratelimit.New(10.0/60.0, 10),
		router:      chi.NewRouter(),
		logger:      opts.Logger,
		production:  opts.Production,
	}

	s.sseHandler = sse.NewHandler(opts.SSEManager, opts.LeaderboardService, getUserID, opts.Logger)

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
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.With(s.rateLimitByIP(s.authLimiter)).Post("/login", s.handleLogin)
			r.With(s.rateLimitByIP(s.authLimiter)).Post("/refresh", s.handleRefresh)
			r.With(s.requireAuth).Post("/logout", s.handleLogout)
		})

		// Leaderboard.
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", s.handleGetLeaderboard)
			r.Get("/refresh", s.handleRefreshLeaderboard)
			r.With(s.requireAuth).Post("/update", s.handleUpdateLeaderboard)
			r.With(s.requireAuth).Get("/stream", s.sseHandler.ServeHTTP)
		})

		// Posts.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/slug/{slug}", s.handleGetPostBySlug)
			r.Get("/{id}", s.handleGetPost)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreatePost)
				r.Patch("/{id}", s.handleUpdatePost)
				r.Delete("/{id}", s.handleDeletePost)
			})
		})

		// Users and profiles.
		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", s.handleGetUser)
			r.Get("/{id}/posts", s.handleGetUserPosts)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleGetCurrentUser)
				r.Patch("/me", s.handleUpdateProfile)
				r.Post("/me/bookmarks", s.handleAddBookmark)
				r.Delete("/me/bookmarks/{bookmarkID}", s.handleRemoveBookmark)
				r.Post("/{id}/follow", s.handleFollow)
				r.Delete("/{id}/follow", s.handleUnfollow)
			})
		})

		// Challenges.
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", s.handleListChallenges)
			r.Get("/{id}", s.handleGetChallenge)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateChallenge)
				r.Post("/{id}/join", s.handleJoinChallenge)
				r.Post("/{id}/leave", s.handleLeaveChallenge)
				r.Delete("/{id}", s.handleDeleteChallenge)
			})
		})

		// Notifications (always private).
		r.Route("/notifications", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListNotifications)
			r.Post("/read-all", s.handleMarkAllNotificationsRead)
			r.Post("/{id}/read", s.handleMarkNotificationRead)
		})

		// Search.
		r.Get("/search/posts", s.handleSearchPosts)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
