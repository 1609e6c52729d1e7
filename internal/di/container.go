// Package di provides dependency injection configuration for the
// CampusConnect server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/campusconnect/campusconnect-server/internal/auth"
	"github.com/campusconnect/campusconnect-server/internal/config"
	"github.com/campusconnect/campusconnect-server/internal/di/providers"
	"github.com/campusconnect/campusconnect-server/internal/logger"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideEventBus)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePostService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideChallengeService)
	do.Provide(injector, providers.ProvideNotificationService)

	// Leaderboard
	do.Provide(injector, providers.ProvideLeaderboardService)

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
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.EventBusHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PostService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.ChallengeService](injector)
	_ = do.MustInvoke[*service.NotificationService](injector)

	// Leaderboard
	_ = do.MustInvoke[*providers.LeaderboardHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the search index if it is empty but posts exist
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
