package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/campusconnect/campusconnect-server/internal/api"
	"github.com/campusconnect/campusconnect-server/internal/config"
	"github.com/campusconnect/campusconnect-server/internal/logger"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	leaderboardHandle := do.MustInvoke[*LeaderboardHandle](i)

	authService := do.MustInvoke[*service.AuthService](i)
	postService := do.MustInvoke[*service.PostService](i)
	userService := do.MustInvoke[*service.UserService](i)
	challengeService := do.MustInvoke[*service.ChallengeService](i)
	notificationService := do.MustInvoke[*service.NotificationService](i)

	handler := api.NewServer(api.Options{
		Store:               storeHandle.Store,
		AuthService:         authService,
		PostService:         postService,
		UserService:         userService,
		ChallengeService:    challengeService,
		NotificationService: notificationService,
		LeaderboardService:  leaderboardHandle.Service,
		SearchIndex:         indexHandle.Index,
		SSEManager:          sseHandle.Manager,
		Logger:              log.Logger,
		Production:          cfg.App.IsProduction(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
