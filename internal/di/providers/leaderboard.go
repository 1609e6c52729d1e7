package providers

import (
	"github.com/samber/do/v2"

	"github.com/campusconnect/campusconnect-server/internal/config"
	"github.com/campusconnect/campusconnect-server/internal/leaderboard"
	"github.com/campusconnect/campusconnect-server/internal/logger"
)

// LeaderboardHandle wraps the leaderboard service with shutdown capability.
type LeaderboardHandle struct {
	*leaderboard.Service
}

// Shutdown implements do.Shutdownable.
func (h *LeaderboardHandle) Shutdown() error {
	return h.Service.Shutdown()
}

// ProvideLeaderboardService provides the leaderboard service, started
// against the content-change bus with the SSE manager as broadcaster.
func ProvideLeaderboardService(i do.Injector) (*LeaderboardHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)

	svc := leaderboard.NewService(
		storeHandle.Store,
		sseHandle.Manager,
		cfg.Leaderboard.Interval,
		cfg.Leaderboard.UpdateTimeout,
		log.Logger,
	)
	svc.Start(busHandle.Bus)

	log.Info("Leaderboard service started",
		"interval", cfg.Leaderboard.Interval,
		"update_timeout", cfg.Leaderboard.UpdateTimeout,
	)

	return &LeaderboardHandle{Service: svc}, nil
}
