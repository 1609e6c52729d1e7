package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/campusconnect/campusconnect-server/internal/config"
	"github.com/campusconnect/campusconnect-server/internal/events"
	"github.com/campusconnect/campusconnect-server/internal/logger"
	"github.com/campusconnect/campusconnect-server/internal/sse"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	dbPath := cfg.Data.DatabasePath()
	db, err := store.New(dbPath, log.Logger, sseHandle.Manager)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// EventBusHandle wraps the content-change bus with shutdown capability.
type EventBusHandle struct {
	*events.Bus
}

// Shutdown implements do.Shutdownable.
func (h *EventBusHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideEventBus provides the in-process content-change bus.
func ProvideEventBus(i do.Injector) (*EventBusHandle, error) {
	return &EventBusHandle{Bus: events.NewBus()}, nil
}
