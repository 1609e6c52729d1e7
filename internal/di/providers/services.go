package providers

import (
	"github.com/samber/do/v2"

	"github.com/campusconnect/campusconnect-server/internal/auth"
	"github.com/campusconnect/campusconnect-server/internal/logger"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvidePostService provides the post service.
func ProvidePostService(i do.Injector) (*service.PostService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPostService(storeHandle.Store, busHandle.Bus, log.Logger), nil
}

// ProvideUserService provides the user profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	busHandle := do.MustInvoke[*EventBusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, busHandle.Bus, log.Logger), nil
}

// ProvideChallengeService provides the challenge service.
func ProvideChallengeService(i do.Injector) (*service.ChallengeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChallengeService(storeHandle.Store, log.Logger), nil
}

// ProvideNotificationService provides the notification service.
func ProvideNotificationService(i do.Injector) (*service.NotificationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNotificationService(storeHandle.Store, log.Logger), nil
}
