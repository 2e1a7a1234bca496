package services

import (
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:            NewAccountService(repos.AccountRepo),
		Dashboard:          NewDashboardService(repos.AccountRepo),
		User:               NewUserService(repos.UserRepo),
		TokenService:       NewTokenService(cfg),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}
