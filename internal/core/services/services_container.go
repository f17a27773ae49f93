package services

import (
	portsrepo "github.com/contaflux/checking_account_api/internal/core/ports/repositories"
	portssvc "github.com/contaflux/checking_account_api/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo),
		Statement: NewStatementService(repos.StatementRepo),
	}
}
