package sqlstore

import (
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	"github.com/SscSPs/duebook/pkg/database"
)

// NewRepositoryProvider builds every repository on top of one gateway.
func NewRepositoryProvider(db database.Gateway) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newAccountRepository(db),
		UserRepo:    newUserRepository(db),
	}
}
