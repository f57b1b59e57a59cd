package uow

import (
	"context"

	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	domainimages "farmstay/internal/domain/images"
)

// UnitOfWork coordinates repositories inside a transaction boundary. All
// writers go through it; no caller touches a repository outside a unit.
type UnitOfWork interface {
	Farms() domainfarms.Repository
	Availability() domainavailability.Repository
	Images() domainimages.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
