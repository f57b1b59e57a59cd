package memory

import (
	"context"
	"errors"

	"farmstay/internal/app/uow"
	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	domainimages "farmstay/internal/domain/images"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	FarmsRepo        domainfarms.Repository
	AvailabilityRepo domainavailability.Repository
	ImagesRepo       domainimages.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. Repository-level locks
// provide the atomicity of individual batch writes; the abstraction exists
// to match the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.FarmsRepo == nil || f.AvailabilityRepo == nil || f.ImagesRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		farms:        f.FarmsRepo,
		availability: f.AvailabilityRepo,
		images:       f.ImagesRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	farms        domainfarms.Repository
	availability domainavailability.Repository
	images       domainimages.Repository
}

func (u *Unit) Farms() domainfarms.Repository               { return u.farms }
func (u *Unit) Availability() domainavailability.Repository { return u.availability }
func (u *Unit) Images() domainimages.Repository             { return u.images }

func (u *Unit) Commit(ctx context.Context) error   { return nil }
func (u *Unit) Rollback(ctx context.Context) error { return nil }
