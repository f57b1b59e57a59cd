package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmstay/internal/app/uow"
	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	domainimages "farmstay/internal/domain/images"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	FarmsRepo        domainfarms.Repository
	AvailabilityRepo domainavailability.Repository
	ImagesRepo       domainimages.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:           f.DB,
		session:      session,
		farms:        f.FarmsRepo,
		availability: f.AvailabilityRepo,
		images:       f.ImagesRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	farms        domainfarms.Repository
	availability domainavailability.Repository
	images       domainimages.Repository
}

func (u *Unit) Farms() domainfarms.Repository               { return u.farms }
func (u *Unit) Availability() domainavailability.Repository { return u.availability }
func (u *Unit) Images() domainimages.Repository             { return u.images }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the Mongo session visible to downstream repos, so a
// clear+set pair or a bulk upsert runs inside the same transaction.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
