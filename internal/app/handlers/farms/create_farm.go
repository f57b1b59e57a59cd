package farms

import (
	"context"
	"errors"
	"time"

	"farmstay/internal/app/commands"
	"farmstay/internal/app/dto"
	"farmstay/internal/app/outbox"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
)

const createFarmKey = "farms.create"

var ErrUnitOfWorkRequired = errors.New("farms: unit of work required")

// CreateFarmCommand registers a new farm. Owners create farms for
// themselves; an admin may set OwnerID to create on another account's
// behalf.
type CreateFarmCommand struct {
	FarmID           string
	Caller           identity.Principal
	OwnerID          string
	Name             string
	Location         string
	Description      string
	GuestsLimit      int
	Bedrooms         int
	NightlyRateCents int64
	ContactEmail     string
}

func (c CreateFarmCommand) Key() string { return createFarmKey }

type CreateFarmHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Now        func() time.Time
}

func (h *CreateFarmHandler) Handle(ctx context.Context, cmd CreateFarmCommand) (*dto.Farm, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	owner := identity.UserID(cmd.OwnerID)
	if cmd.Caller.Role != identity.RoleAdmin || owner == "" {
		owner = cmd.Caller.ID
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	farm, err := domainfarms.NewFarm(domainfarms.CreateParams{
		ID:               domainfarms.FarmID(cmd.FarmID),
		Owner:            owner,
		Name:             cmd.Name,
		Location:         cmd.Location,
		Description:      cmd.Description,
		GuestsLimit:      cmd.GuestsLimit,
		Bedrooms:         cmd.Bedrooms,
		NightlyRateCents: cmd.NightlyRateCents,
		ContactEmail:     cmd.ContactEmail,
		Now:              now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Farms().Save(ctx, farm); err != nil {
		return nil, err
	}
	if h.Outbox != nil {
		if err := outbox.Drain(ctx, h.Outbox, farm); err != nil {
			return nil, err
		}
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	mapped := dto.MapFarm(farm)
	return &mapped, nil
}

var _ commands.Handler[CreateFarmCommand, *dto.Farm] = (*CreateFarmHandler)(nil)
