package farms

import (
	"context"
	"time"

	"farmstay/internal/app/access"
	"farmstay/internal/app/commands"
	"farmstay/internal/app/dto"
	"farmstay/internal/app/outbox"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
)

const updateFarmKey = "farms.update"

type UpdateFarmCommand struct {
	FarmID           string
	Caller           identity.Principal
	Name             string
	Location         string
	Description      string
	GuestsLimit      int
	Bedrooms         int
	NightlyRateCents int64
	ContactEmail     string
}

func (c UpdateFarmCommand) Key() string { return updateFarmKey }

type UpdateFarmHandler struct {
	UoWFactory uow.Factory
	Guard      access.Guard
	Outbox     outbox.Outbox
	Now        func() time.Time
}

func (h *UpdateFarmHandler) Handle(ctx context.Context, cmd UpdateFarmCommand) (*dto.Farm, error) {
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

	farm, err := unit.Farms().ByID(ctx, domainfarms.FarmID(cmd.FarmID))
	if err != nil {
		return nil, err
	}
	if err := h.Guard.Authorize(cmd.Caller, farm, access.ActionManageFarm); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	if err := farm.UpdateDetails(domainfarms.UpdateParams{
		Name:             cmd.Name,
		Location:         cmd.Location,
		Description:      cmd.Description,
		GuestsLimit:      cmd.GuestsLimit,
		Bedrooms:         cmd.Bedrooms,
		NightlyRateCents: cmd.NightlyRateCents,
		ContactEmail:     cmd.ContactEmail,
		Now:              now,
	}); err != nil {
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

var _ commands.Handler[UpdateFarmCommand, *dto.Farm] = (*UpdateFarmHandler)(nil)
