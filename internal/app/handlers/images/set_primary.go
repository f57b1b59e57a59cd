package images

import (
	"context"
	"errors"
	"time"

	"farmstay/internal/app/access"
	"farmstay/internal/app/commands"
	"farmstay/internal/app/outbox"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	domainimages "farmstay/internal/domain/images"
	"farmstay/internal/domain/shared/events"
)

const setPrimaryKey = "images.set_primary"

var ErrUnitOfWorkRequired = errors.New("images: unit of work required")

// SetPrimaryCommand designates the representative image of a farm. After it
// succeeds exactly one image of the farm is primary; whichever image held
// the flag before loses it in the same operation.
type SetPrimaryCommand struct {
	FarmID  string
	ImageID string
	Caller  identity.Principal
}

func (c SetPrimaryCommand) Key() string { return setPrimaryKey }

type SetPrimaryResult struct {
	ImageID string `json:"image_id"`
}

type SetPrimaryHandler struct {
	UoWFactory uow.Factory
	Guard      access.Guard
	Outbox     outbox.Outbox
	Now        func() time.Time
}

func (h *SetPrimaryHandler) Handle(ctx context.Context, cmd SetPrimaryCommand) (*SetPrimaryResult, error) {
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
	if err := h.Guard.Authorize(cmd.Caller, farm, access.ActionManageImages); err != nil {
		return nil, err
	}

	if err := unit.Images().SetPrimary(ctx, farm.ID, domainimages.ImageID(cmd.ImageID)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	if h.Outbox != nil {
		ev := domainimages.PrimaryChangedEvent{FarmID: farm.ID, ImageID: domainimages.ImageID(cmd.ImageID), At: now}
		if err := outbox.Record(ctx, h.Outbox, []events.DomainEvent{ev}); err != nil {
			return nil, err
		}
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}
	return &SetPrimaryResult{ImageID: cmd.ImageID}, nil
}

var _ commands.Handler[SetPrimaryCommand, *SetPrimaryResult] = (*SetPrimaryHandler)(nil)
