package images

import (
	"context"
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

const removeImageKey = "images.remove"

// RemoveImageCommand deletes an image record. Removing the primary image
// leaves the farm with no primary, which is a legal state. The blob itself
// is untouched here: callers delete it once the surrounding transaction has
// committed, so a failed commit never leaves a record pointing at a missing
// object.
type RemoveImageCommand struct {
	FarmID  string
	ImageID string
	Caller  identity.Principal
}

func (c RemoveImageCommand) Key() string { return removeImageKey }

type RemoveImageResult struct {
	ImageID string `json:"image_id"`
	URL     string `json:"url"`
}

type RemoveImageHandler struct {
	UoWFactory uow.Factory
	Guard      access.Guard
	Outbox     outbox.Outbox
	Now        func() time.Time
}

func (h *RemoveImageHandler) Handle(ctx context.Context, cmd RemoveImageCommand) (*RemoveImageResult, error) {
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

	removed, err := unit.Images().Remove(ctx, farm.ID, domainimages.ImageID(cmd.ImageID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	if h.Outbox != nil {
		ev := domainimages.ImageRemovedEvent{FarmID: farm.ID, ImageID: removed.ID, At: now}
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

	return &RemoveImageResult{ImageID: string(removed.ID), URL: removed.URL}, nil
}

var _ commands.Handler[RemoveImageCommand, *RemoveImageResult] = (*RemoveImageHandler)(nil)
