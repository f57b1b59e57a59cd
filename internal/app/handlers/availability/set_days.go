package availability

import (
	"context"
	"errors"
	"time"

	"farmstay/internal/app/access"
	"farmstay/internal/app/commands"
	"farmstay/internal/app/outbox"
	"farmstay/internal/app/uow"
	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	"farmstay/internal/domain/shared/dayrange"
	"farmstay/internal/domain/shared/events"
)

const setDaysKey = "availability.set_days"

var ErrUnitOfWorkRequired = errors.New("availability: unit of work required")

// SetDaysCommand marks a single day or an inclusive day range of a farm as
// open or closed. When Days is provided it takes precedence over the
// Start/End pair; duplicates collapse to one effective write.
type SetDaysCommand struct {
	FarmID string
	Caller identity.Principal
	Start  dayrange.Day
	End    dayrange.Day
	Days   []dayrange.Day
	Open   bool
}

func (c SetDaysCommand) Key() string { return setDaysKey }

type SetDaysResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type SetDaysHandler struct {
	UoWFactory uow.Factory
	Guard      access.Guard
	Outbox     outbox.Outbox
	Now        func() time.Time
}

// Handle authorizes the caller, expands the selection and upserts the whole
// batch inside one transaction: a storage failure on any day aborts every
// day, so a range edit is never half-applied.
func (h *SetDaysHandler) Handle(ctx context.Context, cmd SetDaysCommand) (*SetDaysResult, error) {
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
	if err := h.Guard.Authorize(cmd.Caller, farm, access.ActionManageAvailability); err != nil {
		return nil, err
	}

	days := cmd.Days
	if len(days) == 0 {
		days = dayrange.Expand(cmd.Start, cmd.End)
	}
	days = dayrange.Dedup(days)
	if len(days) == 0 {
		// An inverted or empty selection is nothing to do, not an error.
		return &SetDaysResult{}, nil
	}

	res, err := unit.Availability().SetDays(ctx, farm.ID, days, cmd.Open)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	ev := domainavailability.DaysMarkedEvent{
		FarmID: farm.ID,
		From:   days[0],
		To:     days[len(days)-1],
		Open:   cmd.Open,
		Days:   len(days),
		At:     now,
	}
	if h.Outbox != nil {
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

	return &SetDaysResult{Created: res.Created, Updated: res.Updated}, nil
}

var _ commands.Handler[SetDaysCommand, *SetDaysResult] = (*SetDaysHandler)(nil)
