package availability

import (
	"context"

	"farmstay/internal/app/dto"
	"farmstay/internal/app/handlers/support"
	"farmstay/internal/app/queries"
	"farmstay/internal/app/uow"
	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/shared/dayrange"
)

const checkStayKey = "availability.check_stay"

// CheckStayQuery asks whether a farm is bookable for [CheckIn, CheckOut).
// The checkout day itself needs no availability: the guest departs then.
type CheckStayQuery struct {
	FarmID   string
	CheckIn  dayrange.Day
	CheckOut dayrange.Day
}

func (q CheckStayQuery) Key() string { return checkStayKey }

type CheckStayHandler struct {
	UoWFactory uow.Factory
}

// Handle returns false as soon as any night of the stay is explicitly
// closed. Days without a record default to open; that policy lives here at
// the query boundary, not in the store.
func (h *CheckStayHandler) Handle(ctx context.Context, q CheckStayQuery) (dto.StayCheck, error) {
	stay, err := dayrange.NewStay(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.StayCheck{}, err
	}

	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.StayCheck{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	farm, err := unit.Farms().ByID(ctx, domainfarms.FarmID(q.FarmID))
	if err != nil {
		return dto.StayCheck{}, err
	}

	nights := stay.Nights()
	states, err := unit.Availability().States(ctx, farm.ID, nights)
	if err != nil {
		return dto.StayCheck{}, err
	}

	return dto.StayCheck{
		FarmID:    q.FarmID,
		CheckIn:   q.CheckIn,
		CheckOut:  q.CheckOut,
		Available: domainavailability.Bookable(states, nights),
	}, nil
}

var _ queries.Handler[CheckStayQuery, dto.StayCheck] = (*CheckStayHandler)(nil)
