package availability

import (
	"context"

	"farmstay/internal/app/dto"
	"farmstay/internal/app/handlers/support"
	"farmstay/internal/app/queries"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/shared/dayrange"
)

const getCalendarKey = "availability.calendar"

// GetCalendarQuery lists the explicitly marked days of a farm so an
// operator UI can paint open, closed and unset days distinctly. Zero
// From/To bounds mean unbounded.
type GetCalendarQuery struct {
	FarmID string
	From   dayrange.Day
	To     dayrange.Day
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.Factory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Calendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	farm, err := unit.Farms().ByID(ctx, domainfarms.FarmID(q.FarmID))
	if err != nil {
		return dto.Calendar{}, err
	}

	records, err := unit.Availability().Records(ctx, farm.ID, q.From, q.To)
	if err != nil {
		return dto.Calendar{}, err
	}
	return dto.MapCalendar(q.FarmID, records), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
