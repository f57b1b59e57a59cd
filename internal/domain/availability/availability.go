package availability

import (
	"context"

	"farmstay/internal/domain/farms"
	"farmstay/internal/domain/shared/dayrange"
)

// DayState is the explicit tri-state of a (farm, day) pair. A day with no
// stored record is UNSET, which is not the same thing as CLOSED: whether an
// unset day is bookable is a policy decision taken at the query boundary
// (see Resolve and Bookable), never inferred from a missing row elsewhere.
type DayState string

const (
	StateOpen   DayState = "OPEN"
	StateClosed DayState = "CLOSED"
	StateUnset  DayState = "UNSET"
)

// DayRecord is the persisted open/closed mark for one calendar day of one
// farm. At most one record exists per (farm, day); the store enforces this
// as a uniqueness constraint, not a convention.
type DayRecord struct {
	FarmID farms.FarmID
	Day    dayrange.Day
	Open   bool
}

func (r DayRecord) State() DayState {
	if r.Open {
		return StateOpen
	}
	return StateClosed
}

// WriteResult reports how a batch write landed.
type WriteResult struct {
	Created int
	Updated int
}

// Repository is the system of record for day availability. Records are
// upserted, never deleted: "clearing" a day is expressed as setting it open
// again.
type Repository interface {
	// SetDays upserts every day to the given open flag as one atomic
	// batch: either all days commit or none do. The input is already
	// deduplicated by the caller.
	SetDays(ctx context.Context, farmID farms.FarmID, days []dayrange.Day, open bool) (WriteResult, error)

	// States returns the stored state for each requested day. Days
	// without a record are absent from the map.
	States(ctx context.Context, farmID farms.FarmID, days []dayrange.Day) (map[dayrange.Day]DayState, error)

	// Records lists the explicit records of a farm within [from, to]
	// inclusive, ascending by day. A zero bound is unbounded on that
	// side. Unset days are simply not present.
	Records(ctx context.Context, farmID farms.FarmID, from, to dayrange.Day) ([]DayRecord, error)
}

// Resolve reads one day out of a States result. Missing entries surface as
// StateUnset so callers handle the third state deliberately.
func Resolve(states map[dayrange.Day]DayState, d dayrange.Day) DayState {
	if s, ok := states[d]; ok {
		return s
	}
	return StateUnset
}

// Bookable applies the booking policy over a stay's nights: an explicitly
// closed day vetoes the whole stay, while an unset day defaults to open.
func Bookable(states map[dayrange.Day]DayState, nights []dayrange.Day) bool {
	for _, d := range nights {
		if Resolve(states, d) == StateClosed {
			return false
		}
	}
	return true
}
