package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/shared/dayrange"
)

func TestCheckStayDefaultsToOpen(t *testing.T) {
	factory, _ := newFixture(t)
	h := &CheckStayHandler{UoWFactory: factory}

	res, err := h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-04"),
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckStayClosedNightVetoes(t *testing.T) {
	factory, box := newFixture(t)
	setter := &SetDaysHandler{UoWFactory: factory, Outbox: box}
	_, err := setter.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Start:  day("2025-06-02"),
		End:    day("2025-06-02"),
		Open:   false,
	})
	require.NoError(t, err)

	h := &CheckStayHandler{UoWFactory: factory}
	res, err := h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-04"),
	})
	require.NoError(t, err)
	assert.False(t, res.Available)

	// A stay ending before the closed night is unaffected.
	res, err = h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-02"),
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckStayIgnoresCheckoutDay(t *testing.T) {
	factory, box := newFixture(t)
	setter := &SetDaysHandler{UoWFactory: factory, Outbox: box}
	_, err := setter.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Start:  day("2025-06-04"),
		End:    day("2025-06-04"),
		Open:   false,
	})
	require.NoError(t, err)

	h := &CheckStayHandler{UoWFactory: factory}
	res, err := h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-04"),
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckStayReopenedDayIsBookable(t *testing.T) {
	factory, box := newFixture(t)
	setter := &SetDaysHandler{UoWFactory: factory, Outbox: box}
	for _, open := range []bool{false, true} {
		_, err := setter.Handle(context.Background(), SetDaysCommand{
			FarmID: "farm-1",
			Caller: ownerCaller(),
			Start:  day("2025-06-02"),
			End:    day("2025-06-02"),
			Open:   open,
		})
		require.NoError(t, err)
	}

	h := &CheckStayHandler{UoWFactory: factory}
	res, err := h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-04"),
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckStayRejectsInvalidInterval(t *testing.T) {
	factory, _ := newFixture(t)
	h := &CheckStayHandler{UoWFactory: factory}

	_, err := h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-04"),
		CheckOut: day("2025-06-01"),
	})
	assert.ErrorIs(t, err, dayrange.ErrInvalidStay)

	_, err = h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "farm-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-01"),
	})
	assert.ErrorIs(t, err, dayrange.ErrInvalidStay)
}

func TestCheckStayUnknownFarm(t *testing.T) {
	factory, _ := newFixture(t)
	h := &CheckStayHandler{UoWFactory: factory}

	_, err := h.Handle(context.Background(), CheckStayQuery{
		FarmID:   "missing",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-02"),
	})
	assert.ErrorIs(t, err, domainfarms.ErrFarmNotFound)
}

func TestGetCalendarListsMarkedDaysOnly(t *testing.T) {
	factory, box := newFixture(t)
	setter := &SetDaysHandler{UoWFactory: factory, Outbox: box}
	_, err := setter.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Start:  day("2025-06-01"),
		End:    day("2025-06-02"),
		Open:   false,
	})
	require.NoError(t, err)

	h := &GetCalendarHandler{UoWFactory: factory}
	cal, err := h.Handle(context.Background(), GetCalendarQuery{FarmID: "farm-1"})
	require.NoError(t, err)
	require.Len(t, cal.Days, 2)
	assert.Equal(t, "2025-06-01", cal.Days[0].Day.String())
	assert.False(t, cal.Days[0].Open)

	bounded, err := h.Handle(context.Background(), GetCalendarQuery{
		FarmID: "farm-1",
		From:   day("2025-06-02"),
	})
	require.NoError(t, err)
	require.Len(t, bounded.Days, 1)
	assert.Equal(t, "2025-06-02", bounded.Days[0].Day.String())
}
