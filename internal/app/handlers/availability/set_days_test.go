package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstay/internal/app/access"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	"farmstay/internal/domain/shared/dayrange"
	"farmstay/internal/infra/storage/memory"
)

func newFixture(t *testing.T) (memory.Factory, *memory.Outbox) {
	t.Helper()
	farmsRepo := memory.NewFarmRepository()
	factory := memory.Factory{
		FarmsRepo:        farmsRepo,
		AvailabilityRepo: memory.NewAvailabilityRepository(),
		ImagesRepo:       memory.NewImageRepository(),
	}
	farm, err := domainfarms.NewFarm(domainfarms.CreateParams{
		ID:               "farm-1",
		Owner:            "owner-1",
		Name:             "Hilltop Chalet",
		GuestsLimit:      4,
		NightlyRateCents: 12000,
		Now:              time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, farmsRepo.Save(context.Background(), farm))
	return factory, memory.NewOutbox()
}

func ownerCaller() identity.Principal {
	return identity.Principal{ID: "owner-1", Role: identity.RoleOwner}
}

func day(s string) dayrange.Day {
	d, err := dayrange.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSetDaysClosesRange(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}

	res, err := h.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Start:  day("2025-06-01"),
		End:    day("2025-06-03"),
		Open:   false,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.Updated)

	pending := box.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "availability.days_marked", pending[0].Name)
}

func TestSetDaysReapplyIsIdempotent(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}
	cmd := SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Start:  day("2025-06-01"),
		End:    day("2025-06-03"),
		Open:   false,
	}

	_, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)

	res, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 3, res.Updated)
}

func TestSetDaysExplicitListCollapsesDuplicates(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}

	res, err := h.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Days:   []dayrange.Day{day("2025-06-01"), day("2025-06-01"), day("2025-06-02")},
		Open:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
}

func TestSetDaysInvertedRangeIsNoop(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}

	res, err := h.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: ownerCaller(),
		Start:  day("2025-06-03"),
		End:    day("2025-06-01"),
		Open:   false,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Empty(t, box.Pending())
}

func TestSetDaysRejectsForeignOwner(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}

	_, err := h.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: identity.Principal{ID: "owner-2", Role: identity.RoleOwner},
		Start:  day("2025-06-01"),
		End:    day("2025-06-01"),
		Open:   false,
	})
	assert.ErrorIs(t, err, access.ErrUnauthorized)
	assert.Empty(t, box.Pending())
}

func TestSetDaysAdminActsOnAnyFarm(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}

	_, err := h.Handle(context.Background(), SetDaysCommand{
		FarmID: "farm-1",
		Caller: identity.Principal{ID: "admin-1", Role: identity.RoleAdmin},
		Start:  day("2025-06-01"),
		End:    day("2025-06-01"),
		Open:   false,
	})
	assert.NoError(t, err)
}

func TestSetDaysUnknownFarm(t *testing.T) {
	factory, box := newFixture(t)
	h := &SetDaysHandler{UoWFactory: factory, Outbox: box}

	_, err := h.Handle(context.Background(), SetDaysCommand{
		FarmID: "missing",
		Caller: ownerCaller(),
		Start:  day("2025-06-01"),
		End:    day("2025-06-01"),
		Open:   false,
	})
	assert.ErrorIs(t, err, domainfarms.ErrFarmNotFound)
}
