package farms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstay/internal/app/access"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	"farmstay/internal/infra/storage/memory"
)

func newFactory() memory.Factory {
	return memory.Factory{
		FarmsRepo:        memory.NewFarmRepository(),
		AvailabilityRepo: memory.NewAvailabilityRepository(),
		ImagesRepo:       memory.NewImageRepository(),
	}
}

func TestCreateFarmOwnerOwnsTheirFarm(t *testing.T) {
	factory := newFactory()
	box := memory.NewOutbox()
	h := &CreateFarmHandler{UoWFactory: factory, Outbox: box}

	farm, err := h.Handle(context.Background(), CreateFarmCommand{
		FarmID:           "farm-1",
		Caller:           identity.Principal{ID: "owner-1", Role: identity.RoleOwner},
		OwnerID:          "someone-else",
		Name:             "Hilltop Chalet",
		GuestsLimit:      4,
		NightlyRateCents: 12000,
	})
	require.NoError(t, err)
	// Owners cannot create farms on another account's behalf.
	assert.Equal(t, "owner-1", farm.OwnerID)

	pending := box.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "farms.created", pending[0].Name)
}

func TestCreateFarmAdminMayAssignOwner(t *testing.T) {
	factory := newFactory()
	h := &CreateFarmHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}

	farm, err := h.Handle(context.Background(), CreateFarmCommand{
		FarmID:           "farm-1",
		Caller:           identity.Principal{ID: "admin-1", Role: identity.RoleAdmin},
		OwnerID:          "owner-9",
		Name:             "Hilltop Chalet",
		GuestsLimit:      4,
		NightlyRateCents: 12000,
	})
	require.NoError(t, err)
	assert.Equal(t, "owner-9", farm.OwnerID)
}

func TestCreateFarmValidation(t *testing.T) {
	factory := newFactory()
	h := &CreateFarmHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	caller := identity.Principal{ID: "owner-1", Role: identity.RoleOwner}

	_, err := h.Handle(context.Background(), CreateFarmCommand{
		FarmID:           "farm-1",
		Caller:           caller,
		GuestsLimit:      4,
		NightlyRateCents: 12000,
	})
	assert.ErrorIs(t, err, domainfarms.ErrNameRequired)

	_, err = h.Handle(context.Background(), CreateFarmCommand{
		FarmID:           "farm-1",
		Caller:           caller,
		Name:             "Hilltop Chalet",
		NightlyRateCents: 12000,
	})
	assert.ErrorIs(t, err, domainfarms.ErrGuestsLimit)
}

func TestUpdateFarmGuardsOwnership(t *testing.T) {
	factory := newFactory()
	create := &CreateFarmHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	_, err := create.Handle(context.Background(), CreateFarmCommand{
		FarmID:           "farm-1",
		Caller:           identity.Principal{ID: "owner-1", Role: identity.RoleOwner},
		Name:             "Hilltop Chalet",
		GuestsLimit:      4,
		NightlyRateCents: 12000,
	})
	require.NoError(t, err)

	update := &UpdateFarmHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	_, err = update.Handle(context.Background(), UpdateFarmCommand{
		FarmID:           "farm-1",
		Caller:           identity.Principal{ID: "owner-2", Role: identity.RoleOwner},
		Name:             "Stolen Chalet",
		GuestsLimit:      4,
		NightlyRateCents: 12000,
	})
	assert.ErrorIs(t, err, access.ErrUnauthorized)

	updated, err := update.Handle(context.Background(), UpdateFarmCommand{
		FarmID:           "farm-1",
		Caller:           identity.Principal{ID: "owner-1", Role: identity.RoleOwner},
		Name:             "Renamed Chalet",
		GuestsLimit:      6,
		NightlyRateCents: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Chalet", updated.Name)
	assert.Equal(t, 6, updated.GuestsLimit)
}

func TestListFarmsVisibility(t *testing.T) {
	factory := newFactory()
	create := &CreateFarmHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	for _, spec := range []struct{ id, owner string }{
		{"farm-1", "owner-1"},
		{"farm-2", "owner-2"},
	} {
		_, err := create.Handle(context.Background(), CreateFarmCommand{
			FarmID:           spec.id,
			Caller:           identity.Principal{ID: identity.UserID(spec.owner), Role: identity.RoleOwner},
			Name:             "Farm " + spec.id,
			GuestsLimit:      2,
			NightlyRateCents: 8000,
		})
		require.NoError(t, err)
	}

	list := &ListFarmsHandler{UoWFactory: factory}

	public, err := list.Handle(context.Background(), ListFarmsQuery{})
	require.NoError(t, err)
	assert.Len(t, public, 2)

	owned, err := list.Handle(context.Background(), ListFarmsQuery{
		Caller: identity.Principal{ID: "owner-1", Role: identity.RoleOwner},
	})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "farm-1", owned[0].ID)

	admin, err := list.Handle(context.Background(), ListFarmsQuery{
		Caller: identity.Principal{ID: "admin-1", Role: identity.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}
