package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
)

func testFarm(t *testing.T, owner identity.UserID) *farms.Farm {
	t.Helper()
	farm, err := farms.NewFarm(farms.CreateParams{
		ID:               "farm-1",
		Owner:            owner,
		Name:             "Hilltop Chalet",
		GuestsLimit:      4,
		NightlyRateCents: 12000,
		Now:              time.Now(),
	})
	require.NoError(t, err)
	return farm
}

func TestGuardAdminActsOnAnyFarm(t *testing.T) {
	guard := Guard{}
	farm := testFarm(t, "owner-1")
	admin := identity.Principal{ID: "admin-1", Role: identity.RoleAdmin}

	for _, action := range []Action{ActionManageFarm, ActionManageAvailability, ActionManageImages} {
		assert.NoError(t, guard.Authorize(admin, farm, action))
	}
}

func TestGuardOwnerActsOnOwnFarmOnly(t *testing.T) {
	guard := Guard{}
	farm := testFarm(t, "owner-1")

	owner := identity.Principal{ID: "owner-1", Role: identity.RoleOwner}
	assert.NoError(t, guard.Authorize(owner, farm, ActionManageAvailability))

	stranger := identity.Principal{ID: "owner-2", Role: identity.RoleOwner}
	assert.ErrorIs(t, guard.Authorize(stranger, farm, ActionManageAvailability), ErrUnauthorized)
}

func TestGuardRejectsAnonymousCaller(t *testing.T) {
	guard := Guard{}
	farm := testFarm(t, "owner-1")

	assert.ErrorIs(t, guard.Authorize(identity.Principal{}, farm, ActionManageImages), ErrUnauthorized)
}

func TestGuardMissingFarm(t *testing.T) {
	guard := Guard{}
	admin := identity.Principal{ID: "admin-1", Role: identity.RoleAdmin}

	assert.ErrorIs(t, guard.Authorize(admin, nil, ActionManageFarm), farms.ErrFarmNotFound)
}
