package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	domainimages "farmstay/internal/domain/images"
	"farmstay/internal/domain/shared/dayrange"
)

func day(s string) dayrange.Day {
	d, err := dayrange.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func saveFarm(t *testing.T, repo *FarmRepository, id string, owner string, createdAt time.Time) {
	t.Helper()
	farm, err := domainfarms.NewFarm(domainfarms.CreateParams{
		ID:               domainfarms.FarmID(id),
		Owner:            identity.UserID(owner),
		Name:             "Farm " + id,
		GuestsLimit:      2,
		NightlyRateCents: 5000,
		Now:              createdAt,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), farm))
}

func TestFarmRepositoryListFiltersByOwner(t *testing.T) {
	repo := NewFarmRepository()
	now := time.Now()
	saveFarm(t, repo, "farm-1", "owner-1", now)
	saveFarm(t, repo, "farm-2", "owner-2", now.Add(time.Second))
	saveFarm(t, repo, "farm-3", "owner-1", now.Add(2*time.Second))

	all, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domainfarms.FarmID("farm-1"), all[0].ID)

	mine, err := repo.List(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, farm := range mine {
		assert.Equal(t, identity.UserID("owner-1"), farm.Owner)
	}
}

func TestFarmRepositoryByIDMissing(t *testing.T) {
	repo := NewFarmRepository()
	_, err := repo.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domainfarms.ErrFarmNotFound)
}

func TestAvailabilityRepositorySetDaysCounts(t *testing.T) {
	repo := NewAvailabilityRepository()
	ctx := context.Background()
	days := []dayrange.Day{day("2025-06-01"), day("2025-06-02")}

	res, err := repo.SetDays(ctx, "farm-1", days, false)
	require.NoError(t, err)
	assert.Equal(t, domainavailability.WriteResult{Created: 2}, res)

	res, err = repo.SetDays(ctx, "farm-1", append(days, day("2025-06-03")), true)
	require.NoError(t, err)
	assert.Equal(t, domainavailability.WriteResult{Created: 1, Updated: 2}, res)
}

func TestAvailabilityRepositoryStatesOmitUnsetDays(t *testing.T) {
	repo := NewAvailabilityRepository()
	ctx := context.Background()
	_, err := repo.SetDays(ctx, "farm-1", []dayrange.Day{day("2025-06-01")}, false)
	require.NoError(t, err)
	_, err = repo.SetDays(ctx, "farm-1", []dayrange.Day{day("2025-06-02")}, true)
	require.NoError(t, err)

	states, err := repo.States(ctx, "farm-1", []dayrange.Day{
		day("2025-06-01"), day("2025-06-02"), day("2025-06-03"),
	})
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, domainavailability.StateClosed, states[day("2025-06-01")])
	assert.Equal(t, domainavailability.StateOpen, states[day("2025-06-02")])
	_, ok := states[day("2025-06-03")]
	assert.False(t, ok)
}

func TestAvailabilityRepositoryRecordsBounds(t *testing.T) {
	repo := NewAvailabilityRepository()
	ctx := context.Background()
	_, err := repo.SetDays(ctx, "farm-1", []dayrange.Day{
		day("2025-06-01"), day("2025-06-02"), day("2025-06-03"),
	}, false)
	require.NoError(t, err)

	all, err := repo.Records(ctx, "farm-1", dayrange.Day{}, dayrange.Day{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Day.Before(all[1].Day))

	bounded, err := repo.Records(ctx, "farm-1", day("2025-06-02"), day("2025-06-02"))
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, "2025-06-02", bounded[0].Day.String())
}

func TestImageRepositorySetPrimaryClearsOthers(t *testing.T) {
	repo := NewImageRepository()
	ctx := context.Background()
	for _, spec := range []struct {
		id      string
		primary bool
	}{{"img-a", true}, {"img-b", false}, {"img-c", false}} {
		require.NoError(t, repo.Add(ctx, domainimages.Image{
			ID:      domainimages.ImageID(spec.id),
			FarmID:  "farm-1",
			URL:     "http://blobs.local/" + spec.id,
			Primary: spec.primary,
		}))
	}

	require.NoError(t, repo.SetPrimary(ctx, "farm-1", "img-c"))

	imgs, err := repo.ByFarm(ctx, "farm-1")
	require.NoError(t, err)
	var primaries []string
	for _, img := range imgs {
		if img.Primary {
			primaries = append(primaries, string(img.ID))
		}
	}
	assert.Equal(t, []string{"img-c"}, primaries)
}

func TestImageRepositorySetPrimaryMissing(t *testing.T) {
	repo := NewImageRepository()
	err := repo.SetPrimary(context.Background(), "farm-1", "missing")
	assert.ErrorIs(t, err, domainimages.ErrImageNotFound)
}

func TestImageRepositoryRemoveReturnsRecord(t *testing.T) {
	repo := NewImageRepository()
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, domainimages.Image{
		ID:     "img-a",
		FarmID: "farm-1",
		URL:    "http://blobs.local/img-a",
	}))

	removed, err := repo.Remove(ctx, "farm-1", "img-a")
	require.NoError(t, err)
	assert.Equal(t, "http://blobs.local/img-a", removed.URL)

	_, err = repo.Remove(ctx, "farm-1", "img-a")
	assert.ErrorIs(t, err, domainimages.ErrImageNotFound)
}
