package memory

import (
	"context"
	"sort"
	"sync"

	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	domainimages "farmstay/internal/domain/images"
	"farmstay/internal/domain/shared/dayrange"
)

// FarmRepository is an in-memory farms store.
type FarmRepository struct {
	mu    sync.RWMutex
	items map[domainfarms.FarmID]*domainfarms.Farm
}

func NewFarmRepository() *FarmRepository {
	return &FarmRepository{items: make(map[domainfarms.FarmID]*domainfarms.Farm)}
}

func (r *FarmRepository) ByID(ctx context.Context, id domainfarms.FarmID) (*domainfarms.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	farm, ok := r.items[id]
	if !ok {
		return nil, domainfarms.ErrFarmNotFound
	}
	return farm, nil
}

func (r *FarmRepository) Save(ctx context.Context, farm *domainfarms.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[farm.ID] = farm
	return nil
}

func (r *FarmRepository) List(ctx context.Context, owner identity.UserID) ([]*domainfarms.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainfarms.Farm, 0, len(r.items))
	for _, farm := range r.items {
		if owner != "" && farm.Owner != owner {
			continue
		}
		matches = append(matches, farm)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

// AvailabilityRepository keeps one open/closed flag per (farm, day). The
// map key doubles as the uniqueness constraint; the write lock makes each
// SetDays batch all-or-nothing.
type AvailabilityRepository struct {
	mu    sync.RWMutex
	items map[domainfarms.FarmID]map[dayrange.Day]bool
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{items: make(map[domainfarms.FarmID]map[dayrange.Day]bool)}
}

func (r *AvailabilityRepository) SetDays(ctx context.Context, farmID domainfarms.FarmID, days []dayrange.Day, open bool) (domainavailability.WriteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return domainavailability.WriteResult{}, err
	}
	calendar, ok := r.items[farmID]
	if !ok {
		calendar = make(map[dayrange.Day]bool, len(days))
		r.items[farmID] = calendar
	}
	var res domainavailability.WriteResult
	for _, d := range days {
		if _, exists := calendar[d]; exists {
			res.Updated++
		} else {
			res.Created++
		}
		calendar[d] = open
	}
	return res, nil
}

func (r *AvailabilityRepository) States(ctx context.Context, farmID domainfarms.FarmID, days []dayrange.Day) (map[dayrange.Day]domainavailability.DayState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	states := make(map[dayrange.Day]domainavailability.DayState, len(days))
	calendar := r.items[farmID]
	for _, d := range days {
		open, exists := calendar[d]
		if !exists {
			continue
		}
		if open {
			states[d] = domainavailability.StateOpen
		} else {
			states[d] = domainavailability.StateClosed
		}
	}
	return states, nil
}

func (r *AvailabilityRepository) Records(ctx context.Context, farmID domainfarms.FarmID, from, to dayrange.Day) ([]domainavailability.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	calendar := r.items[farmID]
	records := make([]domainavailability.DayRecord, 0, len(calendar))
	for d, open := range calendar {
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		records = append(records, domainavailability.DayRecord{FarmID: farmID, Day: d, Open: open})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Day.Before(records[j].Day)
	})
	return records, nil
}

// ImageRepository stores image records. SetPrimary runs clear-then-set
// under the single write lock, so no reader ever observes two primaries
// and concurrent designations serialize.
type ImageRepository struct {
	mu    sync.RWMutex
	items map[domainfarms.FarmID][]domainimages.Image
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{items: make(map[domainfarms.FarmID][]domainimages.Image)}
}

func (r *ImageRepository) ByFarm(ctx context.Context, farmID domainfarms.FarmID) ([]domainimages.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainimages.Image(nil), r.items[farmID]...), nil
}

func (r *ImageRepository) Add(ctx context.Context, img domainimages.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[img.FarmID] = append(r.items[img.FarmID], img)
	return nil
}

func (r *ImageRepository) Remove(ctx context.Context, farmID domainfarms.FarmID, id domainimages.ImageID) (domainimages.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	imgs := r.items[farmID]
	for i, img := range imgs {
		if img.ID == id {
			r.items[farmID] = append(imgs[:i], imgs[i+1:]...)
			return img, nil
		}
	}
	return domainimages.Image{}, domainimages.ErrImageNotFound
}

func (r *ImageRepository) SetPrimary(ctx context.Context, farmID domainfarms.FarmID, id domainimages.ImageID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	imgs := r.items[farmID]
	target := -1
	for i, img := range imgs {
		if img.ID == id {
			target = i
			break
		}
	}
	if target == -1 {
		return domainimages.ErrImageNotFound
	}
	for i := range imgs {
		imgs[i].Primary = i == target
	}
	return nil
}
