package farms

import (
	"context"

	"farmstay/internal/app/dto"
	"farmstay/internal/app/handlers/support"
	"farmstay/internal/app/queries"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
)

type GetFarmQuery struct {
	FarmID string
}

func (q GetFarmQuery) Key() string { return getFarmKey }

type GetFarmHandler struct {
	UoWFactory uow.Factory
}

func (h *GetFarmHandler) Handle(ctx context.Context, q GetFarmQuery) (dto.Farm, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Farm{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	farm, err := unit.Farms().ByID(ctx, domainfarms.FarmID(q.FarmID))
	if err != nil {
		return dto.Farm{}, err
	}
	return dto.MapFarm(farm), nil
}

var _ queries.Handler[GetFarmQuery, dto.Farm] = (*GetFarmHandler)(nil)
