package images

import (
	"context"

	"farmstay/internal/app/dto"
	"farmstay/internal/app/handlers/support"
	"farmstay/internal/app/queries"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
)

const listImagesKey = "images.list"

type ListImagesQuery struct {
	FarmID string
}

func (q ListImagesQuery) Key() string { return listImagesKey }

type ListImagesHandler struct {
	UoWFactory uow.Factory
}

func (h *ListImagesHandler) Handle(ctx context.Context, q ListImagesQuery) ([]dto.Image, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	farm, err := unit.Farms().ByID(ctx, domainfarms.FarmID(q.FarmID))
	if err != nil {
		return nil, err
	}
	items, err := unit.Images().ByFarm(ctx, farm.ID)
	if err != nil {
		return nil, err
	}
	return dto.MapImages(items), nil
}

var _ queries.Handler[ListImagesQuery, []dto.Image] = (*ListImagesHandler)(nil)
