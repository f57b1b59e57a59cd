package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"farmstay/internal/app/access"
	"farmstay/internal/app/commands"
	"farmstay/internal/app/dto"
	"farmstay/internal/app/outbox"
	"farmstay/internal/app/uow"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
	domainimages "farmstay/internal/domain/images"
	"farmstay/internal/domain/shared/events"
	"farmstay/internal/infra/storage/s3"
)

const uploadImageKey = "images.upload"

// UploadImageCommand stores a photo blob and records its URL against the
// farm. The first image of a farm becomes primary automatically.
type UploadImageCommand struct {
	FarmID      string
	Caller      identity.Principal
	ObjectKey   string
	ContentType string
	Reader      io.Reader
}

func (c UploadImageCommand) Key() string { return uploadImageKey }

type UploadImageHandler struct {
	UoWFactory uow.Factory
	Guard      access.Guard
	Uploader   s3.Uploader
	Outbox     outbox.Outbox
	Now        func() time.Time
}

func (h *UploadImageHandler) Handle(ctx context.Context, cmd UploadImageCommand) (*dto.Image, error) {
	if h.Uploader == nil {
		return nil, errors.New("images: uploader unavailable")
	}
	if cmd.Reader == nil {
		return nil, errors.New("images: reader is required")
	}
	if strings.TrimSpace(cmd.ObjectKey) == "" {
		return nil, errors.New("images: object key is required")
	}

	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	farm, err := unit.Farms().ByID(ctx, domainfarms.FarmID(cmd.FarmID))
	if err != nil {
		return nil, err
	}
	if err := h.Guard.Authorize(cmd.Caller, farm, access.ActionManageImages); err != nil {
		return nil, err
	}

	existing, err := unit.Images().ByFarm(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	publicURL, err := h.Uploader.Upload(ctx, cmd.ObjectKey, cmd.Reader, cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	img := domainimages.Image{
		ID:        domainimages.ImageID(uuid.NewString()),
		FarmID:    farm.ID,
		URL:       publicURL,
		Primary:   len(existing) == 0,
		CreatedAt: now,
	}
	if err := unit.Images().Add(ctx, img); err != nil {
		return nil, err
	}

	if h.Outbox != nil {
		ev := domainimages.ImageUploadedEvent{FarmID: farm.ID, ImageID: img.ID, URL: img.URL, Primary: img.Primary, At: now}
		if err := outbox.Record(ctx, h.Outbox, []events.DomainEvent{ev}); err != nil {
			return nil, err
		}
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	mapped := dto.MapImage(img)
	return &mapped, nil
}

var _ commands.Handler[UploadImageCommand, *dto.Image] = (*UploadImageHandler)(nil)
