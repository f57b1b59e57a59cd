package images

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainimages "farmstay/internal/domain/images"
)

// stubUploader records uploads and deletions without talking to a bucket.
type stubUploader struct {
	mu      sync.Mutex
	uploads []string
	deleted []string
	fail    bool
}

func (s *stubUploader) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("bucket unavailable")
	}
	s.uploads = append(s.uploads, key)
	return "http://blobs.local/farmstay-photos/" + key, nil
}

func (s *stubUploader) Delete(_ context.Context, publicURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicURL)
	return nil
}

func TestUploadFirstImageBecomesPrimary(t *testing.T) {
	f := newFixture(t)
	uploader := &stubUploader{}
	h := &UploadImageHandler{UoWFactory: f.factory, Uploader: uploader, Outbox: f.box}

	img, err := h.Handle(context.Background(), UploadImageCommand{
		FarmID:      "farm-1",
		Caller:      ownerCaller(),
		ObjectKey:   "farms/farm-1/a.jpg",
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, img.Primary)

	second, err := h.Handle(context.Background(), UploadImageCommand{
		FarmID:      "farm-1",
		Caller:      ownerCaller(),
		ObjectKey:   "farms/farm-1/b.jpg",
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.False(t, second.Primary)
	assert.Equal(t, []string{"farms/farm-1/a.jpg", "farms/farm-1/b.jpg"}, uploader.uploads)
}

func TestUploadFailureLeavesNoRecord(t *testing.T) {
	f := newFixture(t)
	uploader := &stubUploader{fail: true}
	h := &UploadImageHandler{UoWFactory: f.factory, Uploader: uploader, Outbox: f.box}

	_, err := h.Handle(context.Background(), UploadImageCommand{
		FarmID:      "farm-1",
		Caller:      ownerCaller(),
		ObjectKey:   "farms/farm-1/a.jpg",
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("jpeg-bytes"),
	})
	require.Error(t, err)

	imgs, err := f.images.ByFarm(context.Background(), "farm-1")
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestRemovePrimaryImageLeavesNonePrimary(t *testing.T) {
	f := newFixture(t)
	f.seedImage(t, "img-a", true)
	f.seedImage(t, "img-b", false)

	h := &RemoveImageHandler{UoWFactory: f.factory, Outbox: f.box}
	res, err := h.Handle(context.Background(), RemoveImageCommand{
		FarmID:  "farm-1",
		ImageID: "img-a",
		Caller:  ownerCaller(),
	})
	require.NoError(t, err)
	assert.Equal(t, "img-a", res.ImageID)
	assert.Contains(t, res.URL, "img-a")

	assert.Empty(t, f.primaries(t))
}

func TestRemoveUnknownImage(t *testing.T) {
	f := newFixture(t)
	h := &RemoveImageHandler{UoWFactory: f.factory, Outbox: f.box}

	_, err := h.Handle(context.Background(), RemoveImageCommand{
		FarmID:  "farm-1",
		ImageID: "missing",
		Caller:  ownerCaller(),
	})
	assert.ErrorIs(t, err, domainimages.ErrImageNotFound)
}
