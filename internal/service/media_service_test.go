package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/internal/transfer"
	"github.com/stretchr/testify/require"
)

var (
	pngData = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	mp4Data = append([]byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2"), make([]byte, 32)...)
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
}

func (m *memoryStorage) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.objects == nil {
		m.objects = make(map[string]string)
	}
	m.objects[key] = contentType
	return "https://media.example.com/" + key, nil
}

func newMediaService(t *testing.T, f *fixture, storage service.ObjectStorage) service.MediaService {
	t.Helper()

	return service.NewMediaService(f.db,
		repository.NewPostRepository(f.db),
		repository.NewMediaAssetRepository(f.db),
		repository.NewPostMediaRepository(f.db),
		storage)
}

func TestAcceptsMedia(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		postType models.PostType
		image    bool
		video    bool
	}{
		{models.PostTypeImage, true, false},
		{models.PostTypeVideo, false, true},
		{models.PostTypeReel, false, true},
		{models.PostTypeCarousel, true, true},
		{models.PostTypeStory, true, true},
		{models.PostTypeText, false, false},
	} {
		require.Equal(t, tc.image, service.AcceptsMedia(tc.postType, "image"), tc.postType)
		require.Equal(t, tc.video, service.AcceptsMedia(tc.postType, "video"), tc.postType)
	}
}

func TestAttachMedia(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	storage := &memoryStorage{}
	media := newMediaService(t, f, storage)

	carousel := f.draft(t, transfer.PostInput{Date: "2024-06-15", Type: "carousel"})
	assets, err := media.AttachMedia(ctx, "author", carousel.ID, []service.Upload{
		{FileName: "cover.png", Data: pngData},
		{FileName: "clip.mp4", Data: mp4Data},
	})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	require.Equal(t, "image/png", assets[0].FileType)
	require.Equal(t, "video/mp4", assets[1].FileType)
	require.Len(t, storage.objects, 2)

	more, err := media.AttachMedia(ctx, "author", carousel.ID, []service.Upload{{FileName: "extra.png", Data: pngData}})
	require.NoError(t, err)

	listed, err := media.ListMedia(ctx, carousel.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, assets[0].ID, listed[0].ID)
	require.Equal(t, more[0].ID, listed[2].ID, "new uploads go after existing ones")
}

func TestAttachMedia_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	storage := &memoryStorage{}
	media := newMediaService(t, f, storage)

	image := f.draft(t, transfer.PostInput{Date: "2024-06-15", Type: "image"})
	text := f.draft(t, transfer.PostInput{Date: "2024-06-15", Type: "text"})

	_, err := media.AttachMedia(ctx, "author", image.ID, nil)
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = media.AttachMedia(ctx, "author", image.ID, []service.Upload{{FileName: "clip.mp4", Data: mp4Data}})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = media.AttachMedia(ctx, "author", text.ID, []service.Upload{{FileName: "cover.png", Data: pngData}})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = media.AttachMedia(ctx, "author", image.ID, []service.Upload{{FileName: "notes.txt", Data: []byte("just words")}})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = media.AttachMedia(ctx, "author", "missing", []service.Upload{{FileName: "cover.png", Data: pngData}})
	require.ErrorIs(t, err, models.ErrNotFound)

	require.Empty(t, storage.objects, "nothing is uploaded when validation fails")

	storage.err = errors.New("bucket unavailable")
	_, err = media.AttachMedia(ctx, "author", image.ID, []service.Upload{{FileName: "cover.png", Data: pngData}})
	require.ErrorIs(t, err, storage.err)

	listed, err := media.ListMedia(ctx, image.ID)
	require.NoError(t, err)
	require.Empty(t, listed)
}
