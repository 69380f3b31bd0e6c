package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-api/internal/model"
	"talenthub-api/internal/repository"
)

// fakeObjectStore records writes in memory.
type fakeObjectStore struct {
	puts []string
	fail bool
}

func (s *fakeObjectStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if s.fail {
		return errors.New("storage unavailable")
	}
	s.puts = append(s.puts, path)
	return nil
}

func (s *fakeObjectStore) PublicURL(path string) string {
	return "https://media.example.com/showcase-media/" + path
}

func (s *fakeObjectStore) Ping(ctx context.Context) error { return nil }

func newShowcaseFixture(t *testing.T) (*ShowcaseService, *fakeObjectStore, repository.ShowcaseRepository) {
	t.Helper()
	db := openTestStore(t)
	showcases := repository.NewSQLiteShowcaseRepository(db)
	store := &fakeObjectStore{}
	svc := NewShowcaseService(showcases, store)
	require.NotNil(t, svc)
	return svc, store, showcases
}

func TestUploadImage(t *testing.T) {
	svc, store, showcases := newShowcaseFixture(t)
	ctx := context.Background()

	sc, err := svc.Upload(ctx, "owner-1", UploadInput{
		Title:       "  My Reel  ",
		Description: "highlights",
		FileName:    "Reel.PNG",
		ContentType: "image/png",
		Size:        4,
		Data:        strings.NewReader("data"),
	})
	require.NoError(t, err)
	assert.Equal(t, "My Reel", sc.Title)
	assert.Equal(t, model.MediaImage, sc.MediaType)
	assert.True(t, strings.HasPrefix(sc.MediaURL, "https://media.example.com/showcase-media/owner-1/"))
	assert.True(t, strings.HasSuffix(sc.MediaURL, ".png"))

	require.Len(t, store.puts, 1)
	assert.True(t, strings.HasPrefix(store.puts[0], "owner-1/"))

	list, err := showcases.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sc.ID, list[0].ID)
}

func TestUploadVideo(t *testing.T) {
	svc, _, _ := newShowcaseFixture(t)

	sc, err := svc.Upload(context.Background(), "owner-1", UploadInput{
		Title:       "Audition",
		FileName:    "take1.mp4",
		ContentType: "video/mp4",
		Size:        4,
		Data:        strings.NewReader("data"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaVideo, sc.MediaType)
}

func TestUploadRejectsUnsupportedMediaBeforeStore(t *testing.T) {
	svc, store, _ := newShowcaseFixture(t)

	_, err := svc.Upload(context.Background(), "owner-1", UploadInput{
		Title:       "Resume",
		FileName:    "resume.txt",
		ContentType: "text/plain",
		Size:        4,
		Data:        strings.NewReader("data"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
	// Classification rejects before anything touches the object store.
	assert.Empty(t, store.puts)
}

func TestUploadRequiresTitle(t *testing.T) {
	svc, store, _ := newShowcaseFixture(t)

	_, err := svc.Upload(context.Background(), "owner-1", UploadInput{
		Title:       "   ",
		FileName:    "a.png",
		ContentType: "image/png",
		Size:        1,
		Data:        strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrMissingTitle)
	assert.Empty(t, store.puts)
}

func TestUploadStoreFailureLeavesNoRow(t *testing.T) {
	svc, store, showcases := newShowcaseFixture(t)
	store.fail = true
	ctx := context.Background()

	_, err := svc.Upload(ctx, "owner-1", UploadInput{
		Title:       "Reel",
		FileName:    "a.png",
		ContentType: "image/png",
		Size:        1,
		Data:        strings.NewReader("x"),
	})
	require.Error(t, err)

	list, err := showcases.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
