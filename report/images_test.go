package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"report-backend/orm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReportForImages(t *testing.T, service *Service) *orm.Report {
	t.Helper()

	store, ok := service.store.(*fakeStore)
	require.True(t, ok)
	if _, err := store.GetUserByID(context.Background(), 1); err != nil {
		store.addUser(1, orm.RoleReporter)
	}

	report, err := service.Create(context.Background(), CreateRequest{
		Title: "With Images " + t.Name(),
	}, Identity{UserID: 1})
	require.NoError(t, err)

	return report
}

func TestAttachImage(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	service := NewService(store, blobs, "http://localhost:3000/api")
	report := createReportForImages(t, service)

	image, err := service.AttachImage(
		context.Background(),
		report.ID,
		[]byte("png bytes"),
		"image/png",
		"photo.png",
		"",
		"a caption",
	)
	require.NoError(t, err)

	assert.Equal(t, report.ID, image.ReportID)
	assert.Equal(t, 0, image.DisplayOrder)
	// Alt falls back to the original filename.
	assert.Equal(t, "photo.png", image.Alt)
	assert.Equal(t, "a caption", image.Caption)
	assert.True(t, strings.HasSuffix(image.URL, ".png"))
	assert.Contains(t, image.URL, "http://localhost:3000/api/uploads/reports/")

	// Exactly one blob stored, under the report's folder.
	require.Len(t, blobs.stored, 1)
	for path := range blobs.stored {
		assert.True(t, strings.HasPrefix(path, "1/"))
	}
}

func TestAttachImageAssignsNextOrder(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, newFakeBlobs(), "http://localhost:3000/api")
	report := createReportForImages(t, service)

	for want := 0; want < 3; want++ {
		image, err := service.AttachImage(
			context.Background(),
			report.ID,
			[]byte("bytes"),
			"image/jpeg",
			"pic.jpg",
			"alt",
			"",
		)
		require.NoError(t, err)
		assert.Equal(t, want, image.DisplayOrder)
	}
}

func TestAttachImageValidation(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, newFakeBlobs(), "http://localhost:3000/api")
	report := createReportForImages(t, service)

	t.Run("empty content", func(t *testing.T) {
		_, err := service.AttachImage(
			context.Background(), report.ID, nil, "image/png", "x.png", "", "",
		)
		var validation *orm.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := service.AttachImage(
			context.Background(), report.ID, []byte("x"), "text/plain", "x.txt", "", "",
		)
		var validation *orm.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("unknown report", func(t *testing.T) {
		_, err := service.AttachImage(
			context.Background(), 999, []byte("x"), "image/png", "x.png", "", "",
		)
		var notFound *orm.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestAttachImageStoreFailureAborts(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	blobs.storeErr = errors.New("disk full")
	service := NewService(store, blobs, "http://localhost:3000/api")
	report := createReportForImages(t, service)

	_, err := service.AttachImage(
		context.Background(), report.ID, []byte("x"), "image/png", "x.png", "", "",
	)
	require.Error(t, err)

	// No record without a blob.
	count, err := store.CountImagesByReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDetachImage(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	service := NewService(store, blobs, "http://localhost:3000/api")
	report := createReportForImages(t, service)

	image, err := service.AttachImage(
		context.Background(), report.ID, []byte("x"), "image/png", "x.png", "", "",
	)
	require.NoError(t, err)

	require.NoError(t, service.DetachImage(context.Background(), report.ID, image.ID))

	require.Len(t, blobs.deleted, 1)
	_, err = store.GetImageByID(context.Background(), image.ID)
	var notFound *orm.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDetachImageWrongReport(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, newFakeBlobs(), "http://localhost:3000/api")
	first := createReportForImages(t, service)

	second, err := service.Create(context.Background(), CreateRequest{
		Title: "Other Report",
	}, Identity{UserID: 1})
	require.NoError(t, err)

	image, err := service.AttachImage(
		context.Background(), first.ID, []byte("x"), "image/png", "x.png", "", "",
	)
	require.NoError(t, err)

	err = service.DetachImage(context.Background(), second.ID, image.ID)
	var notFound *orm.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// The image survives the failed detach.
	_, err = store.GetImageByID(context.Background(), image.ID)
	require.NoError(t, err)
}

func TestDetachImageBlobFailureStillDeletesRecord(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	service := NewService(store, blobs, "http://localhost:3000/api")
	report := createReportForImages(t, service)

	image, err := service.AttachImage(
		context.Background(), report.ID, []byte("x"), "image/png", "x.png", "", "",
	)
	require.NoError(t, err)

	blobs.delErr = errors.New("backend unreachable")
	require.NoError(t, service.DetachImage(context.Background(), report.ID, image.ID))

	_, err = store.GetImageByID(context.Background(), image.ID)
	var notFound *orm.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDetachImageClearsFeaturedReference(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, newFakeBlobs(), "http://localhost:3000/api")
	report := createReportForImages(t, service)

	image, err := service.AttachImage(
		context.Background(), report.ID, []byte("x"), "image/png", "x.png", "", "",
	)
	require.NoError(t, err)

	_, err = service.Update(context.Background(), report.ID, UpdateRequest{
		FeaturedImageID: &image.ID,
	})
	require.NoError(t, err)

	require.NoError(t, service.DetachImage(context.Background(), report.ID, image.ID))

	got, err := service.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FeaturedImageID)
}

func TestReorderImage(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, newFakeBlobs(), "http://localhost:3000/api")
	report := createReportForImages(t, service)

	image, err := service.AttachImage(
		context.Background(), report.ID, []byte("x"), "image/png", "x.png", "", "",
	)
	require.NoError(t, err)

	reordered, err := service.ReorderImage(context.Background(), report.ID, image.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, reordered.DisplayOrder)

	stored, err := store.GetImageByID(context.Background(), image.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.DisplayOrder)
}

func TestResolveFeaturedImage(t *testing.T) {
	imageID := uint64(2)

	t.Run("explicit url wins", func(t *testing.T) {
		report := &orm.Report{
			FeaturedImage:   "https://cdn.example.com/hero.jpg",
			FeaturedImageID: &imageID,
			Images: []orm.ReportImage{
				{ID: 2, URL: "https://cdn.example.com/second.jpg"},
			},
		}
		assert.Equal(t, "https://cdn.example.com/hero.jpg", ResolveFeaturedImage(report))
	})

	t.Run("referenced image", func(t *testing.T) {
		report := &orm.Report{
			FeaturedImageID: &imageID,
			Images: []orm.ReportImage{
				{ID: 1, URL: "first.jpg", DisplayOrder: 0},
				{ID: 2, URL: "second.jpg", DisplayOrder: 1},
			},
		}
		assert.Equal(t, "second.jpg", ResolveFeaturedImage(report))
	})

	t.Run("dangling reference yields nothing", func(t *testing.T) {
		missing := uint64(99)
		report := &orm.Report{
			FeaturedImageID: &missing,
			Images: []orm.ReportImage{
				{ID: 1, URL: "first.jpg"},
			},
		}
		assert.Empty(t, ResolveFeaturedImage(report))
	})

	t.Run("lowest display order", func(t *testing.T) {
		report := &orm.Report{
			Images: []orm.ReportImage{
				{ID: 1, URL: "later.jpg", DisplayOrder: 3},
				{ID: 2, URL: "first.jpg", DisplayOrder: 1},
			},
		}
		assert.Equal(t, "first.jpg", ResolveFeaturedImage(report))
	})

	t.Run("no images", func(t *testing.T) {
		assert.Empty(t, ResolveFeaturedImage(&orm.Report{}))
	})
}
