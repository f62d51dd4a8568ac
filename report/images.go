package report

import (
	"context"
	"fmt"
	"path"
	"strings"

	"report-backend/orm"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// tryCleanup runs a best-effort cleanup step. Failures are logged and
// swallowed: record consistency wins over blob consistency.
func tryCleanup(op string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("cleanup step failed")
	}
}

// AttachImage validates and stores the uploaded bytes, then records the
// image at the end of the report's list. The blob write happens before
// the record write and is not transactional with it; a failure in
// between leaves an orphaned file behind.
func (s *Service) AttachImage(
	ctx context.Context,
	reportID uint64,
	content []byte,
	contentType string,
	originalFilename string,
	alt string,
	caption string,
) (*orm.ReportImage, error) {
	if _, err := s.store.GetReportByID(ctx, reportID); err != nil {
		return nil, err
	}

	if len(content) == 0 {
		return nil, &orm.ValidationError{Reason: "file is empty"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &orm.ValidationError{Reason: "file must be an image"}
	}

	// Random storage name avoids overwrite collisions between uploads
	// sharing an original filename.
	ext := path.Ext(originalFilename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.NewString() + ext

	if err := s.blobs.Store(s.blobPath(reportID, filename), content); err != nil {
		return nil, err
	}

	count, err := s.store.CountImagesByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if alt == "" {
		alt = originalFilename
	}

	image := &orm.ReportImage{
		ReportID:     reportID,
		URL:          s.fileURL(reportID, filename),
		Alt:          alt,
		Caption:      caption,
		DisplayOrder: count,
	}

	if err := s.store.CreateImage(ctx, image); err != nil {
		return nil, err
	}

	log.Info().
		Uint64("reportId", reportID).
		Uint64("imageId", image.ID).
		Str("url", image.URL).
		Msg("image attached")

	return image, nil
}

// DetachImage removes an image after verifying it belongs to the report.
// The backing blob is deleted best-effort; the record always goes. If the
// report's featured-image reference pointed at the detached image it is
// cleared so featured resolution falls through to the remaining images.
func (s *Service) DetachImage(ctx context.Context, reportID, imageID uint64) error {
	image, err := s.ownedImage(ctx, reportID, imageID)
	if err != nil {
		return err
	}

	tryCleanup("delete image blob", func() error {
		return s.blobs.Delete(s.blobPath(reportID, filenameFromURL(image.URL)))
	})

	if err := s.store.DeleteImage(ctx, imageID); err != nil {
		return err
	}

	report, err := s.store.GetReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report.FeaturedImageID != nil && *report.FeaturedImageID == imageID {
		report.FeaturedImageID = nil
		if err := s.store.SaveReport(ctx, report); err != nil {
			return err
		}
	}

	log.Info().
		Uint64("reportId", reportID).
		Uint64("imageId", imageID).
		Msg("image detached")

	return nil
}

// ReorderImage sets the image's display order directly. Sibling orders
// are not renormalized; the value is only a sort key.
func (s *Service) ReorderImage(
	ctx context.Context,
	reportID, imageID uint64,
	newOrder int,
) (*orm.ReportImage, error) {
	image, err := s.ownedImage(ctx, reportID, imageID)
	if err != nil {
		return nil, err
	}

	image.DisplayOrder = newOrder
	if err := s.store.SaveImage(ctx, image); err != nil {
		return nil, err
	}

	return image, nil
}

// ResolveFeaturedImage picks the single image URL representing a report:
// the explicit URL override first, then the referenced image from the
// list, then the image with the lowest display order. A featured-image
// reference that resolves to nothing yields no featured image at all,
// even when other images exist.
func ResolveFeaturedImage(report *orm.Report) string {
	if report.FeaturedImage != "" {
		return report.FeaturedImage
	}

	if report.FeaturedImageID != nil {
		for i := range report.Images {
			if report.Images[i].ID == *report.FeaturedImageID {
				return report.Images[i].URL
			}
		}

		return ""
	}

	if len(report.Images) == 0 {
		return ""
	}

	lowest := &report.Images[0]
	for i := range report.Images[1:] {
		if report.Images[i+1].DisplayOrder < lowest.DisplayOrder {
			lowest = &report.Images[i+1]
		}
	}

	return lowest.URL
}

// softDeleteFolder renames the report's upload directory to a del-
// prefixed sibling instead of erasing it, so the files stay recoverable.
// Never blocks the report deletion.
func (s *Service) softDeleteFolder(reportID uint64) {
	tryCleanup("soft-delete report folder", func() error {
		return s.blobs.MoveDir(
			fmt.Sprintf("%d", reportID),
			fmt.Sprintf("del-%d", reportID),
		)
	})
}

// ownedImage loads an image and verifies the report owns it. A mismatch
// is indistinguishable from a missing image to the caller.
func (s *Service) ownedImage(
	ctx context.Context,
	reportID, imageID uint64,
) (*orm.ReportImage, error) {
	image, err := s.store.GetImageByID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	if image.ReportID != reportID {
		return nil, &orm.NotFoundError{
			Search: fmt.Sprintf(
				"image (id=%d) does not belong to report (id=%d)",
				imageID,
				reportID,
			),
		}
	}

	return image, nil
}

func (s *Service) blobPath(reportID uint64, filename string) string {
	return fmt.Sprintf("%d/%s", reportID, filename)
}

func (s *Service) fileURL(reportID uint64, filename string) string {
	return fmt.Sprintf(
		"%s/uploads/reports/%d/%s",
		strings.TrimSuffix(s.publicBaseURL, "/"),
		reportID,
		filename,
	)
}

func filenameFromURL(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}
